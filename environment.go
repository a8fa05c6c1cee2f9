package courier

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment is where a courier app is deployed.
// It decides, amongst other things, whether plain HTTP is redirected
// and whether panics are reported.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

func (e Environment) String() string { return string(e) }

// Valid reports an Environment other than the four constants with an error wrapping ErrNotValid.
func (e Environment) Valid() error {
	switch e {
	case Development, Production, Staging, Testing:
		return nil
	}

	return fmt.Errorf("%w: environment %q", ErrNotValid, string(e))
}

func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsStaging() bool     { return e == Staging }
func (e Environment) IsTesting() bool     { return e == Testing }

// envVarOr reads the environment variable key through parse,
// falling back to def when it is unset or parse fails.
func envVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def
	}

	t, err := parse(val)
	if err != nil {
		return def
	}

	return t
}

// EnvVarOrBool reads key as a boolean, accepting "true" or "false" in any case.
func EnvVarOrBool(key string, def bool) bool {
	return envVarOr(key, def, func(val string) (bool, error) {
		switch strings.ToLower(val) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, ErrNotValid
	})
}

// EnvVarOrDuration reads key as a [time.Duration], e.g., "90s".
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv reads key as an [Environment], ignoring case.
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, func(val string) (Environment, error) {
		env := Environment(strings.ToUpper(val))
		return env, env.Valid()
	})
}

// EnvVarOrInt reads key as an int.
func EnvVarOrInt(key string, def int) int {
	return envVarOr(key, def, strconv.Atoi)
}

// EnvVarOrString reads key, falling back to def only when it is unset or empty.
func EnvVarOrString(key, def string) string {
	return envVarOr(key, def, func(val string) (string, error) { return val, nil })
}
