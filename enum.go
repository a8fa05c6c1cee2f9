package courier

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Valid reports a value falling outside those constants with an error wrapping ErrNotValid.
type Enumerable interface {
	String() string
	Valid() error
}

var _ Enumerable = Development
