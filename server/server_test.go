package server_test

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/http/files"
	"github.com/xy-planning-network/courier/http/resp"
	"github.com/xy-planning-network/courier/http/router"
	"github.com/xy-planning-network/courier/logger"
	"github.com/xy-planning-network/courier/server"
)

var content = strings.Repeat("0123456789", 100)

func testConfig() server.Config {
	cfg := server.NewConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = "0"
	cfg.Env = courier.Development
	cfg.FilesPrefix = "/files"
	cfg.Maintenance = false
	cfg.StrictRanges = false
	cfg.RateLimit = 1000
	cfg.RateBurst = 1000
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func newServer(t *testing.T, cfg server.Config, opts ...server.Option) *server.Server {
	t.Helper()

	opts = append([]server.Option{
		server.WithConfig(cfg),
		server.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))),
		server.WithStore(files.New(fstest.MapFS{"clip.bin": {Data: []byte(content)}})),
	}, opts...)

	s, err := server.New(opts...)
	require.Nil(t, err)
	return s
}

func TestNew(t *testing.T) {
	// Arrange
	cfg := testConfig()
	cfg.Env = "MARS"

	// Act
	s, err := server.New(server.WithConfig(cfg))

	// Assert
	require.Nil(t, s)
	require.ErrorIs(t, err, courier.ErrBadConfig)

	// Act
	s, err = server.New(server.WithLogger(nil))

	// Assert
	require.Nil(t, s)
	require.ErrorIs(t, err, courier.ErrBadConfig)
}

func TestServerFiles(t *testing.T) {
	tcs := []struct {
		name          string
		strict        bool
		rangeHeader   string
		expectedCode  int
		expectedBody  string
		expectedRange string
	}{
		{"Whole", false, "", http.StatusOK, content, ""},
		{"Part", false, "bytes=0-4", http.StatusPartialContent, "01234", "bytes 0-4/1000"},
		{"Multi-Range", false, "bytes=0-4,10-14", http.StatusOK, content, ""},
		{"Unsatisfiable", false, "bytes=1000-", http.StatusRequestedRangeNotSatisfiable, "416 Requested Range Not Satisfiable", "bytes */1000"},
		{"Strict-Unsatisfiable", true, "bytes=1000-", http.StatusRequestedRangeNotSatisfiable, "416 Requested Range Not Satisfiable", "bytes */1000"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			cfg := testConfig()
			cfg.StrictRanges = tc.strict
			s := newServer(t, cfg)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/files/clip.bin", nil)
			if tc.rangeHeader != "" {
				r.Header.Set("Range", tc.rangeHeader)
			}

			// Act
			s.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expectedCode, w.Code)
			require.Equal(t, tc.expectedBody, w.Body.String())
			require.Equal(t, tc.expectedRange, w.Header().Get("Content-Range"))
			require.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestServerRoutes(t *testing.T) {
	// Arrange
	s := newServer(t, testConfig(), server.WithRoutes(router.Route{
		Path:    "/clips/{name}",
		Method:  http.MethodGet,
		Handler: func(rr *resp.Response) { rr.Text("clip " + rr.Req().Param("name")) },
	}))
	w := httptest.NewRecorder()

	// Act
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clips/intro", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "clip intro", w.Body.String())
}

func TestServerMaintenance(t *testing.T) {
	// Arrange
	cfg := testConfig()
	cfg.Maintenance = true
	s := newServer(t, cfg)

	w := httptest.NewRecorder()

	// Act
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/clip.bin", nil))

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, "600", w.Header().Get("Retry-After"))

	// Arrange
	w = httptest.NewRecorder()

	// Act
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
}

func TestServerServe(t *testing.T) {
	// Arrange
	s := newServer(t, testConfig())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.Nil(t, err)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// Act
	go func() { done <- s.Serve(ctx, ln) }()

	// Assert
	base := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		res, err := http.Get(base + "/ready")
		if err != nil {
			return false
		}
		defer res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	r, err := http.NewRequest(http.MethodGet, base+"/files/clip.bin", nil)
	require.Nil(t, err)
	r.Header.Set("Range", "bytes=-9")

	res, err := http.DefaultClient.Do(r)
	require.Nil(t, err)
	b, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.Nil(t, err)
	require.Equal(t, http.StatusPartialContent, res.StatusCode)
	require.Equal(t, "0123456789", string(b))
	require.Equal(t, "bytes 0-9/1000", res.Header.Get("Content-Range"))

	// Act
	cancel()

	// Assert
	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after its context ended")
	}

	require.Nil(t, s.Shutdown())
}
