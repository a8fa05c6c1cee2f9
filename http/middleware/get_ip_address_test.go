package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/http/middleware"
)

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		expected   string
	}{
		{"Remote-Addr", "", "", "203.0.113.9:5555", "203.0.113.9"},
		{"Bad-Remote-Addr", "", "", "nonsense", "0.0.0.0"},
		{"Forwarded", "8.8.8.8", "", "10.0.0.1:80", "8.8.8.8"},
		{"Forwarded-Rightmost-Public", "1.1.1.1, 8.8.8.8, 10.0.0.2", "", "10.0.0.1:80", "8.8.8.8"},
		{"Forwarded-All-Private", "10.0.0.2, 192.168.1.1", "", "10.0.0.1:80", "10.0.0.1"},
		{"Real-IP", "", "9.9.9.9", "10.0.0.1:80", "9.9.9.9"},
		{"Garbage", "not-an-ip", "", "10.0.0.1:80", "10.0.0.1"},
		{"IPv6", "2001:4860:4860::8888", "", "[::1]:80", "2001:4860:4860::8888"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				r.Header.Set("X-Real-Ip", tc.realIP)
			}

			// Act
			actual := middleware.GetIPAddress(r)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("X-Forwarded-For", "8.8.4.4")

	// Act
	middleware.InjectIPAddress()(http.HandlerFunc(func(_ http.ResponseWriter, rx *http.Request) {
		// Assert
		require.Equal(t, "8.8.4.4", rx.Context().Value(courier.IpAddrKey))
	})).ServeHTTP(httptest.NewRecorder(), r)
}
