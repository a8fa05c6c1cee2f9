package middleware

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/http/resp"
	"github.com/xy-planning-network/courier/logger"
)

func TestReportPanic(t *testing.T) {
	// Arrange
	d := resp.NewResponder(resp.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))))
	h := ReportPanic(courier.Production)(d.Handle(func(rr *resp.Response) {
		rr.SetHeader("Accept-Ranges", "bytes")
		panic("boom")
	}))

	before := testutil.ToFloat64(panicRecoveries)
	w := httptest.NewRecorder()

	// Act
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/clip.bin", nil))
	})

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "500 Internal Server Error", w.Body.String())
	require.Empty(t, w.Header().Get("Accept-Ranges"))
	require.Equal(t, before+1, testutil.ToFloat64(panicRecoveries))
}

func TestReportPanicDevelopment(t *testing.T) {
	// Arrange
	h := ReportPanic(courier.Development)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	// Act + Assert
	require.PanicsWithValue(t, "boom", func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
