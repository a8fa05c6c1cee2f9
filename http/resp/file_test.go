package resp_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/http/files"
	"github.com/xy-planning-network/courier/http/ranges"
	"github.com/xy-planning-network/courier/http/resp"
)

func newFileResponse(rangeHeader string, opts ...resp.ResponderOptFn) (*resp.Response, *recorder) {
	rt := new(recorder)
	opts = append([]resp.ResponderOptFn{resp.WithLogger(newLogger()), resp.WithStore(newStore())}, opts...)
	d := resp.NewResponder(opts...)
	r := httptest.NewRequest(http.MethodGet, "https://example.com/files/clip.bin", nil)
	if rangeHeader != "" {
		r.Header.Set("Range", rangeHeader)
	}
	return d.NewWithTransport(rt, r), rt
}

func TestResponseFile(t *testing.T) {
	// Arrange
	rr, rt := newFileResponse("")

	// Act
	o, err := rr.File("clip.bin")

	// Assert
	require.Nil(t, err)
	require.Equal(t, resp.Sent, o)
	require.Equal(t, http.StatusOK, rt.last().status)
	require.Equal(t, "1000", rt.last().header.Get("Content-Length"))
	require.Empty(t, rt.last().header.Get("Content-Range"))
	require.Empty(t, rt.last().header.Get("Accept-Ranges"))
	require.Equal(t, content, rt.last().body)
}

func TestResponseFileContentType(t *testing.T) {
	// Arrange
	rr, rt := newFileResponse("")

	// Act
	_, err := rr.File("page.html")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "text/html; charset=utf-8", rt.last().header.Get("Content-Type"))

	// Arrange
	rr, rt = newFileResponse("")
	require.Nil(t, rr.SetHeader("Content-Type", "text/x-custom"))

	// Act
	_, err = rr.File("page.html")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "text/x-custom", rt.last().header.Get("Content-Type"))
}

func TestResponseFileErrors(t *testing.T) {
	t.Run("Not-Found", func(t *testing.T) {
		// Arrange
		rr, rt := newFileResponse("")

		// Act
		o, err := rr.File("missing.bin")

		// Assert
		require.ErrorIs(t, err, files.ErrNotExist)
		require.ErrorIs(t, err, courier.ErrNotExist)
		require.Equal(t, resp.Pending, o)
		require.Equal(t, resp.Open, rr.State())
		require.Empty(t, rr.Header())
		require.Empty(t, rt.sent)

		// Act
		o = rr.Error(http.StatusNotFound)

		// Assert
		require.Equal(t, resp.Sent, o)
		require.Equal(t, "404 Not Found", rt.last().body)
	})

	t.Run("No-Store", func(t *testing.T) {
		// Arrange
		rt := new(recorder)
		d := resp.NewResponder(resp.WithLogger(newLogger()))
		rr := d.NewWithTransport(rt, httptest.NewRequest(http.MethodGet, "/", nil))

		// Act
		_, fileErr := rr.File("clip.bin")
		_, partErr := rr.FilePart("clip.bin", 0, 1)
		_, autoErr := rr.FileAuto("clip.bin")

		// Assert
		require.ErrorIs(t, fileErr, resp.ErrNoStore)
		require.ErrorIs(t, partErr, resp.ErrNoStore)
		require.ErrorIs(t, autoErr, resp.ErrNoStore)
		require.ErrorIs(t, autoErr, courier.ErrBadConfig)
		require.Empty(t, rt.sent)
	})

	t.Run("Already-Finalized", func(t *testing.T) {
		// Arrange
		store := &countingStore{Store: newStore()}
		rt := new(recorder)
		d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithStore(store))
		rr := d.NewWithTransport(rt, httptest.NewRequest(http.MethodGet, "/", nil))
		rr.Text("first")

		// Act
		o1, err1 := rr.File("clip.bin")
		o2, err2 := rr.FilePart("clip.bin", 0, 10)
		o3, err3 := rr.FileAuto("clip.bin")

		// Assert
		for _, err := range []error{err1, err2, err3} {
			require.Nil(t, err)
		}
		for _, o := range []resp.Outcome{o1, o2, o3} {
			require.Equal(t, resp.Skipped, o)
		}
		require.Zero(t, store.opens)
		require.Len(t, rt.sent, 1)
	})
}

func TestResponseFilePart(t *testing.T) {
	for _, w := range [][2]int64{{0, 1}, {0, 500}, {500, 1000}, {999, 1000}, {0, 1000}, {123, 456}} {
		start, end := w[0], w[1]
		t.Run(fmt.Sprintf("%d-%d", start, end), func(t *testing.T) {
			// Arrange
			rr, rt := newFileResponse("")

			// Act
			o, err := rr.FilePart("clip.bin", start, end)

			// Assert
			require.Nil(t, err)
			require.Equal(t, resp.Sent, o)
			require.Equal(t, http.StatusPartialContent, rt.last().status)
			require.Equal(t, "bytes", rt.last().header.Get("Accept-Ranges"))
			require.Equal(t, fmt.Sprintf("bytes %d-%d/1000", start, end-1), rt.last().header.Get("Content-Range"))
			require.Equal(t, strconv.FormatInt(end-start, 10), rt.last().header.Get("Content-Length"))
			require.Equal(t, content[start:end], rt.last().body)
		})
	}

	t.Run("To-End", func(t *testing.T) {
		// Arrange
		rr, rt := newFileResponse("")

		// Act
		_, err := rr.FilePart("clip.bin", 990, ranges.ToEnd)

		// Assert
		require.Nil(t, err)
		require.Equal(t, "bytes 990-999/1000", rt.last().header.Get("Content-Range"))
		require.Equal(t, content[990:], rt.last().body)
	})

	for _, w := range [][2]int64{{10, 10}, {10, 5}, {-1, 5}, {0, 1001}, {1000, ranges.ToEnd}} {
		start, end := w[0], w[1]
		t.Run(fmt.Sprintf("Invalid-%d-%d", start, end), func(t *testing.T) {
			// Arrange
			rr, rt := newFileResponse("")

			// Act
			o, err := rr.FilePart("clip.bin", start, end)

			// Assert
			require.ErrorIs(t, err, ranges.ErrNotSatisfiable)
			require.Equal(t, resp.Pending, o)
			require.Equal(t, resp.Open, rr.State())
			require.Equal(t, http.StatusOK, rr.Status())
			require.Empty(t, rr.Header())
			require.Empty(t, rt.sent)
		})
	}

	t.Run("Empty-File", func(t *testing.T) {
		// Arrange
		rr, rt := newFileResponse("")

		// Act
		_, err := rr.FilePart("empty.bin", 0, ranges.ToEnd)

		// Assert
		require.ErrorIs(t, err, ranges.ErrNotSatisfiable)
		require.Empty(t, rt.sent)
	})
}

func TestResponseFileAuto(t *testing.T) {
	for _, tc := range []struct {
		name         string
		header       string
		status       int
		contentRange string
		body         string
	}{
		{"First-Half", "bytes=0-499", http.StatusPartialContent, "bytes 0-499/1000", content[:500]},
		{"Open-End", "bytes=500-", http.StatusPartialContent, "bytes 500-999/1000", content[500:]},
		{"Open-Start", "bytes=-9", http.StatusPartialContent, "bytes 0-9/1000", content[:10]},
		{"Last-Byte", "bytes=999-999", http.StatusPartialContent, "bytes 999-999/1000", content[999:]},
		{"Missing", "", http.StatusOK, "", content},
		{"Other-Unit", "items=0-5", http.StatusOK, "", content},
		{"Malformed", "bytes=zero-", http.StatusOK, "", content},
		{"Multi-Range", "bytes=0-1,5-6", http.StatusOK, "", content},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			rr, rt := newFileResponse(tc.header)

			// Act
			o, err := rr.FileAuto("clip.bin")

			// Assert
			require.Nil(t, err)
			require.Equal(t, resp.Sent, o)
			require.Equal(t, tc.status, rt.last().status)
			require.Equal(t, "bytes", rt.last().header.Get("Accept-Ranges"))
			require.Equal(t, tc.contentRange, rt.last().header.Get("Content-Range"))
			require.Equal(t, strconv.Itoa(len(tc.body)), rt.last().header.Get("Content-Length"))
			require.Equal(t, tc.body, rt.last().body)
		})
	}
}

func TestResponseFileAutoNotSatisfiable(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		// Arrange
		rr, rt := newFileResponse("bytes=1000-")

		// Act
		o, err := rr.FileAuto("clip.bin")

		// Assert
		require.ErrorIs(t, err, ranges.ErrNotSatisfiable)
		require.Equal(t, resp.Pending, o)
		require.Equal(t, resp.Open, rr.State())
		require.Empty(t, rr.Header())
		require.Empty(t, rt.sent)
	})

	t.Run("Strict", func(t *testing.T) {
		// Arrange
		rr, rt := newFileResponse("bytes=0-1000", resp.WithStrictRanges())

		// Act
		o, err := rr.FileAuto("clip.bin")

		// Assert
		require.Nil(t, err)
		require.Equal(t, resp.Sent, o)
		require.Equal(t, transmission{
			http.StatusRequestedRangeNotSatisfiable,
			http.Header{
				"Content-Range": {"bytes */1000"},
				"Content-Type":  {"text/plain; charset=utf8"},
			},
			"416 Requested Range Not Satisfiable",
		}, rt.last())
	})
}

func TestResponseFileClosesBody(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   func(*resp.Response) (resp.Outcome, error)
	}{
		{"File", func(rr *resp.Response) (resp.Outcome, error) { return rr.File("clip.bin") }},
		{"FilePart", func(rr *resp.Response) (resp.Outcome, error) { return rr.FilePart("clip.bin", 1, 2) }},
		{"FileAuto", func(rr *resp.Response) (resp.Outcome, error) { return rr.FileAuto("clip.bin") }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			store := &countingStore{Store: newStore()}
			rt := &recorder{err: io.ErrClosedPipe}
			d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithStore(store))
			rr := d.NewWithTransport(rt, httptest.NewRequest(http.MethodGet, "/", nil))

			// Act
			o, err := tc.fn(rr)

			// Assert
			require.Nil(t, err)
			require.Equal(t, resp.Dropped, o)
			require.Equal(t, 1, store.opens)
			require.Equal(t, 1, store.closes)
		})
	}
}

func TestResponderHandleFileAuto(t *testing.T) {
	// Arrange
	d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithStore(newStore()))
	h := d.Handle(func(rr *resp.Response) {
		if _, err := rr.FileAuto("clip.bin"); err != nil {
			d.Err(rr, err)
		}
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/files/clip.bin", nil)
	r.Header.Set("Range", "bytes=10-19")

	// Act
	h(w, r)

	// Assert
	require.Equal(t, http.StatusPartialContent, w.Code)
	require.Equal(t, "bytes 10-19/1000", w.Header().Get("Content-Range"))
	require.Equal(t, "10", w.Header().Get("Content-Length"))
	require.Equal(t, content[10:20], w.Body.String())
}

// countingStore counts files opened and closed.
type countingStore struct {
	files.Store
	opens  int
	closes int
}

func (cs *countingStore) Open(name string) (io.ReadCloser, error) {
	rc, err := cs.Store.Open(name)
	if err != nil {
		return nil, err
	}
	cs.opens++
	return &countingCloser{ReadCloser: rc, cs: cs}, nil
}

func (cs *countingStore) OpenSection(name string, start, length int64) (io.ReadCloser, error) {
	rc, err := cs.Store.OpenSection(name, start, length)
	if err != nil {
		return nil, err
	}
	cs.opens++
	return &countingCloser{ReadCloser: rc, cs: cs}, nil
}

type countingCloser struct {
	io.ReadCloser
	cs *countingStore
}

func (cc *countingCloser) Close() error {
	cc.cs.closes++
	return cc.ReadCloser.Close()
}
