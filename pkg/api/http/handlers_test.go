package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(&Config{Addr: "127.0.0.1:0"})
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRoutes_StaticResponses(t *testing.T) {
	tests := []struct {
		path string
		body string
	}{
		{path: "/", body: `{"message": "Hello, World!", "status": "healthy"}`},
		{path: "/health", body: `{"status": "healthy"}`},
		{path: "/ready", body: `{"status": "ready"}`},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(s, http.MethodGet, tt.path)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestRoutes_RepeatedRequestsAreIdentical(t *testing.T) {
	s := newTestServer(t)

	first := serve(s, http.MethodGet, "/").Body.String()
	second := serve(s, http.MethodGet, "/").Body.String()

	assert.Equal(t, first, second)
}

func TestRoutes_UnknownPath(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/unknown", "/healthz", "/ready/now", "/metrics"} {
		rec := serve(s, http.MethodGet, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestRoutes_WrongMethodIsNotFound(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/", "/health", "/ready"} {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			rec := serve(s, method, path)
			assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", method, path)
		}
	}
}

func TestRoutes_ConcurrentHealthChecks(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()

	const requests = 100

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			resp, err := http.Get(ts.URL + "/health")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"status": "healthy"}`, string(body))
		}()
	}

	close(start)
	wg.Wait()
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	t.Run("generated", func(t *testing.T) {
		a := serve(s, http.MethodGet, "/health").Header().Get(RequestIDHeader)
		b := serve(s, http.MethodGet, "/health").Header().Get(RequestIDHeader)

		require.NotEmpty(t, a)
		assert.Len(t, a, 36)
		assert.NotEqual(t, a, b)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("on not found", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/unknown")
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	})
}
