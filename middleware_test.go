package sssc

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

// TestMiddlewarePassthrough tests that non-.sss requests pass through
func TestMiddlewarePassthrough(t *testing.T) {
	mockFS := fstest.MapFS{
		"style.sss": &fstest.MapFile{Data: []byte("body { color: red; }")},
	}

	middleware := NewMiddleware("/assets/css", mockFS)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("next handler"))
	})

	handler := middleware(next)

	tests := []struct {
		name       string
		path       string
		method     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "CSS file (non-.sss) should pass through",
			path:       "/assets/css/style.css",
			method:     http.MethodGet,
			wantStatus: http.StatusTeapot,
			wantBody:   "next handler",
		},
		{
			name:       "Request without basePath should pass through",
			path:       "/other/style.sss",
			method:     http.MethodGet,
			wantStatus: http.StatusTeapot,
			wantBody:   "next handler",
		},
		{
			name:       "POST request should pass through",
			path:       "/assets/css/style.sss",
			method:     http.MethodPost,
			wantStatus: http.StatusTeapot,
			wantBody:   "next handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled = false
			req := httptest.NewRequest(tt.method, tt.path, nil)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			require.True(t, nextCalled, "next handler should be called")
			require.Equal(t, tt.wantStatus, w.Code)
			require.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

// TestMiddlewareCompilation tests successful .sss file compilation
func TestMiddlewareCompilation(t *testing.T) {
	mockFS := fstest.MapFS{
		"style.sss": &fstest.MapFile{Data: []byte(`
$primary: #0066cc;
body {
  color: $primary;
}
`)},
	}

	middleware := NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/style.sss", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	require.Contains(t, w.Body.String(), "#0066cc")
	require.Contains(t, w.Body.String(), "body")
}

// TestMiddlewareNotFound tests 404 handling
func TestMiddlewareNotFound(t *testing.T) {
	mockFS := fstest.MapFS{}

	middleware := NewMiddleware("/assets/css", mockFS)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/nonexistent.sss", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.False(t, nextCalled)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// TestMiddlewareHEADRequest tests HEAD request handling
func TestMiddlewareHEADRequest(t *testing.T) {
	mockFS := fstest.MapFS{
		"style.sss": &fstest.MapFile{Data: []byte("body { color: red; }")},
	}

	middleware := NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodHead, "/assets/css/style.sss", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "", w.Body.String())
}

// TestMiddlewareVariableInterpolation tests variable substitution through the middleware
func TestMiddlewareVariableInterpolation(t *testing.T) {
	mockFS := fstest.MapFS{
		"variables.sss": &fstest.MapFile{Data: []byte(`
$color: #ff0000;
$size: 16px;

body {
  color: $color;
  font-size: $size;
}

.button {
  color: $color;
  padding: 10px;
}
`)},
	}

	middleware := NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/variables.sss", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	css := w.Body.String()
	require.Contains(t, css, "#ff0000")
	require.Contains(t, css, "16px")
	require.Contains(t, css, ".button")
	require.Contains(t, css, "body")
}

// TestMiddlewareNesting tests nested selectors work through the middleware
func TestMiddlewareNesting(t *testing.T) {
	mockFS := fstest.MapFS{
		"nested.sss": &fstest.MapFile{Data: []byte(`
.container {
  background: white;

  .header {
    color: blue;

    h1 {
      font-size: 24px;
    }
  }
}
`)},
	}

	middleware := NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/nested.sss", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	css := w.Body.String()
	require.Contains(t, css, ".container")
	require.Contains(t, css, ".container .header")
	require.Contains(t, css, ".container .header h1")
}

// TestMiddlewareBasePathWithoutSlash tests base path handling
func TestMiddlewareBasePathWithoutSlash(t *testing.T) {
	sssContent := []byte(`
.button {
  color: red;
}
`)
	mockFS := fstest.MapFS{
		"style.sss": &fstest.MapFile{Data: sssContent},
	}

	middleware := NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/style.sss", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	css := w.Body.String()
	require.NotEmpty(t, css, "CSS output should not be empty")
	require.Contains(t, css, ".button")
}

// TestMiddlewareNestedDirectory tests files in subdirectories
func TestMiddlewareNestedDirectory(t *testing.T) {
	sssContent := []byte(`
.btn {
  color: blue;
  padding: 10px;
}
`)
	mockFS := fstest.MapFS{
		"components/button.sss": &fstest.MapFile{Data: sssContent},
	}

	middleware := NewMiddleware("/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/css/components/button.sss", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	css := w.Body.String()
	require.NotEmpty(t, css, "CSS output should not be empty")
	require.Contains(t, css, ".btn")
}

// BenchmarkMiddleware benchmarks middleware compilation and serving
func BenchmarkMiddleware(b *testing.B) {
	sssContent := []byte(`
$primary: #336699;

.card {
  padding: 1rem;

  .title {
    color: $primary;
  }
}
`)

	mockFS := fstest.MapFS{
		"style.sss": &fstest.MapFile{Data: sssContent},
	}

	middleware := NewMiddleware("/assets/css", mockFS)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := middleware(next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/assets/css/style.sss", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}
}
