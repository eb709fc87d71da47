package sssc

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/sssc-dev/sssc/expression"
)

// Error types for SSS compilation and serving
var (
	ErrNotFound          = errors.New("not found")
	ErrCompilationFailed = errors.New("compilation failed")
)

// Handler compiles and serves .sss files as CSS over HTTP.
type Handler struct {
	pathPrefix string
	fileSystem fs.FS
	format     expression.Format
}

// NewHandler creates a new SSS compilation handler.
// fileSystem is where to read .sss files from; pathPrefix is the URL
// path prefix to match and strip (e.g., "/assets/css").
func NewHandler(fileSystem fs.FS, pathPrefix string) http.Handler {
	return &Handler{
		pathPrefix: pathPrefix,
		fileSystem: fileSystem,
		format:     expression.DefaultFormat(),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.pathPrefix != "" && !strings.HasPrefix(r.URL.Path, h.pathPrefix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if !strings.HasSuffix(r.URL.Path, ".sss") {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	sssPath := strings.TrimPrefix(r.URL.Path, h.pathPrefix)
	if h.pathPrefix != "/" {
		sssPath = strings.TrimPrefix(sssPath, "/")
	}

	info, err := fs.Stat(h.fileSystem, sssPath)
	if err != nil || info.IsDir() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	css, err := Compile(h.fileSystem, sssPath, h.format)
	if err != nil {
		http.Error(w, "Compilation Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if r.Method != http.MethodHead {
		w.Write([]byte(css))
	}
}
