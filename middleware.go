package sssc

import (
	"io/fs"
	"net/http"
	"strings"
)

// NewMiddleware creates an HTTP middleware that compiles .sss files to
// CSS on-the-fly. It intercepts requests to files with the .sss
// extension, compiles them, and returns the resulting CSS with the
// appropriate Content-Type header.
//
// Parameters:
//   - basePath: The URL path prefix to match (e.g., "/assets/css")
//   - fileSystem: The filesystem to read .sss files from (e.g., os.DirFS("./assets/css"))
//
// When a request to /assets/css/style.sss is made, it will:
// 1. Check if the request path matches basePath and ends with .sss
// 2. Read the file from the provided filesystem
// 3. Parse and compile it from SSS to CSS
// 4. Return the compiled CSS with Content-Type: text/css
// 5. If the request is not GET/HEAD, is outside basePath or is not .sss,
// pass to next handler; a missing .sss file gets a 404 from the handler
func NewMiddleware(basePath string, fileSystem fs.FS) func(http.Handler) http.Handler {
	handler := NewHandler(fileSystem, basePath)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasPrefix(r.URL.Path, basePath) {
				next.ServeHTTP(w, r)
				return
			}

			if !strings.HasSuffix(r.URL.Path, ".sss") {
				next.ServeHTTP(w, r)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}
