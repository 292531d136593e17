package handlers

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// StaticHandler serves files from assets under the /assets/ prefix
func StaticHandler(assets fs.FS) http.Handler {
	files := http.StripPrefix("/assets/", http.FileServerFS(assets))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set proper MIME types based on file extension
		switch strings.ToLower(path.Ext(r.URL.Path)) {
		case ".css":
			w.Header().Set("Content-Type", "text/css")
		case ".js":
			w.Header().Set("Content-Type", "application/javascript")
		case ".svg":
			w.Header().Set("Content-Type", "image/svg+xml")
		case ".ico":
			w.Header().Set("Content-Type", "image/x-icon")
		}

		files.ServeHTTP(w, r)
	})
}
