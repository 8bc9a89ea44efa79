package edgeproxy

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
)

// FileServer serves files from root. Unlike http.FileServer it answers
// ".../index.html" directly instead of redirecting to the directory, which
// would bounce forever behind rewrite.Middleware, and it never lists
// directories.
func FileServer(root http.FileSystem) http.Handler {
	files := http.FileServer(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		switch {
		case path.Base(name) == "index.html":
			serveIndex(w, r, root, name)
		case isDir(root, name):
			http.NotFound(w, r)
		default:
			files.ServeHTTP(w, r)
		}
	})
}

func isDir(root http.FileSystem, name string) bool {
	f, err := root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.IsDir()
}

func serveIndex(w http.ResponseWriter, r *http.Request, root http.FileSystem, name string) {
	f, err := root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
