// internal/api/http/assets.go
package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-marking/internal/storage"
)

// MountAssets serves the front-end: index.html at / and any other file by path.
func MountAssets(r chi.Router, bs *storage.FSStore) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		serveAsset(w, r, bs, "index.html")
	})

	// GET /*   -> returns the file at whatever follows /
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		serveAsset(w, r, bs, key)
	})
}

func serveAsset(w http.ResponseWriter, r *http.Request, bs *storage.FSStore, key string) {
	f, fi, err := bs.Open(key)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	defer f.Close()
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}
