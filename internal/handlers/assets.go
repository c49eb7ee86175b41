package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterAssets serves images, recordings and interface sounds from dir.
func RegisterAssets(r chi.Router, dir string) {
	files := http.FileServer(http.Dir(dir))
	for _, prefix := range []string{"/images/*", "/audio/*", "/sounds/*"} {
		r.Handle(prefix, files)
	}
}
