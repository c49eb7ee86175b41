// Package views holds the browser assets. Pages live in views/pages and
// shared pieces in views/components.
package views

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var staticFS embed.FS

// Static returns the embedded scripts and stylesheets.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
