// Package web embeds the public pages and the client script.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var files embed.FS

// Handler serves the embedded site; "/" resolves to static/index.html.
func Handler() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// "static" is embedded at build time, so this cannot fail at runtime.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
