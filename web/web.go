package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// Templates returns the bracket and admin page templates
func Templates() fs.FS {
	return sub("templates")
}

// Static returns the stylesheets and scripts served under /static/
func Static() fs.FS {
	return sub("static")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(assets, dir)
	if err != nil {
		// both directories are embedded at build time
		panic(err)
	}
	return f
}
