package dashboard

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
)

// DefaultAssetsPath is the local path used to serve embedded dashboard assets.
const DefaultAssetsPath = "/assets/"

//go:embed assets/*
var embeddedAssets embed.FS

// Assets returns the embedded stylesheet and client script as a filesystem
// rooted at the asset files themselves.
func Assets() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// This should never happen because the directory is embedded at build time.
		panic(fmt.Errorf("dashboard: failed to prepare embedded assets: %w", err))
	}
	return sub
}

// AssetsFS exposes the embedded assets for net/http consumers.
func AssetsFS() http.FileSystem {
	return http.FS(Assets())
}

// AssetsHandler returns an http.Handler that serves the embedded assets from the given prefix.
func AssetsHandler(prefix string) http.Handler {
	if prefix == "" {
		prefix = DefaultAssetsPath
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return http.StripPrefix(prefix, http.FileServer(AssetsFS()))
}
