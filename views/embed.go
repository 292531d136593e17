package views

import "embed"

// Assets holds the static files served under /assets
//
//go:embed assets
var Assets embed.FS
