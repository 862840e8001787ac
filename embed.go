package pagesmith

import "embed"

// EmbeddedAssets contains static assets shipped with the server:
// editor.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
