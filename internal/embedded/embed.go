// Package embedded carries build-time assets for the hostlists CLI.
package embedded

import (
	"embed"
)

// FS embeds the scaffolding templates used by `hostlists init`.
//
//go:embed templates/*
var FS embed.FS
