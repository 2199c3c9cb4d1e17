// Package paths provides standardized filesystem paths.
//
// This package resolves the well-known directories the engine touches so
// every component agrees on the same layout.
//
// # Directory Structure
//
//	$XDG_CONFIG_HOME/coteditor-terminal/   (falls back to ~/.config)
//	  └── profiles.{yaml,yml,toml}         (shell profile definitions)
//	$XDG_DATA_HOME/coteditor-terminal/     (falls back to ~/.local/share)
//	  └── transcripts/                     (gzip session transcripts)
//
// # Usage
//
//	import "github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/shared/paths"
//
//	cfg := paths.ConfigDir()
//	dir := paths.Expand("~/projects")
package paths
