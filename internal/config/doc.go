// Package config loads gallery files.
//
// # Overview
//
// A gallery file holds the carousel options (gallery, images, links, delay,
// fade, contain and the thumbnails/indicators/text/prev/next/counter/loading
// tables) plus an optional [layout] table that sizes the terminal containers.
// The carousel options decode straight into gallery.Overrides, whose pointer
// fields keep "absent" apart from "zero"; merging over defaults is the
// gallery package's job.
//
// # Formats
//
// The format is chosen by extension:
//
//   - .json, .jsonc: JSON with // and /* */ comments (jsonc)
//   - anything else: TOML (go-toml/v2)
//
// Example gallery.toml:
//
//	gallery = "#gallery"
//	images = ["~/Pictures/a.jpg", "b.jpg", "https://example.com/c.png"]
//	delay = 4000
//
//	[thumbnails]
//	element = "#thumbnails"
//
//	[counter]
//	element = "#counter"
//
//	[layout]
//	strip_rows = 6
//
// # Resolution
//
//  1. An explicit path is used as given (after ~ expansion)
//  2. Otherwise ~/.config/vgallery/gallery.toml
//  3. A missing file yields empty overrides and the default layout
//
// Relative image references resolve against the directory holding the file,
// or the working directory when there is none.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and parse errors. Problems with the options themselves are
// not errors here; the gallery reports them as diagnostics.
package config
