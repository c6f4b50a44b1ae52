// Package imageload turns opaque image references into decoded pixels.
//
// References are treated as local paths unless they start with http:// or
// https://. Relative paths resolve against the configured base directory
// (normally the directory holding the gallery config) and a leading "~"
// expands to the home directory.
//
// Decoding goes through imaging so EXIF orientation is respected; WebP is
// sniffed from the RIFF header and decoded with chai2010/webp.
//
// Successful loads are memoized in a go-cache with a ten minute TTL, so the
// renderer and the gallery's preload path can both ask for the same asset
// without decoding it twice. Failures are never memoized.
//
// Remote requests are bounded by the http.Client timeout (10s default). A
// hung server therefore surfaces as an ordinary load error.
package imageload
