// Package logtail reads the end of the diagnostics log for the log overlay.
//
// # Overview
//
// vgallery writes its diagnostics with slog's text handler, one logfmt record
// per line:
//
//	time=2024-05-01T10:00:00.000+02:00 level=WARN msg="Number of links does not equal number of images. This will cause unintended consequences." gallery=01HX... kind=count field=links
//
// Read returns the last N raw lines and Tail parses them into Entry values so
// the UI can color by level and show the kind and field attributes.
//
// # Ring Buffer
//
// Read scans the file once and keeps the last maxLines in a circular buffer,
// so memory is O(maxLines) whatever the file size. Lines come back oldest
// first.
//
// # Parsing
//
// Parse understands bare and double-quoted values (with Go escapes, as slog
// writes them). A line that is not logfmt, such as output from the standard
// log package, comes back with Msg set to the whole line.
//
// # Error Handling
//
// A missing file yields no lines and no error; the log is only created once
// something is written. Other I/O errors are returned wrapped.
package logtail
