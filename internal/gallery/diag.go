package gallery

import (
	"fmt"
	"log/slog"
)

// Kind classifies a configuration or layout diagnostic.
type Kind string

const (
	KindMissing Kind = "missing" // required option absent
	KindExists  Kind = "exists"  // referenced container not in the document
	KindCount   Kind = "count"   // parallel list length differs from images
	KindSize    Kind = "size"    // referenced container has zero width or height
)

// Diagnostic is a non-fatal problem found while resolving or starting a
// gallery.
type Diagnostic struct {
	Kind  Kind
	Field string
}

// Level returns the severity the diagnostic is logged at.
func (d Diagnostic) Level() slog.Level {
	switch d.Kind {
	case KindMissing, KindExists:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (d Diagnostic) Error() string {
	switch d.Kind {
	case KindMissing:
		return fmt.Sprintf("'%s' is missing from the configuration. Please add it.", d.Field)
	case KindExists:
		return fmt.Sprintf("%s element does not exist.", d.Field)
	case KindCount:
		return fmt.Sprintf("Number of %s does not equal number of images. This will cause unintended consequences.", d.Field)
	case KindSize:
		return fmt.Sprintf("%s element has a height or width of 0. This will cause nothing to show.", d.Field)
	}
	return fmt.Sprintf("%s: %s", d.Field, d.Kind)
}

// LoadError reports an image that could not be loaded.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("'%s' not found: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

const maxDiagnostics = 50

// report logs err and keeps it for Diagnostics.
func (g *Gallery) report(err error) {
	level := slog.LevelError
	attrs := []any{slog.String("gallery", g.id.String())}
	switch e := err.(type) {
	case Diagnostic:
		level = e.Level()
		attrs = append(attrs, slog.String("kind", string(e.Kind)), slog.String("field", e.Field))
	case *LoadError:
		attrs = append(attrs, slog.String("kind", "load"), slog.String("url", e.URL))
	}
	g.log.Log(g.ctx, level, err.Error(), attrs...)

	g.diagnostics = append(g.diagnostics, err)
	if len(g.diagnostics) > maxDiagnostics {
		g.diagnostics = g.diagnostics[len(g.diagnostics)-maxDiagnostics:]
	}
}
