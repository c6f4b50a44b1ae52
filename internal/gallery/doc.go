// Package gallery implements the carousel: configuration resolution, layout
// geometry, the preload cache, thumbnail and indicator navigation, the shell
// of background layers and the rotation state machine that ties them
// together.
//
// # Rotation
//
// A gallery tracks an unbounded position counter that starts at
// len(images)*10000; the active slide is position mod len(images). A slide
// change moves the counter by a signed offset and runs as one transition:
//
//	ChangeImage(offset)
//	    position += offset, Transitioning
//	    load the new slide              (async, or sync when cached)
//	    shift thumbnails / update dots  (immediately)
//	    swap text at fade/2
//	on load: cancel timer, paint the back layer, fade out the front layer
//	after fade+100ms: repaint the front layer, counter, link, Idle,
//	    restart the timer unless hovered, preload the next slide
//
// While Transitioning, every ChangeImage call is dropped. Hovering pauses the
// auto-rotation timer and resumes it later with whatever time was left.
//
// # Timers and loads
//
// The package has no goroutines of its own. Timers are tea.Tick commands and
// image loads are commands that return a message; the caller feeds those
// messages back through Update. Each message carries the gallery's ULID and,
// for timers, a generation number. Cancelling a timer bumps the generation,
// so a tick that was already in flight is ignored when it arrives. The resize
// debounce works the same way.
//
// # Visual tree
//
// Everything the gallery shows is a surface.Node. Element ids (vg_wrapper,
// vg_click, vg_animator, vg_thumb_<n>, vg_indicator_<n>, ...) and classes
// (vg_cover, vg_contain, vg_thumb_transition, fade classes) are the styling
// contract renderers rely on.
//
// # Diagnostics
//
// Configuration and layout problems never stop a gallery. They are logged at
// error or warning level through slog and kept in Diagnostics for display.
package gallery
