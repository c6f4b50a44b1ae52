// Package ui provides the terminal front end for vgallery.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. The root Model owns a surface.Document and
// the gallery.Gallery rendering into it; every message the program receives
// is either handled here (keys, mouse, window size, reloads, overlays) or
// handed to the gallery, whose timers and loads come back as messages of
// their own. Nothing runs outside the update loop except the commands Bubble
// Tea executes.
//
// # Package Structure
//
//   - app.go: Model, Options, message routing and Run
//   - layout.go: placing the container nodes the configuration refers to
//   - paint.go: rasterizing the surface into half-block cells
//   - picture.go: decoded and scaled images referenced by the surface
//   - status.go: the status line
//   - logs.go: the diagnostics log overlay
//   - help.go, keys.go: key bindings and the help overlay
//   - theme.go: chrome colors
//
// # Containers
//
// The configuration names its containers by id: #gallery, #thumbnails,
// #indicators, #prev, #next, #counter and #text. Only the ones it references
// are created. The gallery takes the space the others leave; see
// planContainers for the arrangement. A reference to any other id gets no
// container, so the gallery reports it as missing from the document.
//
// # Painting
//
// Geometry is in virtual pixels: one cell is Layout.CellWidth by
// Layout.CellHeight. Each cell shows two vertical samples with the upper half
// block, foreground for the top sample and background for the bottom one.
// Nodes are drawn in stacking order with their effective opacity, so the
// crossfade shows as a blend. Text replaces the block in its cell and is
// erased by any mostly opaque layer drawn over it.
//
// Images are loaded through the same imageload.Loader the gallery uses and
// scaled with imaging: Fill for cover, Fit for contain. Scaled renditions
// are cached by size.
//
// # Input
//
//   - Mouse motion over the gallery container pauses rotation; leaving it
//     resumes.
//   - A left press runs the click handler of the topmost node under the cell.
//   - ←/h and →/l step, 1-9 jump to a slide.
//   - L shows the tail of the diagnostics log, T cycles the theme, ? shows
//     help, q quits.
//
// Activating the link layer copies the slide's link to the clipboard.
package ui
