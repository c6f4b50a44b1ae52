// Package surface is the small rendering-surface abstraction the gallery
// draws into.
//
// A Document holds a tree of Nodes. Each node has a box in virtual pixels
// relative to its parent, a background Paint, classes, a z-index and an
// optional click handler. The gallery only ever creates nodes, appends them
// to a parent, mutates their attributes and removes them; it never paints.
//
// Painting and input are the renderer's job. Flatten resolves absolute boxes,
// ancestor clipping and effective opacity into paint order, and Hit performs
// hit-testing with DOM-style bubbling so a click on a thumbnail caption
// reaches the hit-target that owns it.
//
// Fade classes (fadeIn, fadeOut, fadeInHalf, fadeInQuick, fadeOutQuick) form
// the styling contract shared with renderers and override inline opacity.
package surface
