package surface

import (
	"sort"
	"strings"
)

// Fade classes understood by every renderer of the surface.
const (
	ClassFadeIn       = "fadeIn"
	ClassFadeOut      = "fadeOut"
	ClassFadeInHalf   = "fadeInHalf"
	ClassFadeInQuick  = "fadeInQuick"
	ClassFadeOutQuick = "fadeOutQuick"
)

// EffectiveOpacity resolves the node's opacity, letting fade classes win over
// the inline value the same way an !important rule would.
func (n *Node) EffectiveOpacity() float64 {
	switch {
	case n.HasClass(ClassFadeOut), n.HasClass(ClassFadeOutQuick):
		return 0
	case n.HasClass(ClassFadeIn), n.HasClass(ClassFadeInQuick):
		return 1
	case n.HasClass(ClassFadeInHalf):
		return 0.5
	}
	return n.Opacity
}

// Document owns the root of a visual tree.
type Document struct {
	root *Node
}

// NewDocument creates a document whose root spans width×height pixels.
func NewDocument(width, height int) *Document {
	root := New("body", Attrs{Box: Rect{Width: width, Height: height}})
	return &Document{root: root}
}

// Root returns the root node.
func (d *Document) Root() *Node { return d.root }

// Resize changes the root dimensions.
func (d *Document) Resize(width, height int) {
	d.root.Box.Width = width
	d.root.Box.Height = height
}

// Query resolves "#id" (or a bare id) to a node, or nil.
func (d *Document) Query(selector string) *Node {
	id := strings.TrimPrefix(strings.TrimSpace(selector), "#")
	if id == "" {
		return nil
	}
	return d.root.Find(id)
}

// Placed is a node with its absolute geometry resolved.
type Placed struct {
	Node  *Node
	Rect  Rect // absolute box
	Clip  Rect // visible portion after ancestor clipping
	Alpha float64
	order int
}

// Flatten returns every visible node in paint order: ascending z-index, then
// tree order. Hidden subtrees and fully clipped nodes are skipped.
func (d *Document) Flatten() []Placed {
	var out []Placed
	var visit func(n *Node, originX, originY int, clip Rect, alpha float64)
	visit = func(n *Node, originX, originY int, clip Rect, alpha float64) {
		if n.Hidden {
			return
		}
		abs := n.Box.Offset(originX, originY)
		a := alpha * n.EffectiveOpacity()
		visible := abs.Intersect(clip)
		if !visible.Empty() {
			out = append(out, Placed{Node: n, Rect: abs, Clip: visible, Alpha: a, order: len(out)})
		}
		childClip := clip
		if n.Clip {
			childClip = visible
		}
		for _, c := range n.children {
			visit(c, abs.Left, abs.Top, childClip, a)
		}
	}
	visit(d.root, 0, 0, d.root.Box, 1)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Node.Z != out[j].Node.Z {
			return out[i].Node.Z < out[j].Node.Z
		}
		return out[i].order < out[j].order
	})
	return out
}

// Hit returns the node whose click handler should run for a press at (x, y),
// or nil. The topmost node under the point is found first and the event then
// bubbles up to the nearest ancestor with a handler.
func (d *Document) Hit(x, y int) *Node {
	placed := d.Flatten()
	for i := len(placed) - 1; i >= 0; i-- {
		p := placed[i]
		if !p.Clip.Contains(x, y) {
			continue
		}
		for n := p.Node; n != nil; n = n.parent {
			if n.OnClick != nil {
				return n
			}
		}
		return nil
	}
	return nil
}
