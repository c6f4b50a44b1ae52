package surface

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a box in virtual pixels. Node boxes are relative to the parent node;
// rects returned by Flatten are absolute.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Top + r.Height }

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Offset translates the rect by the given origin.
func (r Rect) Offset(x, y int) Rect {
	r.Left += x
	r.Top += y
	return r
}

// Intersect returns the overlap of two rects (empty when disjoint).
func (r Rect) Intersect(o Rect) Rect {
	left := max(r.Left, o.Left)
	top := max(r.Top, o.Top)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{Left: left, Top: top}
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Paint is a background: an optional color with an optional image over it.
type Paint struct {
	Color string
	Image string
}

// IsZero reports whether nothing would be painted.
func (p Paint) IsZero() bool { return p.Color == "" && p.Image == "" }

// Attrs are the attributes a node is created with.
type Attrs struct {
	ID    string
	Class string // space separated
	Box   Rect
	Paint Paint
	Text  string
	Z     int
	Data  map[string]string
}

// Node is a single element of the visual tree.
type Node struct {
	ID      string
	Tag     string
	Box     Rect
	Paint   Paint
	Opacity float64
	Z       int
	Text    string
	Color   string // text color
	Border  string // outline color
	Href    string
	Hidden  bool
	Clip    bool
	Round   bool
	Data    map[string]string

	// OnClick runs when the node, or a descendant without its own handler,
	// is activated.
	OnClick func() tea.Cmd

	classes  []string
	parent   *Node
	children []*Node
}

// New creates a detached node with the given attributes.
func New(tag string, attrs Attrs) *Node {
	n := &Node{
		ID:      attrs.ID,
		Tag:     tag,
		Box:     attrs.Box,
		Paint:   attrs.Paint,
		Opacity: 1,
		Z:       attrs.Z,
		Text:    attrs.Text,
		Data:    attrs.Data,
	}
	for _, class := range strings.Fields(attrs.Class) {
		n.AddClass(class)
	}
	return n
}

// Append attaches child as the last child of n and returns child.
func (n *Node) Append(child *Node) *Node {
	if child.parent != nil {
		child.Remove()
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Clear detaches every child of n.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Parent returns the parent node or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node { return n.children }

// AddClass adds a class if not already present.
func (n *Node) AddClass(class string) {
	if n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

// RemoveClass removes a class if present.
func (n *Node) RemoveClass(class string) {
	for i, c := range n.classes {
		if c == class {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Classes returns the node's classes in the order they were added.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// Find returns the first node in the subtree (including n) with the given id.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in the subtree carrying the given class.
func (n *Node) FindAll(class string) []*Node {
	var out []*Node
	n.walk(func(node *Node) {
		if node.HasClass(class) {
			out = append(out, node)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// Absolute returns the node's box in document coordinates.
func (n *Node) Absolute() Rect {
	r := n.Box
	for p := n.parent; p != nil; p = p.parent {
		r = r.Offset(p.Box.Left, p.Box.Top)
	}
	return r
}

// Datum returns the data value for key, or "" when unset.
func (n *Node) Datum(key string) string {
	if n.Data == nil {
		return ""
	}
	return n.Data[key]
}
