package surface

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNode_AppendRemove(t *testing.T) {
	parent := New("div", Attrs{ID: "parent"})
	a := parent.Append(New("div", Attrs{ID: "a"}))
	b := parent.Append(New("div", Attrs{ID: "b"}))

	if len(parent.Children()) != 2 {
		t.Fatalf("children = %d, want 2", len(parent.Children()))
	}
	a.Remove()
	if len(parent.Children()) != 1 || parent.Children()[0] != b {
		t.Fatalf("after remove children = %v, want [b]", parent.Children())
	}
	if a.Parent() != nil {
		t.Fatalf("removed node still has parent")
	}

	other := New("div", Attrs{ID: "other"})
	other.Append(b)
	if len(parent.Children()) != 0 {
		t.Fatalf("re-appending should detach from previous parent")
	}
}

func TestNode_Classes(t *testing.T) {
	n := New("div", Attrs{Class: "vg_button  vg_button"})
	if got := n.Classes(); len(got) != 1 || got[0] != "vg_button" {
		t.Fatalf("Classes = %v, want [vg_button]", got)
	}
	n.AddClass(ClassFadeIn)
	n.RemoveClass("vg_button")
	if n.HasClass("vg_button") || !n.HasClass(ClassFadeIn) {
		t.Fatalf("Classes = %v", n.Classes())
	}
}

func TestEffectiveOpacity(t *testing.T) {
	n := New("div", Attrs{})
	n.Opacity = 0.3
	cases := []struct {
		class string
		want  float64
	}{
		{"", 0.3},
		{ClassFadeIn, 1},
		{ClassFadeOut, 0},
		{ClassFadeInHalf, 0.5},
		{ClassFadeOutQuick, 0},
	}
	for _, tc := range cases {
		node := New("div", Attrs{Class: tc.class})
		node.Opacity = n.Opacity
		if got := node.EffectiveOpacity(); got != tc.want {
			t.Fatalf("class %q opacity = %v, want %v", tc.class, got, tc.want)
		}
	}
}

func TestDocument_QueryAndAbsolute(t *testing.T) {
	doc := NewDocument(800, 600)
	gallery := doc.Root().Append(New("div", Attrs{ID: "gallery", Box: Rect{Left: 10, Top: 20, Width: 300, Height: 200}}))
	inner := gallery.Append(New("div", Attrs{ID: "inner", Box: Rect{Left: 5, Top: 5, Width: 10, Height: 10}}))

	if doc.Query("#inner") != inner || doc.Query("inner") != inner {
		t.Fatalf("Query did not resolve inner")
	}
	if doc.Query("#missing") != nil || doc.Query("  ") != nil {
		t.Fatalf("Query should return nil for unknown selectors")
	}
	want := Rect{Left: 15, Top: 25, Width: 10, Height: 10}
	if got := inner.Absolute(); got != want {
		t.Fatalf("Absolute = %+v, want %+v", got, want)
	}
}

func TestDocument_FlattenClipsAndOrders(t *testing.T) {
	doc := NewDocument(100, 100)
	strip := doc.Root().Append(New("div", Attrs{ID: "strip", Box: Rect{Width: 50, Height: 10}}))
	strip.Clip = true
	strip.Append(New("div", Attrs{ID: "outside", Box: Rect{Left: 60, Width: 10, Height: 10}, Z: 98}))
	strip.Append(New("div", Attrs{ID: "top", Box: Rect{Width: 10, Height: 10}, Z: 99}))
	strip.Append(New("div", Attrs{ID: "low", Box: Rect{Width: 10, Height: 10}, Z: 98}))

	placed := doc.Flatten()
	var ids []string
	for _, p := range placed {
		ids = append(ids, p.Node.ID)
	}
	want := []string{"", "strip", "low", "top"}
	if len(ids) != len(want) {
		t.Fatalf("Flatten ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Flatten ids = %v, want %v", ids, want)
		}
	}
}

func TestDocument_HitBubbles(t *testing.T) {
	doc := NewDocument(100, 100)
	clicked := 0
	button := doc.Root().Append(New("div", Attrs{ID: "button", Box: Rect{Width: 20, Height: 20}, Z: 97}))
	button.OnClick = func() tea.Cmd {
		clicked++
		return nil
	}
	button.Append(New("div", Attrs{ID: "label", Box: Rect{Width: 20, Height: 20}, Z: 97}))

	hit := doc.Hit(5, 5)
	if hit != button {
		t.Fatalf("Hit = %v, want button", hit)
	}
	hit.OnClick()
	if clicked != 1 {
		t.Fatalf("clicked = %d, want 1", clicked)
	}
	if doc.Hit(50, 50) != nil {
		t.Fatalf("Hit on empty area should be nil")
	}

	cover := doc.Root().Append(New("div", Attrs{ID: "cover", Box: Rect{Width: 100, Height: 100}, Z: 99}))
	if doc.Hit(5, 5) != nil {
		t.Fatalf("cover without handler should swallow the click")
	}
	cover.Hidden = true
	if doc.Hit(5, 5) != button {
		t.Fatalf("hidden cover should not intercept clicks")
	}
}
