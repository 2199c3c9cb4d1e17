package panel

import (
	"testing"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/split"
)

func makeBar(ids ...string) (*Bar, []*Tab) {
	b := NewBar()
	tabs := make([]*Tab, 0, len(ids))
	for _, id := range ids {
		t := newTab(&stubSession{id: id, title: "t-" + id})
		b.Add(t)
		tabs = append(tabs, t)
	}
	return b, tabs
}

func TestBarAddSelectsFirst(t *testing.T) {
	b, _ := makeBar("a", "b")
	if b.SelectedIndex() != 0 {
		t.Errorf("Expected first tab selected, got %d", b.SelectedIndex())
	}
	if b.Selected().ID() != "a" {
		t.Errorf("Expected a, got %s", b.Selected().ID())
	}
}

func TestBarEmptySelection(t *testing.T) {
	b := NewBar()
	if b.Selected() != nil {
		t.Error("Expected nil selection on empty bar")
	}
	if b.SelectedIndex() != -1 {
		t.Errorf("Expected -1, got %d", b.SelectedIndex())
	}
	if b.Next() != nil || b.Previous() != nil {
		t.Error("Expected nil cycling on empty bar")
	}
}

func TestBarCycling(t *testing.T) {
	b, _ := makeBar("a", "b", "c")

	if got := b.Next().ID(); got != "b" {
		t.Errorf("Expected b, got %s", got)
	}
	b.Next()
	if got := b.Next().ID(); got != "a" {
		t.Errorf("Expected wraparound to a, got %s", got)
	}
	if got := b.Previous().ID(); got != "c" {
		t.Errorf("Expected wraparound back to c, got %s", got)
	}
}

func TestBarRemoveAtSelection(t *testing.T) {
	b, _ := makeBar("a", "b", "c")
	b.Select(2)

	// Removing before the selection keeps the same tab selected.
	b.RemoveAt(0)
	if b.Selected().ID() != "c" {
		t.Errorf("Expected c still selected, got %s", b.Selected().ID())
	}

	// Removing the selected last tab slides to the new last.
	b.RemoveAt(1)
	if b.Selected().ID() != "b" {
		t.Errorf("Expected b selected, got %s", b.Selected().ID())
	}

	b.RemoveAt(0)
	if b.Selected() != nil || b.Len() != 0 {
		t.Error("Expected empty bar")
	}
}

func TestBarOwnerOf(t *testing.T) {
	b, tabs := makeBar("a", "b")
	tabs[1].container.AddSession(&stubSession{id: "nested"}, "b", split.ZoneRight)

	if got := b.OwnerOf("nested"); got != tabs[1] {
		t.Error("Expected owner lookup to find the nested pane's tab")
	}
	if b.OwnerOf("ghost") != nil {
		t.Error("Expected nil for unknown session")
	}
}

func TestBarDescriptors(t *testing.T) {
	b, _ := makeBar("a", "b")
	ds := b.Descriptors()
	if len(ds) != 2 || ds[0].ID != "a" || ds[1].ID != "b" {
		t.Errorf("Expected descriptors in order, got %+v", ds)
	}
	if ds[0].Title != "t-a" {
		t.Errorf("Expected title t-a, got %s", ds[0].Title)
	}
}
