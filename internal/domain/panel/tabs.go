package panel

import (
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/split"
)

// Descriptor is the lightweight tab view the bar presentation renders
// from: identity, displayed title, and the running indicator.
type Descriptor struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Running bool   `json:"running"`
}

// Tab couples one split container with its descriptor state. The tab id
// is the id of the session it was created on and never changes, even
// when that session later moves or the pane set changes underneath it.
type Tab struct {
	id        string
	title     string
	running   bool
	container *split.Container
	// preferred is the session focus returns to when the tab is
	// selected again.
	preferred string
}

func newTab(s session.Session) *Tab {
	return &Tab{
		id:        s.ID(),
		title:     s.Title(),
		running:   s.IsRunning(),
		container: split.NewContainer(s.ID(), s),
		preferred: s.ID(),
	}
}

// ID returns the tab identity.
func (t *Tab) ID() string { return t.id }

// Container returns the tab's pane tree owner.
func (t *Tab) Container() *split.Container { return t.container }

// Descriptor returns the tab's current bar view.
func (t *Tab) Descriptor() Descriptor {
	return Descriptor{ID: t.id, Title: t.title, Running: t.running}
}

// Bar is the ordered tab list plus the selection index. It is a plain
// model; the coordinator serializes access.
type Bar struct {
	tabs     []*Tab
	selected int
}

// NewBar creates an empty bar with no selection.
func NewBar() *Bar {
	return &Bar{selected: -1}
}

// Len returns the number of tabs.
func (b *Bar) Len() int { return len(b.tabs) }

// Add appends t. The first tab added becomes the selection.
func (b *Bar) Add(t *Tab) {
	b.tabs = append(b.tabs, t)
	if b.selected < 0 {
		b.selected = 0
	}
}

// Index returns the position of the tab with the given id, -1 if absent.
func (b *Bar) Index(id string) int {
	for i, t := range b.tabs {
		if t.id == id {
			return i
		}
	}
	return -1
}

// ByID returns the tab with the given id, nil if absent.
func (b *Bar) ByID(id string) *Tab {
	if i := b.Index(id); i >= 0 {
		return b.tabs[i]
	}
	return nil
}

// OwnerOf returns the tab whose container holds the given session.
func (b *Bar) OwnerOf(sessionID string) *Tab {
	for _, t := range b.tabs {
		if t.container.Find(sessionID) != nil {
			return t
		}
	}
	return nil
}

// At returns the tab at position i, nil when out of range.
func (b *Bar) At(i int) *Tab {
	if i < 0 || i >= len(b.tabs) {
		return nil
	}
	return b.tabs[i]
}

// Selected returns the selected tab, nil when the bar is empty.
func (b *Bar) Selected() *Tab {
	return b.At(b.selected)
}

// SelectedIndex returns the selection position, -1 when empty.
func (b *Bar) SelectedIndex() int {
	if len(b.tabs) == 0 {
		return -1
	}
	return b.selected
}

// Select moves the selection to position i.
func (b *Bar) Select(i int) bool {
	if i < 0 || i >= len(b.tabs) {
		return false
	}
	b.selected = i
	return true
}

// Next moves the selection forward with wraparound and returns the
// newly selected tab.
func (b *Bar) Next() *Tab {
	if len(b.tabs) == 0 {
		return nil
	}
	b.selected = (b.selected + 1) % len(b.tabs)
	return b.tabs[b.selected]
}

// Previous moves the selection backward with wraparound and returns the
// newly selected tab.
func (b *Bar) Previous() *Tab {
	if len(b.tabs) == 0 {
		return nil
	}
	b.selected = (b.selected - 1 + len(b.tabs)) % len(b.tabs)
	return b.tabs[b.selected]
}

// RemoveAt deletes the tab at position i. When the selected tab is
// removed the selection slides to the tab that took its place, or the
// new last tab.
func (b *Bar) RemoveAt(i int) {
	if i < 0 || i >= len(b.tabs) {
		return
	}
	b.tabs = append(b.tabs[:i], b.tabs[i+1:]...)
	switch {
	case len(b.tabs) == 0:
		b.selected = -1
	case i < b.selected:
		b.selected--
	case b.selected >= len(b.tabs):
		b.selected = len(b.tabs) - 1
	}
}

// Descriptors returns the bar view in tab order.
func (b *Bar) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(b.tabs))
	for _, t := range b.tabs {
		out = append(out, t.Descriptor())
	}
	return out
}
