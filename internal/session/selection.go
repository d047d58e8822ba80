package session

import (
	"github.com/tandemlist/tandem/internal/model"
)

// Focus is a durable logical selection: an item identity or a group
// identity, never a row index. Row indices die on every resort, filter
// toggle or collapse change; identities survive them. The zero Focus
// means no selection.
type Focus struct {
	Kind  EntryKind
	ID    string // when Kind == EntryItem
	Group string // when Kind == EntryGroupHeader
}

// FocusItem returns focus on the item with the given id.
func FocusItem(id string) Focus {
	return Focus{Kind: EntryItem, ID: id}
}

// FocusGroup returns focus on a collapsed group's header.
func FocusGroup(name string) Focus {
	return Focus{Kind: EntryGroupHeader, Group: name}
}

// None reports whether there is no selection.
func (f Focus) None() bool {
	return f.ID == "" && f.Group == ""
}

func (f Focus) matches(e Entry) bool {
	if f.Kind != e.Kind {
		return false
	}
	if f.Kind == EntryItem {
		return f.ID != "" && f.ID == e.ID
	}
	return f.Group != "" && f.Group == e.Group
}

func focusOf(e Entry) Focus {
	if e.Kind == EntryGroupHeader {
		return FocusGroup(e.Group)
	}
	return FocusItem(e.ID)
}

func indexOf(entries []Entry, f Focus) int {
	for i, e := range entries {
		if f.matches(e) {
			return i
		}
	}
	return -1
}

// Reconcile locates the prior focus in the freshly derived entries by
// identity. If it is gone (deleted, filtered out, swallowed by a
// collapse), focus falls back to the first entry, or to no selection
// when the list is empty.
func Reconcile(entries []Entry, prior Focus) Focus {
	if indexOf(entries, prior) >= 0 {
		return prior
	}
	if len(entries) == 0 {
		return Focus{}
	}
	return focusOf(entries[0])
}

// Move steps the focus by delta within the entries, clamped at both
// ends. Moving down from a lost or empty selection lands on the first
// entry.
func Move(entries []Entry, f Focus, delta int) Focus {
	if len(entries) == 0 {
		return Focus{}
	}
	i := indexOf(entries, f)
	if i < 0 {
		if delta > 0 {
			return focusOf(entries[0])
		}
		return f
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(entries) {
		i = len(entries) - 1
	}
	return focusOf(entries[i])
}

// State is the session's navigation state, threaded explicitly through
// every operation.
type State struct {
	Focus         Focus
	Collapsed     map[string]bool
	HideCompleted bool
}

// NewState returns an empty navigation state.
func NewState() State {
	return State{Collapsed: make(map[string]bool)}
}

// Entries derives the current selectable sequence from the collection.
func (s *State) Entries(items []model.Item) []Entry {
	return Entries(Buckets(items, s.HideCompleted), s.Collapsed)
}

// Reconcile re-anchors the focus after any structural change: resort,
// reload, filter or collapse.
func (s *State) Reconcile(items []model.Item) {
	s.Focus = Reconcile(s.Entries(items), s.Focus)
}

// MoveUp moves the focus one entry up, clamped.
func (s *State) MoveUp(items []model.Item) {
	s.Focus = Move(s.Entries(items), s.Focus, -1)
}

// MoveDown moves the focus one entry down, clamped.
func (s *State) MoveDown(items []model.Item) {
	s.Focus = Move(s.Entries(items), s.Focus, 1)
}

// CollapseFocused collapses the focused item's group, moving the focus
// to the group's header. Ungrouped items and group headers are no-ops.
func (s *State) CollapseFocused(items []model.Item) {
	if s.Focus.Kind != EntryItem || s.Focus.ID == "" {
		return
	}
	for _, it := range items {
		if it.ID == s.Focus.ID {
			if it.Grouped() {
				if s.Collapsed == nil {
					s.Collapsed = make(map[string]bool)
				}
				s.Collapsed[it.Group] = true
				s.Focus = FocusGroup(it.Group)
			}
			return
		}
	}
}

// ExpandFocused expands the focused group header, moving the focus to
// the group's first visible member. When an item is focused, its group
// is expanded (a no-op unless some other view collapsed it).
func (s *State) ExpandFocused(items []model.Item) {
	switch s.Focus.Kind {
	case EntryGroupHeader:
		name := s.Focus.Group
		if name == "" {
			return
		}
		delete(s.Collapsed, name)
		if id := s.firstMember(items, name); id != "" {
			s.Focus = FocusItem(id)
		}
	case EntryItem:
		for _, it := range items {
			if it.ID == s.Focus.ID {
				delete(s.Collapsed, it.Group)
				return
			}
		}
	}
}

// ToggleAllGroups expands every group if any is collapsed, otherwise
// collapses every named group. Focus follows: a header moves to its
// group's first member on expand-all, an item inside a newly collapsed
// group moves to that group's header.
func (s *State) ToggleAllGroups(items []model.Item) {
	if len(s.Collapsed) > 0 {
		wasHeader := s.Focus.Kind == EntryGroupHeader
		name := s.Focus.Group
		s.Collapsed = make(map[string]bool)
		if wasHeader && name != "" {
			if id := s.firstMember(items, name); id != "" {
				s.Focus = FocusItem(id)
			}
		}
		return
	}
	if s.Collapsed == nil {
		s.Collapsed = make(map[string]bool)
	}
	for _, it := range items {
		if it.Grouped() {
			s.Collapsed[it.Group] = true
		}
	}
	if s.Focus.Kind == EntryItem && s.Focus.ID != "" {
		for _, it := range items {
			if it.ID == s.Focus.ID {
				if s.Collapsed[it.Group] {
					s.Focus = FocusGroup(it.Group)
				}
				return
			}
		}
	}
}

// ToggleHideCompleted flips the completed-items filter and re-anchors
// the focus against the filtered structure.
func (s *State) ToggleHideCompleted(items []model.Item) {
	s.HideCompleted = !s.HideCompleted
	s.Reconcile(items)
}

// firstMember returns the id of the group's first visible member.
func (s *State) firstMember(items []model.Item, group string) string {
	for _, b := range Buckets(items, s.HideCompleted) {
		if b.Name == group && len(b.Items) > 0 {
			return b.Items[0].ID
		}
	}
	return ""
}
