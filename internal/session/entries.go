// Package session derives the visible structure of the list (groups,
// selectable entries) and keeps the user's focus anchored to a logical
// item or group across re-sorts, filtering, collapse changes and
// external reloads. All of it lives in an explicit State value; nothing
// here is ambient.
package session

import (
	"github.com/tandemlist/tandem/internal/model"
)

// EntryKind distinguishes the two things focus can rest on.
type EntryKind int

const (
	EntryItem EntryKind = iota
	EntryGroupHeader
)

// Entry is one selectable row: a single item, or the header of a
// collapsed group. It carries enough to render without reaching back
// into the collection.
type Entry struct {
	Kind  EntryKind
	ID    string // item id, when Kind == EntryItem
	Group string // group name; set for headers and for grouped items

	Text     string // display text, when Kind == EntryItem
	Done     bool
	Priority model.Priority
	Count    int // member count, when Kind == EntryGroupHeader
}

// Bucket is one named group (or the ungrouped tail) and its members, in
// collection order.
type Bucket struct {
	Name  string // "" for the ungrouped bucket
	Items []model.Item
}

// Buckets partitions the collection by group in first-occurrence order.
// It trusts the collection's order (the store's canonical sort already
// yields alphabetical grouping) and never re-sorts. Completed items
// are dropped first when hideCompleted is set, so a group whose items
// are all done disappears entirely.
func Buckets(items []model.Item, hideCompleted bool) []Bucket {
	var buckets []Bucket
	index := make(map[string]int)
	for _, it := range items {
		if hideCompleted && it.Done {
			continue
		}
		i, ok := index[it.Group]
		if !ok {
			i = len(buckets)
			index[it.Group] = i
			buckets = append(buckets, Bucket{Name: it.Group})
		}
		buckets[i].Items = append(buckets[i].Items, it)
	}
	return buckets
}

// Entries flattens buckets into the selectable sequence: one header
// entry per collapsed named group, one item entry per member otherwise.
// The ungrouped bucket's members are always individually visible; it
// cannot collapse.
func Entries(buckets []Bucket, collapsed map[string]bool) []Entry {
	var entries []Entry
	for _, b := range buckets {
		if b.Name != "" && collapsed[b.Name] {
			entries = append(entries, Entry{
				Kind:  EntryGroupHeader,
				Group: b.Name,
				Count: len(b.Items),
			})
			continue
		}
		for _, it := range b.Items {
			entries = append(entries, Entry{
				Kind:     EntryItem,
				ID:       it.ID,
				Group:    it.Group,
				Text:     it.Text,
				Done:     it.Done,
				Priority: it.Priority,
			})
		}
	}
	return entries
}
