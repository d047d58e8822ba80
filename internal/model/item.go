package model

import (
	"encoding/json"
	"strings"
)

// Priority represents an item's priority tier
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityHigh
)

// String returns the display name for a priority
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "none"
	}
}

// Marker returns the literal prefix the priority is stored under
// ("! " for low, "!! " for high, "" for none).
func (p Priority) Marker() string {
	switch p {
	case PriorityLow:
		return "! "
	case PriorityHigh:
		return "!! "
	default:
		return ""
	}
}

// Item is the persisted unit: one todo entry in the shared file.
//
// ID is assigned once at creation and never changes; it is the only
// identity the merge protocol and the selection model trust. Group is
// purely presentational ("" means ungrouped). Extra carries any fields
// an older or foreign record had that we don't understand, so an
// edit/toggle from this session doesn't strip them from the file.
type Item struct {
	ID       string
	Priority Priority
	Group    string
	Text     string
	Done     bool

	Extra map[string]json.RawMessage
}

// Grouped reports whether the item belongs to a named group.
func (it Item) Grouped() bool {
	return it.Group != ""
}

// SortKey returns the canonical ordering key: grouped items first,
// then case-insensitive by group and text; ungrouped items last,
// case-insensitive by text alone.
func (it Item) SortKey() (tier int, group, text string) {
	if it.Grouped() {
		return 0, strings.ToLower(it.Group), strings.ToLower(it.Text)
	}
	return 1, "", strings.ToLower(it.Text)
}

// Less orders items by SortKey. The key is total: ties fall through to
// plain string comparison, so the order is deterministic regardless of
// insertion order.
func (it Item) Less(other Item) bool {
	at, ag, ax := it.SortKey()
	bt, bg, bx := other.SortKey()
	if at != bt {
		return at < bt
	}
	if ag != bg {
		return ag < bg
	}
	return ax < bx
}
