package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tandemlist/tandem/internal/model"
)

// record is the on-disk shape of one item: exactly three semantic
// fields, no version header. The task string packs priority marker,
// optional group prefix and display text into one field so the file
// stays readable by older tooling. Fields we don't understand are kept
// verbatim in extra and written back unchanged, so an edit or toggle
// from this session never strips what another writer put there.
type record struct {
	ID   string
	Task string
	Done bool

	extra map[string]json.RawMessage
}

func (r *record) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &r.ID); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		delete(raw, "id")
	}
	if v, ok := raw["task"]; ok {
		if err := json.Unmarshal(v, &r.Task); err != nil {
			return fmt.Errorf("record task: %w", err)
		}
		delete(raw, "task")
	}
	if v, ok := raw["done"]; ok {
		if err := json.Unmarshal(v, &r.Done); err != nil {
			return fmt.Errorf("record done: %w", err)
		}
		delete(raw, "done")
	}
	if len(raw) > 0 {
		r.extra = raw
	}
	return nil
}

func (r record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.extra)+3)
	for k, v := range r.extra {
		out[k] = v
	}
	var err error
	if out["id"], err = json.Marshal(r.ID); err != nil {
		return nil, err
	}
	if out["task"], err = json.Marshal(r.Task); err != nil {
		return nil, err
	}
	if out["done"], err = json.Marshal(r.Done); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// DecodeTask splits a packed task string into its three logical fields.
// The priority marker always precedes the group prefix. A colon whose
// prefix is empty after trimming does not name a group; the whole
// string stays as ungrouped text.
func DecodeTask(task string) (p model.Priority, group, text string) {
	clean := task
	switch {
	case strings.HasPrefix(clean, model.PriorityHigh.Marker()):
		p = model.PriorityHigh
		clean = clean[len(model.PriorityHigh.Marker()):]
	case strings.HasPrefix(clean, model.PriorityLow.Marker()):
		p = model.PriorityLow
		clean = clean[len(model.PriorityLow.Marker()):]
	}
	if before, after, ok := strings.Cut(clean, ":"); ok {
		group = strings.TrimSpace(before)
		if group != "" {
			return p, group, strings.TrimSpace(after)
		}
	}
	return p, "", strings.TrimSpace(clean)
}

// EncodeTask packs the three logical fields back into the stored form.
func EncodeTask(p model.Priority, group, text string) string {
	var b strings.Builder
	b.WriteString(p.Marker())
	if group != "" {
		b.WriteString(group)
		b.WriteString(": ")
	}
	b.WriteString(text)
	return b.String()
}

func decodeRecord(r record) model.Item {
	p, group, text := DecodeTask(r.Task)
	return model.Item{
		ID:       r.ID,
		Priority: p,
		Group:    group,
		Text:     text,
		Done:     r.Done,
		Extra:    r.extra,
	}
}

func encodeRecord(it model.Item) record {
	return record{
		ID:    it.ID,
		Task:  EncodeTask(it.Priority, it.Group, it.Text),
		Done:  it.Done,
		extra: it.Extra,
	}
}
