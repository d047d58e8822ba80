package store

import (
	"encoding/json"
	"testing"

	"github.com/tandemlist/tandem/internal/model"
)

func TestDecodeTask(t *testing.T) {
	tests := []struct {
		task     string
		priority model.Priority
		group    string
		text     string
	}{
		{"Buy milk", model.PriorityNone, "", "Buy milk"},
		{"! Buy milk", model.PriorityLow, "", "Buy milk"},
		{"!! Buy milk", model.PriorityHigh, "", "Buy milk"},
		{"Work: review PR", model.PriorityNone, "Work", "review PR"},
		{"! Work: review PR", model.PriorityLow, "Work", "review PR"},
		{"!! Work: review PR", model.PriorityHigh, "Work", "review PR"},
		// No space after the colon
		{"Work:Zebra", model.PriorityNone, "Work", "Zebra"},
		// The marker must be a prefix, not appear anywhere
		{"Wash the car !! now", model.PriorityNone, "", "Wash the car !! now"},
		// "!!!" is high priority followed by a literal "! "
		{"!! ! stacked", model.PriorityHigh, "", "! stacked"},
		// A colon with an empty prefix doesn't name a group
		{": orphan", model.PriorityNone, "", ": orphan"},
		{"  : orphan", model.PriorityNone, "", ": orphan"},
		// Only the first colon separates the group
		{"Work: due: tomorrow", model.PriorityNone, "Work", "due: tomorrow"},
	}

	for _, tt := range tests {
		p, group, text := DecodeTask(tt.task)
		if p != tt.priority || group != tt.group || text != tt.text {
			t.Errorf("DecodeTask(%q) = (%v, %q, %q), want (%v, %q, %q)",
				tt.task, p, group, text, tt.priority, tt.group, tt.text)
		}
	}
}

func TestEncodeTask(t *testing.T) {
	tests := []struct {
		priority model.Priority
		group    string
		text     string
		want     string
	}{
		{model.PriorityNone, "", "Buy milk", "Buy milk"},
		{model.PriorityLow, "", "Buy milk", "! Buy milk"},
		{model.PriorityHigh, "Work", "review PR", "!! Work: review PR"},
		{model.PriorityNone, "Work", "review PR", "Work: review PR"},
	}

	for _, tt := range tests {
		if got := EncodeTask(tt.priority, tt.group, tt.text); got != tt.want {
			t.Errorf("EncodeTask(%v, %q, %q) = %q, want %q",
				tt.priority, tt.group, tt.text, got, tt.want)
		}
	}
}

// The priority marker must always precede the group prefix, and a
// decode of an encode must reproduce the decoded fields exactly.
func TestTaskEncodingLossless(t *testing.T) {
	tasks := []string{
		"Buy milk",
		"! Buy milk",
		"!! Work: fix the outage",
		"Work:Zebra",
		"home: water the plants",
	}
	for _, task := range tasks {
		p1, g1, x1 := DecodeTask(task)
		p2, g2, x2 := DecodeTask(EncodeTask(p1, g1, x1))
		if p1 != p2 || g1 != g2 || x1 != x2 {
			t.Errorf("re-decode of %q drifted: (%v,%q,%q) -> (%v,%q,%q)",
				task, p1, g1, x1, p2, g2, x2)
		}
	}
}

func TestRecordPreservesUnknownFields(t *testing.T) {
	in := []byte(`{"id":"a1","task":"Work: thing","done":false,"color":"red","nested":{"x":1}}`)

	var r record
	if err := json.Unmarshal(in, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.ID != "a1" || r.Task != "Work: thing" || r.Done {
		t.Fatalf("semantic fields wrong: %+v", r)
	}

	// Mutate like a toggle would, then write back
	r.Done = true
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if string(raw["color"]) != `"red"` {
		t.Errorf("extra field color lost: %s", out)
	}
	if string(raw["nested"]) != `{"x":1}` {
		t.Errorf("extra field nested lost: %s", out)
	}
	if string(raw["done"]) != "true" {
		t.Errorf("done not updated: %s", out)
	}
}

func TestRecordMalformedFieldType(t *testing.T) {
	var r record
	if err := json.Unmarshal([]byte(`{"id":"a1","task":42,"done":false}`), &r); err == nil {
		t.Fatal("expected error for non-string task")
	}
}
