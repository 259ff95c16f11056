package events

import (
	"encoding/json"
	"testing"
)

func TestHubPublishTyped(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Publish(MakeEvent("req-1", TypeScrapeFinished, 1, map[string]int{"total": 3}))

	msg := <-ch
	var e Event
	if err := json.Unmarshal([]byte(msg), &e); err != nil {
		t.Fatalf("wire form is not JSON: %v", err)
	}
	if e.Type != TypeScrapeFinished {
		t.Errorf("type = %q", e.Type)
	}
	if e.RequestID != "req-1" {
		t.Errorf("request id = %q", e.RequestID)
	}
	if string(e.Data) != `{"total":3}` {
		t.Errorf("data = %s", e.Data)
	}
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// Channel buffer is 10; the overflow must not block Publish.
	for i := 0; i < 25; i++ {
		h.Publish(MakeEvent("", TypeJobStatusChanged, 1, nil))
	}
	if got := len(ch); got != 10 {
		t.Errorf("buffered = %d, want 10", got)
	}
}
