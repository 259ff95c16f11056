package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub.
const (
	TypeScrapeStarted    = "scrape_started"
	TypeScrapeFinished   = "scrape_finished"
	TypeScrapeFailed     = "scrape_failed"
	TypeJobStatusChanged = "job_status_changed"
	TypeConfigUpdated    = "config_updated"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) Event {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	return Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
}

// JSON is the wire form written to SSE subscribers.
func (e Event) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}
