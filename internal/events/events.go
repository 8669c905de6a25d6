package events

import (
	"encoding/json"
	"time"
)

// Event types pushed over the SSE stream while a screening run is live.
const (
	TypePing           = "ping"
	TypeScreenStarted  = "screen_started"
	TypeScreenProgress = "screen_progress"
	TypeScreenFinished = "screen_finished"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ScreenProgress is the payload of a screen_progress event.
type ScreenProgress struct {
	Done   int    `json:"done"`
	Total  int    `json:"total"`
	Handle string `json:"handle"`
}

// ScreenFinished is the payload of a screen_finished event.
type ScreenFinished struct {
	Scored   int    `json:"scored"`
	RunID    string `json:"run_id"`
	RunDir   string `json:"run_dir,omitempty"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
