package events

import "time"

// Refreshed is published after a successful full fetch.
type Refreshed struct {
	Type    string    `json:"type"`
	RunID   string    `json:"runId"`
	Records int       `json:"records"`
	At      time.Time `json:"at"`
}

// RefreshFailed is published when a fetch aborts.
type RefreshFailed struct {
	Type  string    `json:"type"`
	RunID string    `json:"runId"`
	Error string    `json:"error"`
	At    time.Time `json:"at"`
}
