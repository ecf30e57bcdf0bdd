package model

import "time"

// DispatchEvent is the audit record published when a dispatch is accepted.
// It carries counts only, never the message body or contact data.
type DispatchEvent struct {
	ID          string    `json:"id"`
	Mode        string    `json:"mode"`
	TargetCount int       `json:"target_count"`
	RequestedAt time.Time `json:"requested_at"`
}

// DispatchResult is returned to the caller of a successful send.
type DispatchResult struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
	Sent int    `json:"sent"`
}
