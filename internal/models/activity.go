package models

import "time"

// Activity is one entry of the audit feed.
type Activity struct {
	ID     int64     `json:"id"`
	UserID string    `json:"userId"`
	Role   Role      `json:"role"`
	Action string    `json:"action"`
	Target string    `json:"target,omitempty"`
	At     time.Time `json:"at"`
}

// ActivityFilter selects activities of one user; Limit 0 means no limit.
type ActivityFilter struct {
	UserID string
	Limit  int
}
