package model

import "time"

const (
	MessageSuccess = "success"
	MessageDanger  = "danger"
)

// Message is a toast shown to the shopper or admin.
type Message struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	ExpiresAt time.Time `json:"expires_at"`
}
