package notification

import "time"

// Message types pushed to subscribers.
const (
	TypeOutcome = "outcome"
	TypeState   = "state"
	TypeClosed  = "closed"
)

// Message is one event published under a topic.
type Message struct {
	Type    string      `json:"type"`
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}
