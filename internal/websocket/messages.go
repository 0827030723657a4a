package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeEventUpcoming     MessageType = "event.upcoming"
	TypeScheduleChanged   MessageType = "schedule.changed"
	TypeFocusPhaseChanged MessageType = "focus.phase_changed"
	TypeFocusStateChanged MessageType = "focus.state_changed"
	TypePlanGenerated     MessageType = "plan.generated"
	TypeNotification      MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// UpcomingEventPayload is the payload for event.upcoming messages.
type UpcomingEventPayload struct {
	EventID      string `json:"event_id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Start        string `json:"start"`
	MinutesUntil int    `json:"minutes_until"`
}

// ScheduleChangedPayload is the payload for schedule.changed messages.
type ScheduleChangedPayload struct {
	Action  string `json:"action"` // created, updated, deleted, imported, generated
	EventID string `json:"event_id,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// FocusPhasePayload is the payload for focus.phase_changed messages.
type FocusPhasePayload struct {
	EventID          string `json:"event_id,omitempty"`
	Title            string `json:"title,omitempty"`
	PreviousMode     string `json:"previous_mode"`
	Mode             string `json:"mode"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

// FocusStatePayload is the payload for focus.state_changed messages.
type FocusStatePayload struct {
	Mode             string `json:"mode"`
	Running          bool   `json:"running"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

// PlanGeneratedPayload is the payload for plan.generated messages.
type PlanGeneratedPayload struct {
	Source   string `json:"source"` // "prompt" or "image"
	Added    int    `json:"added"`
	Rejected int    `json:"rejected"`
}

// NotificationPayload is the payload for notification messages.
type NotificationPayload struct {
	Level       string `json:"level"` // info, warning, error, success
	Title       string `json:"title"`
	Message     string `json:"message"`
	Dismissible bool   `json:"dismissible"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
