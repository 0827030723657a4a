package websocket

import (
	"log"

	"github.com/lifesync/backend/internal/storage/models"
)

// EventBroadcaster handles broadcasting WebSocket events.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastUpcomingEvent announces an event starting within the reminder window.
func (b *EventBroadcaster) BroadcastUpcomingEvent(event *models.Event, minutesUntil int) {
	payload := UpcomingEventPayload{
		EventID:      event.ID,
		Title:        event.Title,
		Category:     event.Category,
		Start:        event.Start,
		MinutesUntil: minutesUntil,
	}

	b.broadcast(NewMessage(TypeEventUpcoming, payload))
}

// BroadcastScheduleChanged announces a mutation of the event store.
func (b *EventBroadcaster) BroadcastScheduleChanged(action, eventID string, count int) {
	payload := ScheduleChangedPayload{
		Action:  action,
		EventID: eventID,
		Count:   count,
	}

	b.broadcast(NewMessage(TypeScheduleChanged, payload))
}

// BroadcastFocusPhaseChanged announces a focus timer phase transition.
func (b *EventBroadcaster) BroadcastFocusPhaseChanged(eventID, title, previousMode, mode string, remainingSeconds int) {
	payload := FocusPhasePayload{
		EventID:          eventID,
		Title:            title,
		PreviousMode:     previousMode,
		Mode:             mode,
		RemainingSeconds: remainingSeconds,
	}

	b.broadcast(NewMessage(TypeFocusPhaseChanged, payload))
}

// BroadcastFocusStateChanged announces a focus timer start/pause/reset.
func (b *EventBroadcaster) BroadcastFocusStateChanged(mode string, running bool, remainingSeconds int) {
	payload := FocusStatePayload{
		Mode:             mode,
		Running:          running,
		RemainingSeconds: remainingSeconds,
	}

	b.broadcast(NewMessage(TypeFocusStateChanged, payload))
}

// BroadcastPlanGenerated announces a completed AI planner run.
func (b *EventBroadcaster) BroadcastPlanGenerated(source string, added, rejected int) {
	payload := PlanGeneratedPayload{
		Source:   source,
		Added:    added,
		Rejected: rejected,
	}

	b.broadcast(NewMessage(TypePlanGenerated, payload))
}

// BroadcastNotification sends a notification to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(level, title, message string) {
	payload := NotificationPayload{
		Level:       level,
		Title:       title,
		Message:     message,
		Dismissible: true,
	}

	b.broadcast(NewMessage(TypeNotification, payload))
}

// broadcast sends a message to all connected clients.
func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}
