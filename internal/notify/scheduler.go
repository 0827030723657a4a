// Package notify runs the reminder scheduler: a periodic scan of the stored
// schedule that announces events about to start.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lifesync/backend/internal/schedule"
	"github.com/lifesync/backend/internal/storage"
	"github.com/lifesync/backend/internal/websocket"
)

// DefaultWindowMinutes is the reminder lead time when no setting overrides it.
const DefaultWindowMinutes = 5

// ReminderScheduler periodically scans for upcoming events and broadcasts
// reminders. Each event fires at most once per day; the fired set clears at
// midnight.
type ReminderScheduler struct {
	cron           *cron.Cron
	eventRepo      *storage.EventRepository
	settingsRepo   *storage.SettingsRepository
	broadcaster    *websocket.EventBroadcaster
	location       *time.Location
	fallbackWindow int
	now            func() time.Time

	mu    sync.Mutex
	fired map[string]bool // event id + "-" + day
}

// NewReminderScheduler creates a reminder scheduler. fallbackWindow is the
// lead time used when no stored setting overrides it; values below one
// minute fall back to DefaultWindowMinutes.
func NewReminderScheduler(
	eventRepo *storage.EventRepository,
	settingsRepo *storage.SettingsRepository,
	hub *websocket.Hub,
	location *time.Location,
	fallbackWindow int,
) *ReminderScheduler {
	var broadcaster *websocket.EventBroadcaster
	if hub != nil {
		broadcaster = websocket.NewEventBroadcaster(hub)
	}
	if location == nil {
		location = time.Local
	}
	if fallbackWindow < 1 {
		fallbackWindow = DefaultWindowMinutes
	}

	return &ReminderScheduler{
		cron:           cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		eventRepo:      eventRepo,
		settingsRepo:   settingsRepo,
		broadcaster:    broadcaster,
		location:       location,
		fallbackWindow: fallbackWindow,
		now:            time.Now,
		fired:          make(map[string]bool),
	}
}

// Start begins the reminder scheduler.
func (s *ReminderScheduler) Start() {
	log.Println("Starting reminder scheduler...")

	// Scan for upcoming events every 10 seconds
	s.cron.AddFunc("@every 10s", func() {
		s.Scan()
	})

	// Clear the fired set at midnight so weekly events remind again
	s.cron.AddFunc("0 0 0 * * *", func() {
		s.ResetFired()
	})

	s.cron.Start()
	log.Println("Reminder scheduler started")
}

// Stop gracefully shuts down the scheduler.
func (s *ReminderScheduler) Stop() {
	log.Println("Stopping reminder scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Reminder scheduler stopped")
}

// Scan broadcasts a reminder for every event starting within the reminder
// window that has not fired today.
func (s *ReminderScheduler) Scan() {
	ctx := context.Background()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		log.Printf("Failed to list events for reminder scan: %v", err)
		return
	}

	now := s.now().In(s.location)
	window := s.windowMinutes(ctx)
	day := now.Weekday().String()

	for _, event := range schedule.Upcoming(events, now, window) {
		key := event.ID + "-" + day

		s.mu.Lock()
		already := s.fired[key]
		if !already {
			s.fired[key] = true
		}
		s.mu.Unlock()

		if already {
			continue
		}

		minutes := schedule.MinutesUntil(&event, now)
		log.Printf("Reminder: %s starts in %d minute(s)", event.Title, minutes)

		if s.broadcaster != nil {
			s.broadcaster.BroadcastUpcomingEvent(&event, minutes)
			s.broadcaster.BroadcastNotification("info", "Upcoming: "+event.Title,
				"Starts at "+event.Start)
		}
	}
}

// windowMinutes reads the reminder lead time from settings, falling back to
// the configured window.
func (s *ReminderScheduler) windowMinutes(ctx context.Context) int {
	if s.settingsRepo == nil {
		return s.fallbackWindow
	}
	window, err := s.settingsRepo.GetInt(ctx, storage.SettingReminderWindowMin, s.fallbackWindow)
	if err != nil {
		log.Printf("Failed to read reminder window setting: %v", err)
		return s.fallbackWindow
	}
	return window
}

// ResetFired clears the fired set. Runs at midnight.
func (s *ReminderScheduler) ResetFired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.fired) > 0 {
		log.Printf("Clearing %d fired reminders for the new day", len(s.fired))
	}
	s.fired = make(map[string]bool)
}
