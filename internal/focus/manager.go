// Package focus implements a Pomodoro-style focus timer: alternating focus
// and break phases driven by a one-second tick, with phase transitions
// announced over WebSocket.
package focus

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Timer modes.
const (
	ModeFocus = "focus"
	ModeBreak = "break"
)

// Default phase lengths in minutes.
const (
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5
)

// Broadcaster announces focus timer changes to connected clients.
type Broadcaster interface {
	BroadcastFocusPhaseChanged(eventID, title, previousMode, mode string, remainingSeconds int)
	BroadcastFocusStateChanged(mode string, running bool, remainingSeconds int)
	BroadcastNotification(level, title, message string)
}

// State is a point-in-time snapshot of the timer.
type State struct {
	Mode             string `json:"mode"`
	Running          bool   `json:"running"`
	RemainingSeconds int    `json:"remaining_seconds"`
	FocusMinutes     int    `json:"focus_minutes"`
	BreakMinutes     int    `json:"break_minutes"`
	EventID          string `json:"event_id,omitempty"`
	EventTitle       string `json:"event_title,omitempty"`
}

// Manager runs a single shared focus session. One timer exists per server;
// starting a new session replaces the previous one.
type Manager struct {
	mu sync.Mutex

	mode         string
	running      bool
	remaining    int // seconds
	focusMinutes int
	breakMinutes int
	eventID      string
	eventTitle   string

	broadcaster Broadcaster
	stopCh      chan struct{}
}

// NewManager creates a focus timer with the given phase lengths. Values
// below one minute fall back to the defaults.
func NewManager(broadcaster Broadcaster, focusMinutes, breakMinutes int) *Manager {
	if focusMinutes < 1 {
		focusMinutes = DefaultFocusMinutes
	}
	if breakMinutes < 1 {
		breakMinutes = DefaultBreakMinutes
	}

	return &Manager{
		mode:         ModeFocus,
		remaining:    focusMinutes * 60,
		focusMinutes: focusMinutes,
		breakMinutes: breakMinutes,
		broadcaster:  broadcaster,
	}
}

// Start begins or resumes the countdown, optionally tying the session to an
// event. Starting an already running timer only updates the tied event.
func (m *Manager) Start(eventID, eventTitle string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.eventID = eventID
	m.eventTitle = eventTitle

	if !m.running {
		m.running = true
		m.stopCh = make(chan struct{})
		go m.run(m.stopCh)
		log.Printf("Focus timer started (%s, %ds remaining)", m.mode, m.remaining)
	}

	m.notifyStateLocked()
	return m.snapshotLocked()
}

// Pause halts the countdown without losing the remaining time.
func (m *Manager) Pause() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	m.notifyStateLocked()
	return m.snapshotLocked()
}

// Reset stops the timer and restores the full length of the current phase.
func (m *Manager) Reset() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	m.remaining = m.phaseSecondsLocked(m.mode)
	m.eventID = ""
	m.eventTitle = ""
	m.notifyStateLocked()
	return m.snapshotLocked()
}

// Configure updates the phase lengths. When the timer is idle the remaining
// time of the current phase is re-derived from the new length.
func (m *Manager) Configure(focusMinutes, breakMinutes int) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if focusMinutes < 1 || breakMinutes < 1 {
		return m.snapshotLocked(), fmt.Errorf("phase lengths must be at least one minute")
	}

	m.focusMinutes = focusMinutes
	m.breakMinutes = breakMinutes
	if !m.running {
		m.remaining = m.phaseSecondsLocked(m.mode)
	}

	return m.snapshotLocked(), nil
}

// Snapshot returns the current timer state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Stop shuts the timer down. Called during server shutdown.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) run(stopCh chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.tick(stopCh)
		}
	}
}

func (m *Manager) tick(stopCh chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A Pause/Reset raced with this tick.
	if m.stopCh != stopCh || !m.running {
		return
	}

	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining > 0 {
		return
	}

	previous := m.mode
	if m.mode == ModeFocus {
		m.mode = ModeBreak
	} else {
		m.mode = ModeFocus
	}
	m.remaining = m.phaseSecondsLocked(m.mode)

	log.Printf("Focus timer phase change: %s -> %s", previous, m.mode)

	if m.broadcaster != nil {
		m.broadcaster.BroadcastFocusPhaseChanged(m.eventID, m.eventTitle, previous, m.mode, m.remaining)
		if m.mode == ModeBreak {
			m.broadcaster.BroadcastNotification("success", "Focus complete", "Time for a break.")
		} else {
			m.broadcaster.BroadcastNotification("info", "Break over", "Back to focus.")
		}
	}
}

func (m *Manager) stopLocked() {
	if m.running {
		close(m.stopCh)
		m.stopCh = nil
		m.running = false
	}
}

func (m *Manager) phaseSecondsLocked(mode string) int {
	if mode == ModeBreak {
		return m.breakMinutes * 60
	}
	return m.focusMinutes * 60
}

func (m *Manager) notifyStateLocked() {
	if m.broadcaster != nil {
		m.broadcaster.BroadcastFocusStateChanged(m.mode, m.running, m.remaining)
	}
}

func (m *Manager) snapshotLocked() State {
	return State{
		Mode:             m.mode,
		Running:          m.running,
		RemainingSeconds: m.remaining,
		FocusMinutes:     m.focusMinutes,
		BreakMinutes:     m.breakMinutes,
		EventID:          m.eventID,
		EventTitle:       m.eventTitle,
	}
}
