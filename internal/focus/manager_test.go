package focus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	mu            sync.Mutex
	phaseChanges  []string // "previous->mode"
	stateChanges  int
	notifications []string
}

func (r *recordingBroadcaster) BroadcastFocusPhaseChanged(eventID, title, previousMode, mode string, remainingSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phaseChanges = append(r.phaseChanges, previousMode+"->"+mode)
}

func (r *recordingBroadcaster) BroadcastFocusStateChanged(mode string, running bool, remainingSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stateChanges++
}

func (r *recordingBroadcaster) BroadcastNotification(level, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, title)
}

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager(nil, 0, 0)
	state := m.Snapshot()

	assert.Equal(t, ModeFocus, state.Mode)
	assert.False(t, state.Running)
	assert.Equal(t, DefaultFocusMinutes*60, state.RemainingSeconds)
	assert.Equal(t, DefaultFocusMinutes, state.FocusMinutes)
	assert.Equal(t, DefaultBreakMinutes, state.BreakMinutes)
}

func TestStartPauseReset(t *testing.T) {
	b := &recordingBroadcaster{}
	m := NewManager(b, 25, 5)

	state := m.Start("42", "Deep Work")
	assert.True(t, state.Running)
	assert.Equal(t, "42", state.EventID)
	assert.Equal(t, "Deep Work", state.EventTitle)

	state = m.Pause()
	assert.False(t, state.Running)
	assert.Equal(t, ModeFocus, state.Mode)

	state = m.Reset()
	assert.False(t, state.Running)
	assert.Equal(t, 25*60, state.RemainingSeconds)
	assert.Empty(t, state.EventID)

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.GreaterOrEqual(t, b.stateChanges, 3)
}

func TestStartWhileRunningKeepsCountdown(t *testing.T) {
	m := NewManager(nil, 25, 5)
	defer m.Stop()

	m.Start("", "")
	before := m.Snapshot()

	state := m.Start("7", "Coding")
	assert.True(t, state.Running)
	assert.Equal(t, "7", state.EventID)
	assert.LessOrEqual(t, state.RemainingSeconds, before.RemainingSeconds)
}

func TestPhaseFlipFocusToBreak(t *testing.T) {
	b := &recordingBroadcaster{}
	m := NewManager(b, 25, 5)

	ch := make(chan struct{})
	m.running = true
	m.stopCh = ch
	m.remaining = 1

	m.tick(ch)

	state := m.Snapshot()
	assert.Equal(t, ModeBreak, state.Mode)
	assert.Equal(t, 5*60, state.RemainingSeconds)

	b.mu.Lock()
	defer b.mu.Unlock()
	require.Len(t, b.phaseChanges, 1)
	assert.Equal(t, "focus->break", b.phaseChanges[0])
	require.Len(t, b.notifications, 1)
	assert.Equal(t, "Focus complete", b.notifications[0])
}

func TestPhaseFlipBreakToFocus(t *testing.T) {
	b := &recordingBroadcaster{}
	m := NewManager(b, 25, 5)

	ch := make(chan struct{})
	m.mode = ModeBreak
	m.running = true
	m.stopCh = ch
	m.remaining = 1

	m.tick(ch)

	state := m.Snapshot()
	assert.Equal(t, ModeFocus, state.Mode)
	assert.Equal(t, 25*60, state.RemainingSeconds)

	b.mu.Lock()
	defer b.mu.Unlock()
	require.Len(t, b.phaseChanges, 1)
	assert.Equal(t, "break->focus", b.phaseChanges[0])
}

func TestStaleTickIgnoredAfterPause(t *testing.T) {
	m := NewManager(nil, 25, 5)

	ch := make(chan struct{})
	m.running = true
	m.stopCh = ch
	m.remaining = 100

	m.Pause()
	m.tick(ch)

	assert.Equal(t, 100, m.Snapshot().RemainingSeconds)
}

func TestConfigure(t *testing.T) {
	m := NewManager(nil, 25, 5)

	state, err := m.Configure(50, 10)
	require.NoError(t, err)
	assert.Equal(t, 50, state.FocusMinutes)
	assert.Equal(t, 10, state.BreakMinutes)
	assert.Equal(t, 50*60, state.RemainingSeconds)

	_, err = m.Configure(0, 10)
	assert.Error(t, err)
}
