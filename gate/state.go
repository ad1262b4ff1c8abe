package gate

import (
	"sync"
	"time"
)

// State is the lifecycle state of a gate.
type State int

const (
	// StatePolling is the initial state: probes are being issued.
	StatePolling State = iota
	// StateHandedOff is terminal: the target command has been started.
	StateHandedOff
	// StateGaveUp is terminal: the attempt limit or timeout was exhausted.
	StateGaveUp
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateHandedOff:
		return "handed_off"
	case StateGaveUp:
		return "gave_up"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the tracker.
type Snapshot struct {
	Target      string     `json:"target"`
	State       string     `json:"state"`
	Attempts    int        `json:"attempts"`
	LastError   string     `json:"last_error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	LastProbeAt *time.Time `json:"last_probe_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Tracker records gate progress. It is safe for concurrent use.
type Tracker struct {
	mu          sync.RWMutex
	target      string
	state       State
	attempts    int
	lastErr     string
	startedAt   time.Time
	lastProbeAt time.Time
	finishedAt  time.Time
}

// NewTracker creates a tracker in the polling state.
func NewTracker(target string) *Tracker {
	return &Tracker{
		target:    target,
		state:     StatePolling,
		startedAt: time.Now(),
	}
}

// RecordAttempt stores the outcome of a probe and returns the attempt number.
func (t *Tracker) RecordAttempt(err error) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.attempts++
	t.lastProbeAt = time.Now()
	if err != nil {
		t.lastErr = err.Error()
	} else {
		t.lastErr = ""
	}
	return t.attempts
}

// Finish moves the tracker into a terminal state. Terminal states are final;
// later calls are ignored.
func (t *Tracker) Finish(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StatePolling || s == StatePolling {
		return
	}
	t.state = s
	t.finishedAt = time.Now()
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Attempts returns the number of probes issued so far.
func (t *Tracker) Attempts() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.attempts
}

// Snapshot returns a copy of the tracker's fields.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Snapshot{
		Target:    t.target,
		State:     t.state.String(),
		Attempts:  t.attempts,
		LastError: t.lastErr,
		StartedAt: t.startedAt,
	}
	if !t.lastProbeAt.IsZero() {
		at := t.lastProbeAt
		s.LastProbeAt = &at
	}
	if !t.finishedAt.IsZero() {
		at := t.finishedAt
		s.FinishedAt = &at
	}
	return s
}
