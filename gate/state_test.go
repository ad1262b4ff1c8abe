package gate

import (
	"errors"
	"testing"
)

func TestTracker_RecordAttempt(t *testing.T) {
	tr := NewTracker("http://api:8000")

	if n := tr.RecordAttempt(errors.New("connection refused")); n != 1 {
		t.Errorf("attempt = %d, want 1", n)
	}
	snap := tr.Snapshot()
	if snap.LastError != "connection refused" {
		t.Errorf("LastError = %q, want %q", snap.LastError, "connection refused")
	}
	if snap.LastProbeAt == nil {
		t.Error("LastProbeAt should be set after an attempt")
	}

	if n := tr.RecordAttempt(nil); n != 2 {
		t.Errorf("attempt = %d, want 2", n)
	}
	if snap := tr.Snapshot(); snap.LastError != "" {
		t.Errorf("LastError = %q, want empty after success", snap.LastError)
	}
}

func TestTracker_FinishIsTerminal(t *testing.T) {
	tr := NewTracker("http://api:8000")
	if tr.State() != StatePolling {
		t.Fatalf("initial state = %v, want polling", tr.State())
	}

	tr.Finish(StateHandedOff)
	tr.Finish(StateGaveUp)
	tr.Finish(StatePolling)

	if tr.State() != StateHandedOff {
		t.Errorf("state = %v, want handed_off", tr.State())
	}
	snap := tr.Snapshot()
	if snap.State != "handed_off" {
		t.Errorf("snapshot state = %q, want %q", snap.State, "handed_off")
	}
	if snap.FinishedAt == nil {
		t.Error("FinishedAt should be set")
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StatePolling:   "polling",
		StateHandedOff: "handed_off",
		StateGaveUp:    "gave_up",
		State(42):      "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
