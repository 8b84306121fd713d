package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessions_Lookup(t *testing.T) {
	s := NewSessions(time.Hour)

	csv := s.NewCSV()
	manual := s.NewManual()

	got, err := s.CSV(csv.ID())
	if err != nil || got != csv {
		t.Errorf("CSV(%s) = %v, %v", csv.ID(), got, err)
	}
	gotManual, err := s.Manual(manual.ID())
	if err != nil || gotManual != manual {
		t.Errorf("Manual(%s) = %v, %v", manual.ID(), gotManual, err)
	}

	// IDs do not cross session kinds.
	if _, err := s.CSV(manual.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("CSV(manual id) = %v, want ErrSessionNotFound", err)
	}
	if _, err := s.Manual("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Manual(nope) = %v, want ErrSessionNotFound", err)
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
}

func TestSessions_Close(t *testing.T) {
	s := NewSessions(time.Hour)
	csv := s.NewCSV()
	manual := s.NewManual()

	if err := s.CloseCSV(csv.ID()); err != nil {
		t.Errorf("CloseCSV error = %v", err)
	}
	if err := s.CloseCSV(csv.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second CloseCSV = %v, want ErrSessionNotFound", err)
	}
	if err := s.CloseManual(manual.ID()); err != nil {
		t.Errorf("CloseManual error = %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
}

func TestSessions_Sweep(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(30 * time.Minute)
	s.now = func() time.Time { return now }

	idle := s.NewCSV()
	active := s.NewManual()

	now = now.Add(20 * time.Minute)
	if _, err := s.Manual(active.ID()); err != nil {
		t.Fatal(err)
	}

	now = now.Add(15 * time.Minute)
	if removed := s.Sweep(); removed != 1 {
		t.Errorf("Sweep() removed %d, want 1", removed)
	}
	if _, err := s.CSV(idle.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session still present: %v", err)
	}
	if _, err := s.Manual(active.ID()); err != nil {
		t.Errorf("active session removed: %v", err)
	}
}

func TestNewSessions_DefaultTTL(t *testing.T) {
	if s := NewSessions(0); s.ttl != DefaultSessionTTL {
		t.Errorf("ttl = %v, want %v", s.ttl, DefaultSessionTTL)
	}
}

func TestSessions_StartSweeperStops(t *testing.T) {
	s := NewSessions(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.StartSweeper(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
