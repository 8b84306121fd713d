package core

// scheduler.go keeps authoring sessions by ID and expires idle ones.
//
// Sessions live only in memory. The sweeper runs immediately on start, then
// every interval, dropping sessions untouched for longer than the TTL. It
// stops when its context is cancelled.

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultSessionTTL is how long an untouched session is kept.
const DefaultSessionTTL = 2 * time.Hour

type identified interface {
	ID() string
}

type sessionEntry[T identified] struct {
	session  T
	lastUsed time.Time
}

// registry stores one kind of session.
type registry[T identified] struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry[T]
}

func newRegistry[T identified]() *registry[T] {
	return &registry[T]{entries: make(map[string]*sessionEntry[T])}
}

func (r *registry[T]) put(s T, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[s.ID()] = &sessionEntry[T]{session: s, lastUsed: now}
}

func (r *registry[T]) get(id string, now time.Time) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastUsed = now
	return e.session, true
}

func (r *registry[T]) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	delete(r.entries, id)
	return ok
}

func (r *registry[T]) sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func (r *registry[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sessions holds every open authoring session.
type Sessions struct {
	ttl    time.Duration
	now    func() time.Time
	csv    *registry[*CSVSession]
	manual *registry[*ManualSession]
}

// NewSessions returns an empty session store. A non-positive ttl uses
// DefaultSessionTTL.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		ttl:    ttl,
		now:    time.Now,
		csv:    newRegistry[*CSVSession](),
		manual: newRegistry[*ManualSession](),
	}
}

// NewCSV opens a CSV authoring session.
func (s *Sessions) NewCSV() *CSVSession {
	sess := NewCSVSession()
	s.csv.put(sess, s.now())
	return sess
}

// CSV returns the CSV session with the given ID.
func (s *Sessions) CSV(id string) (*CSVSession, error) {
	sess, ok := s.csv.get(id, s.now())
	if !ok {
		return nil, fmt.Errorf("csv %w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// CloseCSV discards a CSV session.
func (s *Sessions) CloseCSV(id string) error {
	if !s.csv.remove(id) {
		return fmt.Errorf("csv %w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// NewManual opens a manual authoring session.
func (s *Sessions) NewManual() *ManualSession {
	sess := NewManualSession()
	s.manual.put(sess, s.now())
	return sess
}

// Manual returns the manual session with the given ID.
func (s *Sessions) Manual(id string) (*ManualSession, error) {
	sess, ok := s.manual.get(id, s.now())
	if !ok {
		return nil, fmt.Errorf("manual %w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// CloseManual discards a manual session.
func (s *Sessions) CloseManual(id string) error {
	if !s.manual.remove(id) {
		return fmt.Errorf("manual %w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// Count returns the number of open sessions.
func (s *Sessions) Count() int {
	return s.csv.len() + s.manual.len()
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	return s.csv.sweep(cutoff) + s.manual.sweep(cutoff)
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (s *Sessions) StartSweeper(ctx context.Context, interval time.Duration) {
	slog.Info("session sweeper started", "ttl", s.ttl, "interval", interval)

	s.runSweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

func (s *Sessions) runSweep() {
	start := time.Now()
	removed := s.Sweep()
	if removed > 0 {
		slog.Info("expired idle sessions",
			"removed", removed,
			"open", s.Count(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}
	slog.Debug("session sweep found nothing to expire", "open", s.Count())
}
