package service

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fireRecorder struct {
	mu    sync.Mutex
	fired []string
}

func (r *fireRecorder) fire(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, sessionID)
}

func (r *fireRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fired)
}

func TestTimerScheduler_FiresOnce(t *testing.T) {
	rec := &fireRecorder{}
	s := NewTimerScheduler(10*time.Millisecond, rec.fire, zerolog.Nop())
	defer s.Stop()

	s.Schedule("CHAT-1-abc")
	time.Sleep(50 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Fatalf("fired %d times, want 1", got)
	}
}

func TestTimerScheduler_RescheduleResets(t *testing.T) {
	rec := &fireRecorder{}
	s := NewTimerScheduler(40*time.Millisecond, rec.fire, zerolog.Nop())
	defer s.Stop()

	s.Schedule("CHAT-1-abc")
	time.Sleep(20 * time.Millisecond)
	s.Schedule("CHAT-1-abc")
	time.Sleep(20 * time.Millisecond)

	// 40ms in: the original timer would have fired, the reset one has not
	if got := rec.count(); got != 0 {
		t.Fatalf("fired %d times before the reset window elapsed", got)
	}

	time.Sleep(40 * time.Millisecond)
	if got := rec.count(); got != 1 {
		t.Fatalf("fired %d times, want exactly 1 after reset", got)
	}
}

func TestTimerScheduler_CancelPreventsFire(t *testing.T) {
	rec := &fireRecorder{}
	s := NewTimerScheduler(10*time.Millisecond, rec.fire, zerolog.Nop())
	defer s.Stop()

	s.Schedule("CHAT-1-abc")
	s.Cancel("CHAT-1-abc")
	time.Sleep(50 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Fatalf("cancelled timer fired %d times", got)
	}
}

func TestTimerScheduler_IndependentSessions(t *testing.T) {
	rec := &fireRecorder{}
	s := NewTimerScheduler(10*time.Millisecond, rec.fire, zerolog.Nop())
	defer s.Stop()

	s.Schedule("CHAT-1-abc")
	s.Schedule("CHAT-2-def")
	s.Cancel("CHAT-1-abc")
	time.Sleep(50 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.fired) != 1 || rec.fired[0] != "CHAT-2-def" {
		t.Fatalf("fired = %v, want only CHAT-2-def", rec.fired)
	}
}

func TestTimerScheduler_StopDisarmsAll(t *testing.T) {
	rec := &fireRecorder{}
	s := NewTimerScheduler(10*time.Millisecond, rec.fire, zerolog.Nop())

	s.Schedule("CHAT-1-abc")
	s.Schedule("CHAT-2-def")
	s.Stop()
	time.Sleep(50 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Fatalf("stopped scheduler fired %d times", got)
	}
}

func TestTimerScheduler_ZeroDelayUsesDefault(t *testing.T) {
	s := NewTimerScheduler(0, func(string) {}, zerolog.Nop())
	defer s.Stop()

	if s.delay != DefaultReminderDelay {
		t.Fatalf("delay = %v, want %v", s.delay, DefaultReminderDelay)
	}
}
