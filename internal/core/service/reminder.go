package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/movemate/logistics-api/internal/api/metrics"
)

// DefaultReminderDelay is how long a visitor message may go unanswered before
// the auto-reply fires.
const DefaultReminderDelay = 30 * time.Second

// TimerScheduler keeps one timer per chat session. Scheduling an already
// scheduled session resets its timer rather than stacking a second one, so a
// burst of visitor messages yields at most one reminder.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	delay  time.Duration
	fire   func(sessionID string)
	log    zerolog.Logger
}

// NewTimerScheduler creates a scheduler that invokes fire after delay. fire
// runs on the timer goroutine and should hand off quickly.
func NewTimerScheduler(delay time.Duration, fire func(sessionID string), log zerolog.Logger) *TimerScheduler {
	if delay <= 0 {
		delay = DefaultReminderDelay
	}
	return &TimerScheduler{
		timers: make(map[string]*time.Timer),
		delay:  delay,
		fire:   fire,
		log:    log,
	}
}

// Schedule arms (or re-arms) the session's reminder timer.
func (s *TimerScheduler) Schedule(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
	}
	s.timers[sessionID] = time.AfterFunc(s.delay, func() {
		s.remove(sessionID)
		s.fire(sessionID)
	})
	metrics.ChatReminderTimers.Set(float64(len(s.timers)))
}

// Cancel disarms the session's timer if one is pending.
func (s *TimerScheduler) Cancel(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
		delete(s.timers, sessionID)
		metrics.ChatReminderTimers.Set(float64(len(s.timers)))
	}
}

// Stop disarms every pending timer. Used at shutdown.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	metrics.ChatReminderTimers.Set(0)
}

func (s *TimerScheduler) remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, sessionID)
	metrics.ChatReminderTimers.Set(float64(len(s.timers)))
}
