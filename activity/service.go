// Package activity records daily writing activity and derives streaks from
// it.
//
// None of the exported operations return errors. Activity tracking must never
// disrupt the save that triggered it, so storage failures are logged and turned
// into an empty or zero result.
package activity

import (
	"context"
	"sync"
	"time"

	"github.com/storyverse/server/logging"
	"github.com/storyverse/server/store"
)

const (
	DefaultLookbackDays   = 65
	DefaultMaxStreakDays  = 365
	DefaultMinWordCount   = 1
	DefaultMilestoneEvery = 7

	notifyTimeout = 10 * time.Second
)

// Notifier is told when a new day pushes a streak onto a milestone.
type Notifier interface {
	StreakMilestone(ctx context.Context, userID string, streak int) error
}

type Service struct {
	store store.Store
	log   logging.Logger
	now   func() time.Time
	loc   *time.Location

	lookbackDays   int
	maxStreakDays  int
	minWordCount   int
	milestoneEvery int
	notifier       Notifier

	// pending tracks milestone notifications still in flight. Copies made by
	// In share it.
	pending *sync.WaitGroup
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone that decides which calendar day is today.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLookbackDays bounds how far back the current streak looks for
// activity. Streaks longer than the window are truncated to it. Negative
// values are ignored.
func WithLookbackDays(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.lookbackDays = n
		}
	}
}

// WithMaxStreakDays caps the value CalculateCurrentStreak can report.
// Negative values are ignored.
func WithMaxStreakDays(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxStreakDays = n
		}
	}
}

// WithMinWordCount sets the smallest count that creates or updates a record.
// Values below 1 are raised to 1: a stored day always has words.
func WithMinWordCount(n int) Option {
	return func(s *Service) {
		if n < 1 {
			n = 1
		}
		s.minWordCount = n
	}
}

func WithMilestoneNotifier(n Notifier, every int) Option {
	return func(s *Service) {
		s.notifier = n
		s.milestoneEvery = every
	}
}

func NewService(st store.Store, log logging.Logger, opts ...Option) *Service {
	s := &Service{
		store:          st,
		log:            log,
		now:            time.Now,
		loc:            time.Local,
		lookbackDays:   DefaultLookbackDays,
		maxStreakDays:  DefaultMaxStreakDays,
		minWordCount:   DefaultMinWordCount,
		milestoneEvery: DefaultMilestoneEvery,
		pending:        &sync.WaitGroup{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wait blocks until every milestone notification started so far has
// finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// In returns a copy of the service that resolves "today" in loc.
func (s *Service) In(loc *time.Location) *Service {
	c := *s
	if loc != nil {
		c.loc = loc
	}
	return &c
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// localNow is the current instant in the service zone. Its calendar day is
// "today".
func (s *Service) localNow() time.Time {
	return s.now().In(s.loc)
}

// Now returns the current time in the service zone.
func (s *Service) Now() time.Time {
	return s.localNow()
}
