package notifications

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/metrics"
	"github.com/diwise/medication-reminder/pkg/types"
)

var (
	ErrNotInitialized   = errors.New("notification scheduler not initialized")
	ErrPermissionDenied = errors.New("notification permission denied")
	ErrInvalidTrigger   = errors.New("invalid notification trigger")
	ErrUnsupported      = errors.New("local notifications are not supported on this host")
)

const (
	PermissionGranted string = "granted"
	PermissionDenied  string = "denied"
)

type Config struct {
	Permission string `yaml:"permission"`
	// Unsupported selects a notifier that never grants permission.
	Unsupported bool `yaml:"unsupported"`
}

//go:generate moq -rm -out sink_mock.go . Sink

// Sink receives reminders when a registered notification fires.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, r types.Reminder) error
}

type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

type Option func(*Local)

func WithClock(now func() time.Time) Option {
	return func(l *Local) {
		l.now = now
	}
}

func WithAfterFunc(fn AfterFunc) Option {
	return func(l *Local) {
		l.afterFunc = fn
	}
}

func WithSinks(sinks ...Sink) Option {
	return func(l *Local) {
		l.sinks = append(l.sinks, sinks...)
	}
}

func WithPermission(permission string) Option {
	return func(l *Local) {
		l.granted = permission != PermissionDenied
	}
}

type registration struct {
	notification types.Notification
	timer        Timer
	generation   uint64
	next         time.Time
}

// Local keeps time triggered notifications in process and hands them to
// its sinks when they fire. Registrations do not survive a restart.
type Local struct {
	mu          sync.Mutex
	initialized bool
	granted     bool
	generation  uint64
	pending     map[string]*registration

	sinks     []Sink
	now       func() time.Time
	afterFunc AfterFunc
	log       zerolog.Logger
}

func NewLocal(opts ...Option) *Local {
	l := &Local{
		granted: true,
		pending: map[string]*registration{},
		now:     time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Local) Init(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.log = logging.GetLoggerFromContext(ctx)
	l.initialized = true

	names := []string{}
	for _, s := range l.sinks {
		names = append(names, s.Name())
	}
	l.log.Info().Strs("sinks", names).Bool("granted", l.granted).Msg("local notification scheduler initialized")

	return nil
}

func (l *Local) RequestPermission(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return false, ErrNotInitialized
	}

	return l.granted, nil
}

// Schedule registers n to fire at its hour and minute. An existing
// registration with the same id is replaced.
func (l *Local) Schedule(ctx context.Context, n types.Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return ErrNotInitialized
	}

	if !l.granted {
		return ErrPermissionDenied
	}

	if n.ID == "" || n.Hour < 0 || n.Hour > 23 || n.Minute < 0 || n.Minute > 59 {
		return fmt.Errorf("%w: id %q at %02d:%02d", ErrInvalidTrigger, n.ID, n.Hour, n.Minute)
	}

	if existing, ok := l.pending[n.ID]; ok {
		existing.timer.Stop()
	}

	l.arm(n)

	log := logging.GetLoggerFromContext(ctx)
	log.Debug().
		Str("notification_id", n.ID).
		Time("next", l.pending[n.ID].next).
		Msg("notification registered")

	return nil
}

func (l *Local) Cancel(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return ErrNotInitialized
	}

	if r, ok := l.pending[id]; ok {
		r.timer.Stop()
		delete(l.pending, id)
	}

	return nil
}

func (l *Local) CancelAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return ErrNotInitialized
	}

	for id, r := range l.pending {
		r.timer.Stop()
		delete(l.pending, id)
	}

	return nil
}

// Pending returns the current registrations ordered by id.
func (l *Local) Pending() []types.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]types.Notification, 0, len(l.pending))
	for _, r := range l.pending {
		result = append(result, r.notification)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// arm must be called with the lock held.
func (l *Local) arm(n types.Notification) {
	l.generation++
	gen := l.generation

	now := l.now()
	next := NextOccurrence(now, n.Hour, n.Minute)

	l.pending[n.ID] = &registration{
		notification: n,
		generation:   gen,
		next:         next,
		timer: l.afterFunc(next.Sub(now), func() {
			l.fire(n.ID, gen)
		}),
	}
}

func (l *Local) fire(id string, gen uint64) {
	l.mu.Lock()

	r, ok := l.pending[id]
	if !ok || r.generation != gen {
		// cancelled or replaced after the timer had already been started
		l.mu.Unlock()
		return
	}

	n := r.notification
	if n.Repeats {
		l.arm(n)
	} else {
		delete(l.pending, id)
	}

	firedAt := l.now()
	sinks := l.sinks
	log := l.log

	l.mu.Unlock()

	reminder := types.Reminder{
		ID:      n.ID,
		Title:   n.Title,
		Body:    n.Body,
		Data:    n.Data,
		FiredAt: firedAt,
	}

	ctx := logging.NewContextWithLogger(context.Background(), log)

	for _, s := range sinks {
		err := s.Deliver(ctx, reminder)
		metrics.RemindersDelivered.WithLabelValues(s.Name(), metrics.Result(err == nil)).Inc()
		if err != nil {
			log.Error().Err(err).Str("notification_id", n.ID).Str("sink", s.Name()).Msg("could not deliver reminder")
		}
	}
}

// NextOccurrence returns the first time strictly after now that matches
// hour and minute in the location of now.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Unsupported is the notifier for hosts without local notifications.
type Unsupported struct{}

func NewUnsupported() *Unsupported {
	return &Unsupported{}
}

func (u *Unsupported) Init(ctx context.Context) error {
	log := logging.GetLoggerFromContext(ctx)
	log.Warn().Msg("local notifications are not supported, alarms will not be scheduled")
	return nil
}

func (u *Unsupported) RequestPermission(ctx context.Context) (bool, error) {
	return false, nil
}

func (u *Unsupported) Schedule(ctx context.Context, n types.Notification) error {
	return ErrUnsupported
}

func (u *Unsupported) Cancel(ctx context.Context, id string) error {
	return nil
}

func (u *Unsupported) CancelAll(ctx context.Context) error {
	return nil
}

type LogSink struct{}

func (LogSink) Name() string {
	return "log"
}

func (LogSink) Deliver(ctx context.Context, r types.Reminder) error {
	log := logging.GetLoggerFromContext(ctx)
	log.Info().
		Str("notification_id", r.ID).
		Str("title", r.Title).
		Time("fired_at", r.FiredAt).
		Msg(r.Body)
	return nil
}
