// Package notify zeigt kurze Benutzerhinweise (Toasts) an.
package notify

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hufschlaeger.net/todo-client/internal/timing"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

type Toast struct {
	Level     Level
	Message   string
	ShownAt   time.Time
	ExpiresAt time.Time
}

type Options struct {
	// Duration ist die Anzeigedauer eines Toasts.
	Duration time.Duration
	// Throttle ist der Mindestabstand zwischen zwei Toasts; Toasts innerhalb
	// des Abstands werden verworfen.
	Throttle time.Duration
	// Limit begrenzt die gleichzeitig sichtbaren Toasts.
	Limit int
	Clock timing.Clock
}

func DefaultOptions() Options {
	return Options{
		Duration: 3 * time.Second,
		Throttle: time.Second,
		Limit:    3,
	}
}

// Toaster schreibt Toasts auf einen Writer (Terminal).
type Toaster struct {
	out      io.Writer
	clock    timing.Clock
	limiter  *rate.Limiter
	duration time.Duration
	limit    int

	mu     sync.Mutex
	active []Toast
}

func NewToaster(out io.Writer, opts Options) *Toaster {
	every := rate.Inf
	if opts.Throttle > 0 {
		every = rate.Every(opts.Throttle)
	}
	if opts.Clock == nil {
		opts.Clock = timing.SystemClock{}
	}
	if opts.Limit <= 0 {
		opts.Limit = 1
	}

	return &Toaster{
		out:      out,
		clock:    opts.Clock,
		limiter:  rate.NewLimiter(every, 1),
		duration: opts.Duration,
		limit:    opts.Limit,
	}
}

func (t *Toaster) Success(message string) { t.show(LevelSuccess, message) }
func (t *Toaster) Error(message string)   { t.show(LevelError, message) }
func (t *Toaster) Warning(message string) { t.show(LevelWarning, message) }
func (t *Toaster) Info(message string)    { t.show(LevelInfo, message) }

// show liefert false, wenn der Toast durch das Throttling verworfen wurde.
func (t *Toaster) show(level Level, message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if !t.limiter.AllowN(now, 1) {
		return false
	}

	t.pruneLocked(now)
	t.active = append(t.active, Toast{
		Level:     level,
		Message:   message,
		ShownAt:   now,
		ExpiresAt: now.Add(t.duration),
	})
	if len(t.active) > t.limit {
		t.active = t.active[len(t.active)-t.limit:]
	}

	fmt.Fprintf(t.out, "%s %s\n", prefix(level), message)
	return true
}

// Active liefert die aktuell sichtbaren Toasts (ältester zuerst).
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked(t.clock.Now())
	return slices.Clone(t.active)
}

func (t *Toaster) pruneLocked(now time.Time) {
	t.active = slices.DeleteFunc(t.active, func(toast Toast) bool {
		return !now.Before(toast.ExpiresAt)
	})
}

func prefix(level Level) string {
	switch level {
	case LevelSuccess:
		return "✅"
	case LevelError:
		return "❌"
	case LevelWarning:
		return "⚠️ "
	}
	return "ℹ️ "
}
