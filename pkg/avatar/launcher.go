package avatar

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Picker asks an external facility for an image matching accept. It returns
// nil, nil when the user cancels.
type Picker interface {
	Pick(ctx context.Context, accept string) (*Reference, error)
}

// PickerFunc adapts a function into a Picker.
type PickerFunc func(ctx context.Context, accept string) (*Reference, error)

// Pick implements Picker.
func (fn PickerFunc) Pick(ctx context.Context, accept string) (*Reference, error) {
	return fn(ctx, accept)
}

// Handler receives the outcome of a launched pick.
type Handler func(Result)

// Launcher pairs a Picker with a completion Handler and keeps a single pick
// in flight.
type Launcher struct {
	picker  Picker
	handler Handler
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight bool
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithLogger routes launcher diagnostics to logger.
func WithLogger(logger *zap.Logger) LauncherOption {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLauncher builds a launcher. handler may be nil when callers only wait on
// the channel returned by Launch.
func NewLauncher(picker Picker, handler Handler, options ...LauncherOption) (*Launcher, error) {
	if picker == nil {
		return nil, ErrPickerRequired
	}
	l := &Launcher{
		picker:  picker,
		handler: handler,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// Launch starts a pick in the background. The returned channel yields the
// result once the handler has run, then closes. ErrInFlight is returned when
// a previous pick has not completed.
func (l *Launcher) Launch(ctx context.Context, accept string) (<-chan Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(accept) == "" {
		accept = DefaultAccept
	}

	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		return nil, ErrInFlight
	}
	l.inFlight = true
	l.mu.Unlock()

	done := make(chan Result, 1)
	go func() {
		defer close(done)

		ref, err := l.picker.Pick(ctx, accept)
		res := Result{Reference: ref, Err: err}
		switch {
		case err != nil:
			l.logger.Debug("avatar pick failed", zap.Error(err))
		case ref == nil:
			l.logger.Debug("avatar pick cancelled")
		default:
			l.logger.Debug("avatar picked", zap.String("uri", ref.URI), zap.String("mime", ref.MIMEType))
		}

		// Release before the handler runs so it may launch again.
		l.mu.Lock()
		l.inFlight = false
		l.mu.Unlock()

		if l.handler != nil {
			l.handler(res)
		}
		done <- res
	}()
	return done, nil
}

// Pick launches and blocks until the result is delivered or ctx ends.
func (l *Launcher) Pick(ctx context.Context, accept string) (Result, error) {
	done, err := l.Launch(ctx, accept)
	if err != nil {
		return Result{}, err
	}
	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// InFlight reports whether a pick is pending.
func (l *Launcher) InFlight() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}
