package observability

import (
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	recentErrorDuration = 5 * time.Minute
	recentErrorCache    = 100
	flushTimeout        = 2 * time.Second
)

// Sentry reports errors and messages to a Sentry project.
//
// Repeats of the same error within a few minutes are dropped. A nil Sentry
// reports nothing.
type Sentry struct {
	hub     *sentry.Hub
	limiter *CaptureRateLimiter
}

// SentryOption adjusts the client options.
type SentryOption func(*sentry.ClientOptions)

// WithEventHook runs hook on every event about to be sent. Returning nil
// drops the event.
func WithEventHook(hook func(*sentry.Event) *sentry.Event) SentryOption {
	return func(o *sentry.ClientOptions) {
		prev := o.BeforeSend
		o.BeforeSend = func(e *sentry.Event, h *sentry.EventHint) *sentry.Event {
			if prev != nil {
				if e = prev(e, h); e == nil {
					return nil
				}
			}
			return hook(e)
		}
	}
}

// NewSentry returns a reporter for dsn. An empty dsn returns nil, which
// reports nothing.
func NewSentry(dsn, release string, opts ...SentryOption) (*Sentry, error) {
	if dsn == "" {
		return nil, nil
	}

	options := sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
		Release:          release,
		BeforeSend:       removeBottomFrames,
	}
	for _, opt := range opts {
		opt(&options)
	}

	client, err := sentry.NewClient(options)
	if err != nil {
		return nil, fmt.Errorf("observability: sentry: %w", err)
	}
	limiter, err := NewCaptureRateLimiter(recentErrorCache, recentErrorDuration)
	if err != nil {
		return nil, err
	}
	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope()), limiter: limiter}, nil
}

// CaptureException reports err unless it was reported recently.
func (s *Sentry) CaptureException(err error, tags Tags) {
	if s == nil || err == nil || !s.limiter.AllowCapture(err.Error()) {
		return
	}
	s.withTags(tags).CaptureException(err)
}

// CaptureMessage reports msg.
func (s *Sentry) CaptureMessage(msg string, tags Tags) {
	if s == nil {
		return
	}
	s.withTags(tags).CaptureMessage(msg)
}

// Reraise reports a recovered panic value and panics again with it.
func (s *Sentry) Reraise(err any, tags Tags) {
	if err == nil {
		return
	}
	e, ok := err.(error)
	if !ok {
		e = fmt.Errorf("%v", err)
	}
	s.CaptureException(e, tags)
	s.Flush()
	panic(err)
}

// Flush waits for queued events to be sent.
func (s *Sentry) Flush() bool {
	if s == nil {
		return true
	}
	return s.hub.Flush(flushTimeout)
}

// LoggerOptions wires the reporter into a CoreLogger.
func (s *Sentry) LoggerOptions() []CoreLoggerOption {
	return []CoreLoggerOption{
		WithCaptureException(s.CaptureException),
		WithCaptureMessage(s.CaptureMessage),
		WithReraise(s.Reraise),
	}
}

func (s *Sentry) withTags(tags Tags) *sentry.Hub {
	hub := s.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			if v != "" {
				scope.SetTag(k, v)
			}
		}
	})
	return hub
}

// removeBottomFrames drops the frames of this package from the bottom of
// recovered panic stack traces.
func removeBottomFrames(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	for i, exception := range event.Exception {
		if exception.Stacktrace == nil {
			continue
		}
		frames := exception.Stacktrace.Frames
		for j := len(frames) - 1; j >= 0 && j >= len(frames)-3; j-- {
			if !strings.HasSuffix(frames[j].AbsPath, "sentry.go") && !strings.HasSuffix(frames[j].AbsPath, "logging.go") {
				break
			}
			frames = frames[:j]
		}
		event.Exception[i].Stacktrace.Frames = frames
	}
	return event
}
