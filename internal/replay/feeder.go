package replay

import (
	"context"

	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"

	"github.com/saiputravu/depthbook/internal/depth"
)

// Callback is invoked once per fed event, in the order Push was called. The
// caller decides which depth.Book mutator the event maps to; Feeder itself
// never imports the btree/order-index internals of depth.Book.
type Callback func(ev depth.Event)

// Option configures a Feeder at construction time.
type Option func(*Feeder)

// WithLogger attaches a structured logger. The default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Feeder) { f.logger = logger }
}

// Feeder sequences a buffered channel of depth.Event records into a single
// caller-supplied Callback, run on exactly one tomb.Tomb-managed goroutine.
// Feeder is a serialized relay, never a concurrent mutator of the book it
// feeds, so the depth package's single-threaded contract is unaffected.
type Feeder struct {
	events chan depth.Event
	t      *tomb.Tomb
	logger zerolog.Logger
}

// NewFeeder constructs a Feeder bound to ctx: cancelling ctx, or calling
// Stop, ends the feed loop. bufSize sizes the internal event channel.
func NewFeeder(ctx context.Context, bufSize int, opts ...Option) *Feeder {
	t, _ := tomb.WithContext(ctx)
	f := &Feeder{
		events: make(chan depth.Event, bufSize),
		t:      t,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start launches the feed loop. It returns immediately; cb runs on the
// tomb-managed goroutine until the channel is closed or the tomb dies.
func (f *Feeder) Start(cb Callback) {
	f.t.Go(func() error {
		f.logger.Debug().Msg("feeder starting")
		for {
			select {
			case <-f.t.Dying():
				f.logger.Debug().Msg("feeder dying")
				return nil
			case ev, ok := <-f.events:
				if !ok {
					f.logger.Debug().Msg("feeder channel closed")
					return nil
				}
				cb(ev)
			}
		}
	})
}

// Push enqueues ev, blocking until there is room or the feeder is dying. It
// reports false if the feeder died before the event could be enqueued.
func (f *Feeder) Push(ev depth.Event) bool {
	select {
	case f.events <- ev:
		return true
	case <-f.t.Dying():
		return false
	}
}

// Stop closes the event channel and waits for the feed loop to drain and
// exit, returning its error (nil on a clean stop).
func (f *Feeder) Stop() error {
	close(f.events)
	return f.t.Wait()
}

// Kill ends the feed loop immediately without draining pending events.
func (f *Feeder) Kill(err error) {
	f.t.Kill(err)
}
