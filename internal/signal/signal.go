package signal

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// Received is the cancellation cause of a context cancelled by a signal.
type Received struct {
	Signal os.Signal
}

func (r Received) Error() string {
	return "received " + r.Signal.String()
}

// NotifyContext returns a context derived from parent that is cancelled when
// SIGINT or SIGTERM is received. The returned stop function should be called
// to release resources.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-ch:
			cancel(Received{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(ch)
		cancel(context.Canceled)
	}
}

// FromContext returns the signal that cancelled ctx, if any.
func FromContext(ctx context.Context) (os.Signal, bool) {
	var r Received
	if errors.As(context.Cause(ctx), &r) {
		return r.Signal, true
	}
	return nil, false
}
