//go:build unix

package signal

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestNotifyContextCancelledBySignal(t *testing.T) {
	ctx, stop := NotifyContext(context.Background())
	defer stop()

	if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled after SIGINT")
	}

	sig, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext() reported no signal")
	}
	if sig != os.Interrupt {
		t.Errorf("signal = %v, want %v", sig, os.Interrupt)
	}
}

func TestNotifyContextStop(t *testing.T) {
	ctx, stop := NotifyContext(context.Background())
	stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("stop did not cancel the context")
	}
	if _, ok := FromContext(ctx); ok {
		t.Error("FromContext() reported a signal after stop")
	}
}

func TestNotifyContextParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := NotifyContext(parent)
	defer stop()

	cancel()
	<-ctx.Done()
	if _, ok := FromContext(ctx); ok {
		t.Error("FromContext() reported a signal for parent cancellation")
	}
}
