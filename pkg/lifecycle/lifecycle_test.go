package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/skyhook-labs/talon/pkg/lifecycle"
)

func TestWaitForStartup(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for i := 0; i < 3; i++ {
		lc.OnStartup(func() {
			time.Sleep(5 * time.Millisecond)
			count.Add(1)
		})
	}

	if lc.Ready() {
		t.Error("coordinator reported ready before startup completed")
	}

	lc.WaitForStartup()

	if count.Load() != 3 {
		t.Errorf("startup hooks ran = %d, want 3", count.Load())
	}
	if !lc.Ready() {
		t.Error("coordinator should be ready after WaitForStartup")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var ran atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		ran.Store(true)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !ran.Load() {
		t.Error("shutdown hook did not run")
	}
}

func TestShutdownCancelsContext(t *testing.T) {
	lc := lifecycle.New()

	select {
	case <-lc.Context().Done():
		t.Fatal("context cancelled before shutdown")
	default:
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	lc.OnShutdown(func() {
		<-release
	})

	err := lc.Shutdown(10 * time.Millisecond)
	if err == nil {
		t.Error("Shutdown should time out while a hook blocks")
	}

	close(release)
}
