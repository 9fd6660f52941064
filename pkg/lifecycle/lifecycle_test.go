package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/menucatch/pkg/lifecycle"
)

type readiness struct {
	ready atomic.Bool
}

func (r *readiness) Ready() bool { return r.ready.Load() }

func TestReadiness(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Fatal("ready before WaitForStartup")
	}

	lc.WaitForStartup()
	if !lc.Ready() {
		t.Fatal("not ready after WaitForStartup with no tracked subsystems")
	}

	db := &readiness{}
	lc.Track("database", db)

	if lc.Ready() {
		t.Error("ready while database is not ready")
	}
	if status := lc.Status(); len(status) != 1 || status["database"] {
		t.Errorf("status = %v, want database=false", status)
	}

	db.ready.Store(true)
	if !lc.Ready() {
		t.Error("not ready after database became ready")
	}
	if status := lc.Status(); !status["database"] {
		t.Errorf("status = %v, want database=true", status)
	}
}

func TestStartupHooks(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() {
			count.Add(1)
		})
	}

	lc.WaitForStartup()

	if got := count.Load(); got != 3 {
		t.Errorf("startup hooks = %d, want 3", got)
	}
}

func TestShutdown(t *testing.T) {
	lc := lifecycle.New()

	var closed atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		closed.Store(true)
	})

	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !closed.Load() {
		t.Error("shutdown hook did not run")
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context not cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		time.Sleep(500 * time.Millisecond)
	})

	lc.WaitForStartup()

	if err := lc.Shutdown(50 * time.Millisecond); err == nil {
		t.Error("Shutdown returned nil, want timeout error")
	}
}
