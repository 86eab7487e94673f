package pool_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momentics/slotpool/api"
	"github.com/momentics/slotpool/pool"
)

func TestAcquireWaitsForRelease(t *testing.T) {
	p := pool.MustDeclare(8, 1)
	held, _ := p.Get()

	go func() {
		time.Sleep(20 * time.Millisecond)
		held.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	b, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if b.Offset() != 0 {
		t.Errorf("offset = %d", b.Offset())
	}
	b.Release()
}

func TestAcquireHonoursDeadline(t *testing.T) {
	p := pool.MustDeclare(8, 1)
	held, _ := p.Get()
	defer held.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	start := time.Now()
	if _, err := p.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Acquire: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Acquire overslept its deadline")
	}
}

func TestAcquireCancelledContext(t *testing.T) {
	p := pool.MustDeclare(8, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Acquire: %v", err)
	}
	if p.Stats().Gets != 0 {
		t.Error("Acquire took a slot with a cancelled context")
	}
}

func TestAcquireClosedPool(t *testing.T) {
	p := pool.MustDeclare(8, 1)
	p.Close()
	if _, err := p.Acquire(context.Background()); !errors.Is(err, api.ErrBufferPoolClosed) {
		t.Fatalf("Acquire: %v", err)
	}
}
