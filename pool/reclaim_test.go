package pool_test

import (
	"bytes"
	"runtime"
	"testing"
	"time"

	"github.com/momentics/slotpool/pool"
)

func leak(p *pool.Pool) int {
	b, _ := p.Get()
	b.Push(0xAA)
	return b.Offset()
}

func TestReclaimReturnsLeakedSlot(t *testing.T) {
	p := pool.MustDeclare(8, 1, pool.WithReclaim())
	off := leak(p)

	for i := 0; i < 100 && p.Stats().Releases == 0; i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
	if p.Stats().Releases != 1 {
		t.Fatalf("leaked buffer was not reclaimed: %+v", p.Stats())
	}
	b, ok := p.Get()
	if !ok || b.Offset() != off {
		t.Fatalf("reclaimed slot not reissued: %v", ok)
	}
	b.Release()
}

// A content slice does not keep its Buffer alive; the Buffer must be kept
// reachable until the slice is done with.
func TestReclaimKeepAliveProtectsContent(t *testing.T) {
	p := pool.MustDeclare(8, 1, pool.WithReclaim())
	b, _ := p.Get()
	b.Extend([]byte{1, 2, 3, 4})
	data := b.Bytes()

	for i := 0; i < 20; i++ {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
	if other, ok := p.Get(); ok {
		other.Extend([]byte{9, 9, 9, 9})
		t.Fatalf("slot reissued while its Buffer was kept alive: %v", data)
	}
	if !bytes.Equal(data, []byte{1, 2, 3, 4}) {
		t.Fatalf("content changed: %v", data)
	}
	if got := p.Stats().Releases; got != 0 {
		t.Fatalf("releases = %d, want 0", got)
	}
	runtime.KeepAlive(b)
	b.Release()
}

func TestReclaimDoesNotDoubleRelease(t *testing.T) {
	p := pool.MustDeclare(8, 2, pool.WithReclaim())
	func() {
		b, _ := p.Get()
		b.Release()
	}()
	for i := 0; i < 5; i++ {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
	if got := p.Stats().Releases; got != 1 {
		t.Fatalf("releases = %d, want 1", got)
	}
}
