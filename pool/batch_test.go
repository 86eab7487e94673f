package pool_test

import (
	"testing"

	"github.com/momentics/slotpool/pool"
)

func TestBufferBatchFillAndRelease(t *testing.T) {
	p := pool.MustDeclare(16, 4)
	batch := pool.NewBufferBatch(4)

	if n := batch.Fill(p, 6); n != 4 {
		t.Fatalf("Fill = %d, want 4", n)
	}
	first, second := batch.Split(1)
	if first.Len() != 1 || second.Len() != 3 {
		t.Fatalf("Split lengths %d/%d", first.Len(), second.Len())
	}
	if sub := batch.Slice(1, 3); sub.Get(0) != batch.Get(1) {
		t.Fatal("Slice does not share buffers")
	}

	second.ReleaseAll()
	if got := p.Stats().InUse; got != 1 {
		t.Fatalf("in use after partial release = %d", got)
	}
	first.ReleaseAll()

	batch.Reset()
	if batch.Len() != 0 {
		t.Fatal("Reset kept entries")
	}
	if n := batch.Fill(p, 4); n != 4 {
		t.Fatalf("refill = %d", n)
	}
	batch.ReleaseAll()
}
