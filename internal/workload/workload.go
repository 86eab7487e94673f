// File: internal/workload/workload.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrent exclusivity checker for slot pools.
//
// Every worker keeps a FIFO window of live leases. Each lease is claimed in
// a shared ownership table keyed by slot, stamped with a pattern unique to
// worker and round, optionally held, then verified and released oldest
// first. A second claim on a slot or a changed pattern means two live leases
// aliased one slot.

package workload

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/momentics/slotpool/api"
	"github.com/momentics/slotpool/internal/concurrency"
)

var (
	// ErrAliasing reports that the run observed overlapping leases.
	ErrAliasing = errors.New("workload: slot aliasing detected")

	// ErrShortLease reports leases that could not take a full stamp.
	ErrShortLease = errors.New("workload: lease refused its stamp")
)

// Options tunes a run.
type Options struct {
	Workers int           // concurrent workers, default NumCPUs
	Window  int           // live leases per worker before the oldest is released, default 2
	Rounds  int           // acquisitions attempted per worker, default 1000
	Payload int           // bytes stamped per lease, default and maximum is the slot capacity
	Hold    time.Duration // pause while a full window is held
	Pin     bool          // bind each worker to its own CPU
}

func (o Options) withDefaults(capacity int) Options {
	if o.Workers <= 0 {
		o.Workers = concurrency.NumCPUs()
	}
	if o.Window <= 0 {
		o.Window = 2
	}
	if o.Rounds <= 0 {
		o.Rounds = 1000
	}
	if o.Payload <= 0 || o.Payload > capacity {
		o.Payload = capacity
	}
	return o
}

// Report summarizes a run.
type Report struct {
	Workers    int
	Acquired   uint64
	Released   uint64
	Exhausted  uint64
	Duplicates uint64 // claims on a slot another live lease held
	Corrupted  uint64 // leases whose stamp changed while held
	Truncated  uint64 // leases whose stamp write was cut short
	MaxLive    int64
	Slots      int
	Elapsed    time.Duration
	Pool       api.PoolStats
}

// Clean reports whether no aliasing was seen and conservation held.
func (r Report) Clean() bool {
	return r.Duplicates == 0 && r.Corrupted == 0 && r.MaxLive <= int64(r.Slots)
}

type held struct {
	lease   api.Lease
	seed    byte
	stamped bool
}

type run struct {
	pool     api.LeasePool
	opts     Options
	capacity int
	owners   []atomic.Int32

	live, maxLive                 atomic.Int64
	acquired, released, exhausted atomic.Uint64
	duplicates, corrupted         atomic.Uint64
	truncated                     atomic.Uint64
}

// Run drives p from opts.Workers goroutines until every worker finished its
// rounds or ctx is done. All leases are released before Run returns.
func Run(ctx context.Context, p api.LeasePool, opts Options) (Report, error) {
	st := p.Stats()
	if st.Slots <= 0 || st.Capacity <= 0 {
		return Report{}, api.NewError(api.ErrCodeInvalidArgument, "pool has no slots")
	}
	opts = opts.withDefaults(st.Capacity)
	r := &run{
		pool:     p,
		opts:     opts,
		capacity: st.Capacity,
		owners:   make([]atomic.Int32, st.Slots),
	}

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.worker(ctx, id)
		}(w)
	}
	wg.Wait()

	rep := Report{
		Workers:    opts.Workers,
		Acquired:   r.acquired.Load(),
		Released:   r.released.Load(),
		Exhausted:  r.exhausted.Load(),
		Duplicates: r.duplicates.Load(),
		Corrupted:  r.corrupted.Load(),
		Truncated:  r.truncated.Load(),
		MaxLive:    r.maxLive.Load(),
		Slots:      st.Slots,
		Elapsed:    time.Since(start),
		Pool:       p.Stats(),
	}
	if !rep.Clean() {
		return rep, fmt.Errorf("%w: %d duplicate claims, %d corrupted leases, max live %d of %d",
			ErrAliasing, rep.Duplicates, rep.Corrupted, rep.MaxLive, rep.Slots)
	}
	if rep.Truncated != 0 {
		return rep, fmt.Errorf("%w: %d of %d leases", ErrShortLease, rep.Truncated, rep.Acquired)
	}
	return rep, ctx.Err()
}

func (r *run) worker(ctx context.Context, id int) {
	if r.opts.Pin {
		if err := concurrency.PinCurrentThread(concurrency.WorkerCPU(id)); err == nil {
			defer concurrency.UnpinCurrentThread()
		} else {
			runtime.UnlockOSThread()
		}
	}

	window := queue.New()
	defer func() {
		for window.Length() > 0 {
			r.retire(window.Remove().(held))
		}
	}()

	owner := int32(id + 1)
	scratch := make([]byte, r.opts.Payload)
	for round := 0; round < r.opts.Rounds; round++ {
		if ctx.Err() != nil {
			return
		}
		l, ok := r.pool.Lease()
		if !ok {
			r.exhausted.Add(1)
			if window.Length() > 0 {
				r.retire(window.Remove().(held))
			} else {
				runtime.Gosched()
			}
			continue
		}
		r.acquired.Add(1)
		r.claim(l, owner)

		h := held{lease: l, seed: byte(id*31 + round), stamped: true}
		if err := l.Extend(stamp(scratch, h.seed)); err != nil {
			r.truncated.Add(1)
			h.stamped = false
		}
		window.Add(h)

		if window.Length() >= r.opts.Window {
			if r.opts.Hold > 0 {
				time.Sleep(r.opts.Hold)
			}
			r.retire(window.Remove().(held))
		}
	}
}

func (r *run) claim(l api.Lease, owner int32) {
	slot := l.Offset() / r.capacity
	if !r.owners[slot].CompareAndSwap(0, owner) {
		r.duplicates.Add(1)
	}
	n := r.live.Add(1)
	for {
		m := r.maxLive.Load()
		if n <= m || r.maxLive.CompareAndSwap(m, n) {
			return
		}
	}
}

// retire verifies the stamp, drops the claim and releases. The claim is
// dropped first so a re-issue of the slot never sees a stale owner. A lease
// whose stamp was already cut short is counted as truncated, not corrupted.
func (r *run) retire(h held) {
	if h.stamped && !verify(h.lease.Bytes(), h.seed, r.opts.Payload) {
		r.corrupted.Add(1)
	}
	r.live.Add(-1)
	r.owners[h.lease.Offset()/r.capacity].Store(0)
	h.lease.Release()
	r.released.Add(1)
}

func stamp(p []byte, seed byte) []byte {
	for i := range p {
		p[i] = seed + byte(i)*7
	}
	return p
}

func verify(p []byte, seed byte, n int) bool {
	if len(p) != n {
		return false
	}
	for i, c := range p {
		if c != seed+byte(i)*7 {
			return false
		}
	}
	return true
}
