// File: pool/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffer is an exclusive lease on one slot with bounded, in-place byte
// buffer semantics. Writes never reach past the slot capacity; an overflowing
// write applies the part that fits and then reports truncation.

package pool

import (
	"fmt"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/momentics/slotpool/api"
)

// lease is the part of a Buffer a reclaim cleanup may touch.
type lease struct {
	state    *state
	data     int
	released atomic.Bool
}

// give returns the slot exactly once.
func (l *lease) give() bool {
	if !l.released.CompareAndSwap(false, true) {
		return false
	}
	l.state.push(l.data)
	l.state.releases.Add(1)
	return true
}

// Buffer is created by Pool.Get only. It is not safe for concurrent use; the
// allocator guarantees no other live Buffer references the same slot.
type Buffer struct {
	lease   *lease
	slot    []byte // nil once released
	len     int
	cleanup runtime.Cleanup
}

func newBuffer(s *state, off int) *Buffer {
	l := &lease{state: s, data: off}
	b := &Buffer{lease: l, slot: s.slot(off)}
	if s.reclaim {
		b.cleanup = runtime.AddCleanup(b, func(l *lease) {
			if l.give() {
				l.state.emit(EventRelease, l.data)
			}
		}, l)
	}
	return b
}

// Release pushes the slot back onto the pool's free list. Calling it again
// is a no-op.
func (b *Buffer) Release() {
	if b.slot == nil {
		return
	}
	b.slot = nil
	b.len = 0
	if b.lease.state.reclaim {
		b.cleanup.Stop()
	}
	if b.lease.give() {
		b.lease.state.emit(EventRelease, b.lease.data)
	}
}

// Released reports whether Release has run.
func (b *Buffer) Released() bool { return b.slot == nil }

// Offset returns the slot's byte offset in the backing region.
func (b *Buffer) Offset() int { return b.lease.data }

// Capacity returns the fixed slot size.
func (b *Buffer) Capacity() int { return b.lease.state.capacity }

// Len returns the logical content length.
func (b *Buffer) Len() int { return b.len }

// IsEmpty reports whether Len is zero.
func (b *Buffer) IsEmpty() bool { return b.len == 0 }

// Remaining returns Capacity - Len.
func (b *Buffer) Remaining() int { return b.Capacity() - b.len }

// Bytes returns the content [0, Len). The slice aliases slot memory; it is
// nil after Release. With WithReclaim the slice does not keep b alive.
func (b *Buffer) Bytes() []byte {
	if b.slot == nil {
		return nil
	}
	return b.slot[:b.len:b.len]
}

// Unsafe returns the content [0, Len) with a capacity running to the end of
// the slot, so callers may hand it to code outliving the current scope.
//
// The slice stays valid only until Release, or with WithReclaim until b
// becomes unreachable. Using it afterwards reads or writes a slot that may
// already belong to another owner; nothing checks this.
func (b *Buffer) Unsafe() []byte {
	if b.slot == nil {
		return nil
	}
	return b.slot[:b.len]
}

// At returns the byte at index i. It panics when i is outside [0, Len).
func (b *Buffer) At(i int) byte { return b.Bytes()[i] }

// Slice returns content[from:to] without copying. Like Bytes, the result
// does not keep b alive.
func (b *Buffer) Slice(from, to int) []byte { return b.Bytes()[from:to] }

// Copy returns a detached copy of the content.
func (b *Buffer) Copy() []byte {
	out := make([]byte, b.len)
	copy(out, b.Bytes())
	return out
}

// String renders the content as a byte list.
func (b *Buffer) String() string { return fmt.Sprint(b.Bytes()) }

// Push appends one byte. A full buffer is left untouched.
func (b *Buffer) Push(c byte) error {
	if b.slot == nil {
		return released("push")
	}
	if b.len == len(b.slot) {
		return truncated("push", 0, 1)
	}
	b.slot[b.len] = c
	b.len++
	return nil
}

// Pop removes and returns the last byte.
func (b *Buffer) Pop() (byte, bool) {
	if b.len == 0 || b.slot == nil {
		return 0, false
	}
	b.len--
	return b.slot[b.len], true
}

// Resize sets the logical length to n.
//
// Shrinking only moves the length; the bytes past it are left in place.
// Growing zero-fills every newly exposed byte. When n exceeds the capacity the
// slot is zero-filled up to capacity, Len becomes Capacity and a truncation
// error carrying the missing byte count is returned.
func (b *Buffer) Resize(n int) error {
	if b.slot == nil {
		return released("resize")
	}
	if n < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "negative length").WithContext("len", n)
	}
	if n <= b.len {
		b.len = n
		return nil
	}
	limit := min(n, len(b.slot))
	clear(b.slot[b.len:limit])
	written := limit - b.len
	b.len = limit
	if n > limit {
		return truncated("resize", written, n-limit)
	}
	return nil
}

// Extend appends min(Remaining, len(p)) bytes of p. If p did not fit it
// returns a truncation error whose "dropped" context is the unwritten tail.
func (b *Buffer) Extend(p []byte) error {
	_, err := b.Write(p)
	return err
}

// Write implements io.Writer with Extend semantics.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.slot == nil {
		return 0, released("write")
	}
	n := copy(b.slot[b.len:], p)
	b.len += n
	if n < len(p) {
		return n, truncated("write", n, len(p)-n)
	}
	return n, nil
}

// WriteByte implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error { return b.Push(c) }

// WriteString appends s like Write.
func (b *Buffer) WriteString(s string) (int, error) {
	if b.slot == nil {
		return 0, released("write")
	}
	n := copy(b.slot[b.len:], s)
	b.len += n
	if n < len(s) {
		return n, truncated("write", n, len(s)-n)
	}
	return n, nil
}

// WriteTo implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

// Reset empties the buffer without touching slot memory.
func (b *Buffer) Reset() { b.len = 0 }

// SetLen sets the logical length without initializing bytes. The caller is
// responsible for the content. It panics when n is outside [0, Capacity].
func (b *Buffer) SetLen(n int) {
	if n < 0 || n > b.Capacity() {
		panic(fmt.Sprintf("pool: SetLen(%d) outside [0, %d]", n, b.Capacity()))
	}
	b.len = n
}

func truncated(op string, written, dropped int) error {
	return api.NewError(api.ErrCodeTruncated, "write truncated").
		WithContext("op", op).
		WithContext("written", written).
		WithContext("dropped", dropped)
}

func released(op string) error {
	return api.NewError(api.ErrCodeReleased, "buffer already released").WithContext("op", op)
}

var (
	_ api.Lease     = (*Buffer)(nil)
	_ io.Writer     = (*Buffer)(nil)
	_ io.ByteWriter = (*Buffer)(nil)
	_ io.WriterTo   = (*Buffer)(nil)
	_ fmt.Stringer  = (*Buffer)(nil)
)
