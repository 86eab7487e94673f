// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake lease and lease pool implementations for testing.

package fake

import (
	"github.com/momentics/slotpool/api"
)

// Lease is a fake implementation of api.Lease over caller-provided memory.
type Lease struct {
	mem      []byte
	offset   int
	len      int
	released bool
	onFree   func()
}

// NewLease creates a lease over mem reporting the given offset.
func NewLease(mem []byte, offset int, onFree func()) *Lease {
	return &Lease{mem: mem, offset: offset, onFree: onFree}
}

func (l *Lease) Offset() int   { return l.offset }
func (l *Lease) Capacity() int { return len(l.mem) }
func (l *Lease) Len() int      { return l.len }
func (l *Lease) Bytes() []byte { return l.mem[:l.len] }

// Extend copies what fits and reports truncation like a pool buffer.
func (l *Lease) Extend(p []byte) error {
	n := copy(l.mem[l.len:], p)
	l.len += n
	if n < len(p) {
		return api.NewError(api.ErrCodeTruncated, "write truncated").
			WithContext("dropped", len(p)-n)
	}
	return nil
}

// Release marks the lease released once.
func (l *Lease) Release() {
	if l.released {
		return
	}
	l.released = true
	if l.onFree != nil {
		l.onFree()
	}
}

// Released reports whether Release ran.
func (l *Lease) Released() bool { return l.released }

var _ api.Lease = (*Lease)(nil)
