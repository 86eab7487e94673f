// Package pool: zero-alloc batching of leased buffers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This implementation is NOT thread-safe and avoids mutex in hot-path.

package pool

// BufferBatch is a minimal batch of leased buffers.
type BufferBatch struct {
	buffers []*Buffer
}

// NewBufferBatch creates a new batch with given capacity.
func NewBufferBatch(capacity int) *BufferBatch {
	return &BufferBatch{
		buffers: make([]*Buffer, 0, capacity),
	}
}

// Fill acquires up to n buffers from p into the batch and returns how many
// it got. It stops at the first exhaustion.
func (b *BufferBatch) Fill(p *Pool, n int) int {
	got := 0
	for ; got < n; got++ {
		buf, ok := p.Get()
		if !ok {
			break
		}
		b.buffers = append(b.buffers, buf)
	}
	return got
}

// Append adds a buffer to the batch.
func (b *BufferBatch) Append(buf *Buffer) {
	b.buffers = append(b.buffers, buf)
}

// Len returns number of items in the batch.
func (b *BufferBatch) Len() int {
	return len(b.buffers)
}

// Get retrieves item at index.
func (b *BufferBatch) Get(idx int) *Buffer {
	return b.buffers[idx]
}

// Slice returns zero-copy sub-batch [start:end).
func (b *BufferBatch) Slice(start, end int) *BufferBatch {
	return &BufferBatch{buffers: b.buffers[start:end:end]}
}

// Split divides the batch at idx into two sub-batches.
func (b *BufferBatch) Split(idx int) (first, second *BufferBatch) {
	return &BufferBatch{buffers: b.buffers[:idx:idx]}, &BufferBatch{buffers: b.buffers[idx:]}
}

// ReleaseAll releases every buffer and empties the batch.
func (b *BufferBatch) ReleaseAll() {
	for i, buf := range b.buffers {
		buf.Release()
		b.buffers[i] = nil
	}
	b.buffers = b.buffers[:0]
}

// Reset clears the batch retaining underlying storage. Buffers are not
// released.
func (b *BufferBatch) Reset() {
	clear(b.buffers)
	b.buffers = b.buffers[:0]
}
