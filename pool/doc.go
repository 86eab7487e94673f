// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity, lock-free slot allocator.
//
// A Pool carves one contiguous region into equal-size slots and hands each
// out as an exclusively owned *Buffer. Get never blocks: virgin slots are
// served by an atomic bump cursor, released slots by a lock-free free list
// whose links live inside the free slots themselves. Buffer.Release pushes
// the slot back.
//
// Regions come from the Go heap, caller-owned static arrays, or anonymous OS
// mappings (mmap on Unix, VirtualAlloc on Windows). See pool.go, buffer.go
// and freelist.go for implementation details.
package pool
