// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// In-slot free-list encoding and the generation-tagged list head.
//
// A released slot stores the offset of the next free slot in its first
// machine word, little-endian. The all-ones word terminates the list.
//
//	head (uint64):  | generation (32) | slot index (32) |
//	slot word:      | next offset, little-endian, wordSize bytes |

package pool

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// wordSize is the size of one machine word; a slot must be able to hold it.
const wordSize = int(unsafe.Sizeof(uintptr(0)))

const (
	// nilOffset terminates the in-slot chain.
	nilOffset = math.MaxUint64

	// nilIndex marks an empty list head. No pool may have this many slots.
	nilIndex = math.MaxUint32

	// maxSlots is the largest slot count a head can address.
	maxSlots = nilIndex - 1
)

// emptyHead is the initial value of the free cursor.
var emptyHead = packHead(0, nilIndex)

func packHead(gen, index uint32) uint64 {
	return uint64(gen)<<32 | uint64(index)
}

func unpackHead(head uint64) (gen, index uint32) {
	return uint32(head >> 32), uint32(head)
}

// putNext writes the next-free offset into the leading word of slot.
func putNext(slot []byte, next uint64) {
	if wordSize == 8 {
		binary.LittleEndian.PutUint64(slot, next)
		return
	}
	binary.LittleEndian.PutUint32(slot, uint32(next))
}

// readNext reads the next-free offset stored in the leading word of slot.
// The value may be torn if another goroutine already owns the slot; the
// caller's head CAS fails in that case and the value is discarded.
func readNext(slot []byte) uint64 {
	if wordSize == 8 {
		return binary.LittleEndian.Uint64(slot)
	}
	v := binary.LittleEndian.Uint32(slot)
	if v == math.MaxUint32 {
		return nilOffset
	}
	return uint64(v)
}
