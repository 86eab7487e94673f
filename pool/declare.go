// File: pool/declare.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool declaration: one region of capacity*count bytes plus a Pool bound to it.

package pool

import (
	"math"

	"github.com/momentics/slotpool/api"
)

// Declare allocates a region for count slots of capacity bytes, placed as
// WithPlacement says (heap by default), and binds a Pool to it.
func Declare(capacity, count int, opts ...Option) (*Pool, error) {
	if count <= 0 {
		return nil, api.NewError(api.ErrCodeMisconfigured, "slot count must be positive").
			WithContext("count", count)
	}
	if uint64(count) > maxSlots {
		return nil, api.NewError(api.ErrCodeMisconfigured, "too many slots").
			WithContext("count", count)
	}
	if err := validate(capacity, 0); err != nil {
		return nil, err
	}
	if count > math.MaxInt/capacity {
		return nil, api.NewError(api.ErrCodeMisconfigured, "region size overflows int").
			WithContext("capacity", capacity).
			WithContext("count", count)
	}
	if err := validate(capacity, capacity*count); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	region, err := newRegion(o.placement, capacity*count)
	if err != nil {
		return nil, err
	}
	return &Pool{state: newState(region, capacity, o)}, nil
}

// MustDeclare is Declare that panics on misconfiguration, for package-level
// pool variables:
//
//	var rx = pool.MustDeclare(2048, 512)
func MustDeclare(capacity, count int, opts ...Option) *Pool {
	p, err := Declare(capacity, count, opts...)
	if err != nil {
		panic(err)
	}
	return p
}
