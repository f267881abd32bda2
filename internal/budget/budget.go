// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package budget implements the per-call unit counter described in
// spec.md §4.2: consume-or-refuse semantics with a floor of one unit per
// query and no side effect on refusal.
package budget

import "github.com/luxfi/srz/internal/safemath"

// Budget tracks units consumed against a fixed cap for one call chain.
// Callers own a Budget's lifetime; the core never allocates one.
type Budget struct {
	UsedUnits uint64
	MaxUnits  uint64
}

// New returns a Budget capped at max with zero units used.
func New(max uint64) *Budget {
	return &Budget{MaxUnits: max}
}

// Consume charges n units, flooring to 1 for a zero-cost query. It
// reports false without mutating UsedUnits if the charge would exceed
// MaxUnits, including when UsedUnits+n would overflow uint64.
func (b *Budget) Consume(n uint64) bool {
	if n == 0 {
		n = 1
	}
	sum, err := safemath.Add64(b.UsedUnits, n)
	if err != nil || sum > b.MaxUnits {
		return false
	}
	b.UsedUnits = sum
	return true
}

// Remaining returns the number of units still available.
func (b *Budget) Remaining() uint64 {
	if b.UsedUnits >= b.MaxUnits {
		return 0
	}
	return b.MaxUnits - b.UsedUnits
}

// Exhausted reports whether no further consumption of any size succeeds.
func (b *Budget) Exhausted() bool {
	return b.Remaining() == 0
}
