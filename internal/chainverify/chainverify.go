// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainverify implements the three verification strategies of
// spec.md §4.7: strict replay (walk the hash-link chain), spot check
// (root + tip only) and invariants-only (trust the state delta's own
// flag). All three report accumulated process/rng-stream totals so the
// caller can apply the count-integrity check of spec.md §4.8 step 11.
package chainverify

import (
	"github.com/luxfi/srz/internal/entity"
	"github.com/luxfi/srz/internal/idset"
)

// Totals is the accumulated process/rng-stream count a strategy walked.
type Totals struct {
	ProcessCount   uint64
	RNGStreamCount uint64
}

// Strict walks the chain strictly by prev-hash -> hash linkage starting
// from the unique root (PrevHash == 0). It reports ok=false if there is
// not exactly one root, any visited link has a zero hash, or any link in
// the chain is left unvisited.
func Strict(t *entity.Tables, chainID uint64) (Totals, bool) {
	links := t.LinksOf(chainID)
	if len(links) == 0 {
		return Totals{}, false
	}

	var root *entity.HashLink
	rootCount := 0
	for _, l := range links {
		if l.PrevHash == 0 {
			rootCount++
			root = l
		}
	}
	if rootCount != 1 {
		return Totals{}, false
	}

	var totals Totals
	visited := idset.New[uint64](len(links))
	cur := root
	for step := 0; step <= len(links); step++ {
		if cur.Hash == 0 {
			return Totals{}, false
		}
		if visited.Contains(cur.LinkID) {
			return Totals{}, false
		}
		visited.Add(cur.LinkID)
		totals.ProcessCount += cur.ProcessCount
		totals.RNGStreamCount += cur.RNGStreamCount

		var next *entity.HashLink
		for _, l := range links {
			if l.PrevHash == cur.Hash && !visited.Contains(l.LinkID) {
				next = l
				break
			}
		}
		if next == nil {
			break
		}
		cur = next
	}

	return totals, visited.Len() == len(links)
}

// Spot requires only that a unique root exists and that the
// highest-segment-index link carries a nonzero hash; it accumulates
// totals over every link of the chain without walking the linkage.
func Spot(t *entity.Tables, chainID uint64) (Totals, bool) {
	links := t.LinksOf(chainID)
	if len(links) == 0 {
		return Totals{}, false
	}

	rootCount := 0
	var tip *entity.HashLink
	var totals Totals
	for _, l := range links {
		if l.PrevHash == 0 {
			rootCount++
		}
		if tip == nil || l.SegmentIndex > tip.SegmentIndex {
			tip = l
		}
		totals.ProcessCount += l.ProcessCount
		totals.RNGStreamCount += l.RNGStreamCount
	}

	ok := rootCount == 1 && tip != nil && tip.Hash != 0
	return totals, ok
}

// InvariantOnly succeeds iff the log's referenced delta has InvariantsOk
// set and its process/rng-stream counts equal the log's declared values.
func InvariantOnly(delta *entity.StateDelta, logProcessCount, logRNGStreamCount uint64) (Totals, bool) {
	if delta == nil {
		return Totals{}, false
	}
	totals := Totals{ProcessCount: delta.ProcessCount, RNGStreamCount: delta.RNGStreamCount}
	ok := delta.InvariantsOk &&
		delta.ProcessCount == logProcessCount &&
		delta.RNGStreamCount == logRNGStreamCount
	return totals, ok
}
