// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package capsule implements Collapse/Expand (C9): folding a region into
// a single macro capsule summary, and reversing the fold, per spec.md
// §4.9.
package capsule

import (
	"github.com/luxfi/srz/internal/domain"
	"github.com/luxfi/srz/internal/entity"
	"github.com/luxfi/srz/internal/fixedpoint"
)

// Status is the outcome of a Collapse or Expand call.
type Status uint8

const (
	StatusOK Status = iota
	StatusRefused
)

// Collapse folds regionID's entities into a macro capsule. It refuses
// if regionID is 0 or the capsule table is full. Collapsing a region
// that is already collapsed is an idempotent no-op that returns
// StatusOK without adding a second capsule (spec.md §8 property 4).
func Collapse(d *domain.Domain, regionID uint64) Status {
	if regionID == 0 {
		return StatusRefused
	}
	if d.Tables.IsRegionCollapsed(regionID) {
		return StatusOK
	}
	if len(d.Tables.Capsules) >= entity.MaxCapsules {
		return StatusRefused
	}

	scan := entity.Scan(d.Tables, regionID)
	failureRate := fixedpoint.FromCounts(
		int64(scan.VerificationFailCount),
		int64(scan.VerificationOkCount)+int64(scan.VerificationFailCount),
	)

	var cap entity.MacroCapsule
	cap.CapsuleID = regionID
	cap.RegionID = regionID
	cap.ZoneCount = uint32(scan.ZoneCount)
	cap.AssignmentCount = uint32(scan.AssignmentCount)
	cap.PolicyCount = uint32(scan.PolicyCount)
	cap.LogCount = uint32(scan.LogCount)
	cap.HashLinkCount = uint32(scan.HashLinkCount)
	cap.StateDeltaCount = uint32(scan.StateDeltaCount)
	cap.VerificationOkCount = uint32(scan.VerificationOkCount)
	cap.VerificationFailCount = uint32(scan.VerificationFailCount)

	bin := fixedpoint.Bin(failureRate)
	var binCounts [fixedpoint.HistBins]int64
	binCounts[bin] = int64(scan.ZoneCount)
	for i := 0; i < fixedpoint.HistBins; i++ {
		cap.FailureHistogram[i] = fixedpoint.BinRatio(binCounts[i], int64(scan.ZoneCount))
	}
	// RNGCursor stays zero; its re-expansion role is an open question
	// (spec.md §9) and nothing reads it.

	d.Tables.Capsules = append(d.Tables.Capsules, cap)
	return StatusOK
}

// Expand removes regionID's capsule, restoring full-fidelity querying
// (spec.md §8 property 5). It refuses if the region is not collapsed.
func Expand(d *domain.Domain, regionID uint64) Status {
	if d.Tables.RemoveCapsule(regionID) {
		return StatusOK
	}
	return StatusRefused
}

// Count returns the number of live capsules.
func Count(d *domain.Domain) int {
	return len(d.Tables.Capsules)
}

// At returns the capsule at index, or nil if out of range. The view is
// read-only and index-stable between mutations.
func At(d *domain.Domain, index int) *entity.MacroCapsule {
	if index < 0 || index >= len(d.Tables.Capsules) {
		return nil
	}
	return &d.Tables.Capsules[index]
}
