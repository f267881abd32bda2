// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package query implements the single-entity query contract (C5) shared
// by ZoneQuery/AssignmentQuery/PolicyQuery/LogQuery/HashLinkQuery/
// StateDeltaQuery, and the region aggregator (C6), per spec.md §4.5-4.6.
package query

import (
	"github.com/luxfi/srz/internal/budget"
	"github.com/luxfi/srz/internal/domain"
	"github.com/luxfi/srz/internal/entity"
	"github.com/luxfi/srz/internal/fixedpoint"
)

// Status is the call-reached-and-was-evaluated outcome of a query.
type Status uint8

const (
	StatusOK Status = iota
	StatusRefused
)

// Metadata is attached to every sample (spec.md §4.5).
type Metadata struct {
	Status        Status
	RefusalReason entity.RefusalReason
	Resolution    entity.Resolution
	Confidence    entity.Confidence
	CostUnits     uint64
}

func refused(reason entity.RefusalReason) Metadata {
	return Metadata{Status: StatusRefused, RefusalReason: reason}
}

// Sample is the single-entity query result. Full is nil when the query
// was refused or when the entity's region is collapsed (minimal sample,
// spec.md §4.5 point 4).
type Sample[T any] struct {
	Meta     Metadata
	ID       uint64
	RegionID uint64
	Flags    entity.Flags
	Full     *T
}

// inactiveOrBudget performs the two universal prefix checks shared by
// every single-entity query: domain-active and budget-consume.
func inactiveOrBudget(d *domain.Domain, b *budget.Budget, cost uint64) (Metadata, bool) {
	if !d.IsActive() {
		d.Metrics.ObserveQuery(true)
		return refused(entity.RefusalDomainInactive), false
	}
	if !b.Consume(cost) {
		d.Metrics.ObserveQuery(true)
		return refused(entity.RefusalBudget), false
	}
	d.Metrics.ObserveQuery(false)
	return Metadata{}, true
}

func minimalOrFull[T any](collapsed bool, id, regionID uint64, flags entity.Flags, full T) Sample[T] {
	if collapsed {
		return Sample[T]{
			Meta:     Metadata{Status: StatusOK, Resolution: entity.ResolutionAnalytic, Confidence: entity.ConfidenceUnknown},
			ID:       id,
			RegionID: regionID,
			Flags:    flags & (entity.FlagCollapsed | entity.FlagUnresolved),
		}
	}
	return Sample[T]{
		Meta:     Metadata{Status: StatusOK, Resolution: entity.ResolutionAnalytic, Confidence: entity.ConfidenceExact},
		ID:       id,
		RegionID: regionID,
		Flags:    flags,
		Full:     &full,
	}
}

// Zone implements ZoneQuery.
func Zone(d *domain.Domain, id uint64, b *budget.Budget) Sample[entity.Zone] {
	if meta, ok := inactiveOrBudget(d, b, d.Policy.CostFull); !ok {
		return Sample[entity.Zone]{Meta: meta, ID: id}
	}
	z := d.Tables.FindZone(id)
	if z == nil {
		return Sample[entity.Zone]{Meta: refused(entity.RefusalNoSource), ID: id}
	}
	collapsed := d.Tables.IsRegionCollapsed(z.RegionID)
	s := minimalOrFull(collapsed, id, z.RegionID, z.Flags, *z)
	s.Meta.CostUnits = d.Policy.CostFull
	return s
}

// Assignment implements AssignmentQuery.
func Assignment(d *domain.Domain, id uint64, b *budget.Budget) Sample[entity.Assignment] {
	if meta, ok := inactiveOrBudget(d, b, d.Policy.CostFull); !ok {
		return Sample[entity.Assignment]{Meta: meta, ID: id}
	}
	a := d.Tables.FindAssignment(id)
	if a == nil {
		return Sample[entity.Assignment]{Meta: refused(entity.RefusalNoSource), ID: id}
	}
	region, _ := d.Tables.RegionOfAssignment(id)
	collapsed := d.Tables.IsRegionCollapsed(region)
	s := minimalOrFull(collapsed, id, region, 0, *a)
	s.Meta.CostUnits = d.Policy.CostFull
	return s
}

// Policy implements PolicyQuery.
func Policy(d *domain.Domain, id uint64, b *budget.Budget) Sample[entity.Policy] {
	if meta, ok := inactiveOrBudget(d, b, d.Policy.CostFull); !ok {
		return Sample[entity.Policy]{Meta: meta, ID: id}
	}
	p := d.Tables.FindPolicy(id)
	if p == nil {
		return Sample[entity.Policy]{Meta: refused(entity.RefusalNoSource), ID: id}
	}
	region, _ := d.Tables.RegionOfPolicy(id)
	collapsed := region != 0 && d.Tables.IsRegionCollapsed(region)
	s := minimalOrFull(collapsed, id, region, 0, *p)
	s.Meta.CostUnits = d.Policy.CostFull
	return s
}

// Log implements LogQuery.
func Log(d *domain.Domain, id uint64, b *budget.Budget) Sample[entity.Log] {
	if meta, ok := inactiveOrBudget(d, b, d.Policy.CostFull); !ok {
		return Sample[entity.Log]{Meta: meta, ID: id}
	}
	l := d.Tables.FindLog(id)
	if l == nil {
		return Sample[entity.Log]{Meta: refused(entity.RefusalNoSource), ID: id}
	}
	region, _ := d.Tables.RegionOfLog(id)
	collapsed := d.Tables.IsRegionCollapsed(region)
	s := minimalOrFull(collapsed, id, region, l.Flags, *l)
	s.Meta.CostUnits = d.Policy.CostFull
	return s
}

// HashLink implements HashLinkQuery.
func HashLink(d *domain.Domain, id uint64, b *budget.Budget) Sample[entity.HashLink] {
	if meta, ok := inactiveOrBudget(d, b, d.Policy.CostFull); !ok {
		return Sample[entity.HashLink]{Meta: meta, ID: id}
	}
	link := d.Tables.FindHashLink(id)
	if link == nil {
		return Sample[entity.HashLink]{Meta: refused(entity.RefusalNoSource), ID: id}
	}
	region, _ := d.Tables.RegionOfHashLink(id)
	collapsed := region != 0 && d.Tables.IsRegionCollapsed(region)
	s := minimalOrFull(collapsed, id, region, 0, *link)
	s.Meta.CostUnits = d.Policy.CostFull
	return s
}

// StateDelta implements StateDeltaQuery.
func StateDelta(d *domain.Domain, id uint64, b *budget.Budget) Sample[entity.StateDelta] {
	if meta, ok := inactiveOrBudget(d, b, d.Policy.CostFull); !ok {
		return Sample[entity.StateDelta]{Meta: meta, ID: id}
	}
	delta := d.Tables.FindStateDelta(id)
	if delta == nil {
		return Sample[entity.StateDelta]{Meta: refused(entity.RefusalNoSource), ID: id}
	}
	region, _ := d.Tables.RegionOfStateDelta(id)
	collapsed := region != 0 && d.Tables.IsRegionCollapsed(region)
	s := minimalOrFull(collapsed, id, region, 0, *delta)
	s.Meta.CostUnits = d.Policy.CostFull
	return s
}

// RegionSample is the RegionQuery result (C6).
type RegionSample struct {
	Meta                  Metadata
	RegionID              uint64
	Flags                 entity.Flags
	ZoneCount             int
	AssignmentCount       int
	PolicyCount           int
	LogCount              int
	HashLinkCount         int
	StateDeltaCount       int
	ModeServerCount       int
	ModeDelegatedCount    int
	ModeDormantCount      int
	VerificationOkCount   int
	VerificationFailCount int
	FailureRate           fixedpoint.Ratio
}

// Region implements RegionQuery. A regionID of 0 is the wildcard
// meaning "all regions".
func Region(d *domain.Domain, regionID uint64, b *budget.Budget) RegionSample {
	if !d.IsActive() {
		d.Metrics.ObserveQuery(true)
		return RegionSample{Meta: refused(entity.RefusalDomainInactive), RegionID: regionID}
	}
	if !b.Consume(d.Policy.CostAnalytic) {
		d.Metrics.ObserveQuery(true)
		return RegionSample{Meta: refused(entity.RefusalBudget), RegionID: regionID}
	}
	d.Metrics.ObserveQuery(false)

	if regionID != 0 {
		if cap := d.Tables.FindCapsule(regionID); cap != nil {
			return RegionSample{
				Meta:                  Metadata{Status: StatusOK, Resolution: entity.ResolutionAnalytic, Confidence: entity.ConfidenceUnknown, CostUnits: d.Policy.CostAnalytic},
				RegionID:              regionID,
				Flags:                 entity.FlagResolvePartial,
				ZoneCount:             int(cap.ZoneCount),
				AssignmentCount:       int(cap.AssignmentCount),
				PolicyCount:           int(cap.PolicyCount),
				LogCount:              int(cap.LogCount),
				HashLinkCount:         int(cap.HashLinkCount),
				StateDeltaCount:       int(cap.StateDeltaCount),
				VerificationOkCount:   int(cap.VerificationOkCount),
				VerificationFailCount: int(cap.VerificationFailCount),
				FailureRate:           fixedpoint.FromCounts(int64(cap.VerificationFailCount), int64(cap.VerificationOkCount)+int64(cap.VerificationFailCount)),
			}
		}
	}

	scan := entity.Scan(d.Tables, regionID)
	return RegionSample{
		Meta:                  Metadata{Status: StatusOK, Resolution: entity.ResolutionAnalytic, Confidence: entity.ConfidenceExact, CostUnits: d.Policy.CostAnalytic},
		RegionID:              regionID,
		ZoneCount:             scan.ZoneCount,
		AssignmentCount:       scan.AssignmentCount,
		PolicyCount:           scan.PolicyCount,
		LogCount:              scan.LogCount,
		HashLinkCount:         scan.HashLinkCount,
		StateDeltaCount:       scan.StateDeltaCount,
		ModeServerCount:       scan.ModeServerCount,
		ModeDelegatedCount:    scan.ModeDelegatedCount,
		ModeDormantCount:      scan.ModeDormantCount,
		VerificationOkCount:   scan.VerificationOkCount,
		VerificationFailCount: scan.VerificationFailCount,
		FailureRate:           fixedpoint.FromCounts(int64(scan.VerificationFailCount), int64(scan.VerificationOkCount)+int64(scan.VerificationFailCount)),
	}
}
