// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entity

// Tables is the bounded, by-value storage for one domain. Lookup is a
// linear scan in storage order — determinism, not throughput, is the
// priority (spec.md §4.3). Storage order is exactly ingest order, which
// is what makes Resolve's per-log loop order reproducible.
type Tables struct {
	Zones       []Zone
	Assignments []Assignment
	Policies    []Policy
	Logs        []Log
	HashLinks   []HashLink
	StateDeltas []StateDelta
	Capsules    []MacroCapsule
}

// NewTables preallocates the bounded slabs at their compile-time
// capacities so ingest and capsule appends never grow them.
func NewTables() *Tables {
	return &Tables{
		Zones:       make([]Zone, 0, MaxZones),
		Assignments: make([]Assignment, 0, MaxAssignments),
		Policies:    make([]Policy, 0, MaxPolicies),
		Logs:        make([]Log, 0, MaxLogs),
		HashLinks:   make([]HashLink, 0, MaxHashLinks),
		StateDeltas: make([]StateDelta, 0, MaxStateDeltas),
		Capsules:    make([]MacroCapsule, 0, MaxCapsules),
	}
}

// LoadFrom copies a SurfaceDescription's entities into the tables,
// clamping each list to its compile-time maximum (invariant 1).
func (t *Tables) LoadFrom(d SurfaceDescription) {
	t.Zones = append(t.Zones[:0], clamp(d.Zones, MaxZones)...)
	t.Assignments = append(t.Assignments[:0], clamp(d.Assignments, MaxAssignments)...)
	t.Policies = append(t.Policies[:0], clamp(d.Policies, MaxPolicies)...)
	t.Logs = append(t.Logs[:0], clamp(d.Logs, MaxLogs)...)
	t.HashLinks = append(t.HashLinks[:0], clamp(d.HashLinks, MaxHashLinks)...)
	t.StateDeltas = append(t.StateDeltas[:0], clamp(d.StateDeltas, MaxStateDeltas)...)
	t.Capsules = t.Capsules[:0]
}

func clamp[T any](in []T, max int) []T {
	if len(in) <= max {
		return in
	}
	return in[:max]
}

// FindZone returns a pointer into the table, or nil if absent.
func (t *Tables) FindZone(id uint64) *Zone {
	for i := range t.Zones {
		if t.Zones[i].SRZID == id {
			return &t.Zones[i]
		}
	}
	return nil
}

// FindAssignment returns a pointer into the table, or nil if absent.
func (t *Tables) FindAssignment(id uint64) *Assignment {
	for i := range t.Assignments {
		if t.Assignments[i].AssignmentID == id {
			return &t.Assignments[i]
		}
	}
	return nil
}

// FindPolicy returns a pointer into the table, or nil if absent.
func (t *Tables) FindPolicy(id uint64) *Policy {
	for i := range t.Policies {
		if t.Policies[i].PolicyID == id {
			return &t.Policies[i]
		}
	}
	return nil
}

// FindLog returns a pointer into the table, or nil if absent.
func (t *Tables) FindLog(id uint64) *Log {
	for i := range t.Logs {
		if t.Logs[i].LogID == id {
			return &t.Logs[i]
		}
	}
	return nil
}

// FindHashLink returns a pointer into the table, or nil if absent.
func (t *Tables) FindHashLink(id uint64) *HashLink {
	for i := range t.HashLinks {
		if t.HashLinks[i].LinkID == id {
			return &t.HashLinks[i]
		}
	}
	return nil
}

// FindStateDelta returns a pointer into the table, or nil if absent.
func (t *Tables) FindStateDelta(id uint64) *StateDelta {
	for i := range t.StateDeltas {
		if t.StateDeltas[i].DeltaID == id {
			return &t.StateDeltas[i]
		}
	}
	return nil
}

// LinksOf returns every hash link belonging to chainID, in storage order.
func (t *Tables) LinksOf(chainID uint64) []*HashLink {
	var out []*HashLink
	for i := range t.HashLinks {
		if t.HashLinks[i].ChainID == chainID {
			out = append(out, &t.HashLinks[i])
		}
	}
	return out
}

// FindCapsule returns the capsule for regionID, or nil if the region is
// not collapsed (C10: region capsule lookup).
func (t *Tables) FindCapsule(regionID uint64) *MacroCapsule {
	for i := range t.Capsules {
		if t.Capsules[i].RegionID == regionID {
			return &t.Capsules[i]
		}
	}
	return nil
}

// RemoveCapsule deletes the capsule for regionID by swapping it with the
// last entry and shrinking the slice (C9 Expand), preserving storage
// order for everything except the removed slot.
func (t *Tables) RemoveCapsule(regionID uint64) bool {
	for i := range t.Capsules {
		if t.Capsules[i].RegionID == regionID {
			last := len(t.Capsules) - 1
			t.Capsules[i] = t.Capsules[last]
			t.Capsules = t.Capsules[:last]
			return true
		}
	}
	return false
}
