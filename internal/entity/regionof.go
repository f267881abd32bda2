// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entity

// RegionOfAssignment returns an assignment's own RegionID, copied
// verbatim from the surface description on ingest (spec.md §4.5 point
// 4); it need not match the zone the assignment binds.
func (t *Tables) RegionOfAssignment(assignmentID uint64) (uint64, bool) {
	a := t.FindAssignment(assignmentID)
	if a == nil {
		return 0, false
	}
	return a.RegionID, true
}

// RegionOfLog returns a log's own RegionID.
func (t *Tables) RegionOfLog(logID uint64) (uint64, bool) {
	l := t.FindLog(logID)
	if l == nil {
		return 0, false
	}
	return l.RegionID, true
}

// RegionOfHashLink returns a hash link's own RegionID.
func (t *Tables) RegionOfHashLink(linkID uint64) (uint64, bool) {
	link := t.FindHashLink(linkID)
	if link == nil {
		return 0, false
	}
	return link.RegionID, true
}

// RegionOfStateDelta returns a state delta's own RegionID.
func (t *Tables) RegionOfStateDelta(deltaID uint64) (uint64, bool) {
	delta := t.FindStateDelta(deltaID)
	if delta == nil {
		return 0, false
	}
	return delta.RegionID, true
}

// RegionOfPolicy returns a policy's own RegionID.
func (t *Tables) RegionOfPolicy(policyID uint64) (uint64, bool) {
	p := t.FindPolicy(policyID)
	if p == nil {
		return 0, false
	}
	return p.RegionID, true
}

// IsRegionCollapsed is C10: a linear search of the capsule list.
func (t *Tables) IsRegionCollapsed(regionID uint64) bool {
	return t.FindCapsule(regionID) != nil
}
