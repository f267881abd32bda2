// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entity

// RegionScan is shared by the region aggregator (C6) and the resolve
// engine (C8) so both walk the tables with identical region-membership
// rules and identical, deterministic table order.
//
// Every entity kind carries its own RegionID, copied verbatim from the
// surface description on ingest (spec.md §3, §4.5-4.6, §4.9); an
// assignment, log, policy, hash link or state delta's region need not
// match the zone it otherwise references.
type RegionScan struct {
	ZoneCount       int
	AssignmentCount int
	PolicyCount     int
	LogCount        int
	HashLinkCount   int
	StateDeltaCount int

	ModeServerCount    int
	ModeDelegatedCount int
	ModeDormantCount   int

	VerificationOkCount   int
	VerificationFailCount int

	// MatchedLogs holds pointers to every log in table order whose
	// region matches, for the resolve engine's per-log loop.
	MatchedLogs []*Log
	// MatchedZones holds pointers to every zone in table order whose
	// region matches, for escalation threshold evaluation.
	MatchedZones []*Zone
}

// Scan walks t once, aggregating everything belonging to regionID. A
// regionID of 0 is the wildcard meaning "all regions" (spec.md §4.6).
func Scan(t *Tables, regionID uint64) RegionScan {
	var s RegionScan
	wildcard := regionID == 0

	matches := func(r uint64) bool {
		return wildcard || r == regionID
	}

	for i := range t.Zones {
		z := &t.Zones[i]
		if !matches(z.RegionID) {
			continue
		}
		s.ZoneCount++
		s.MatchedZones = append(s.MatchedZones, z)
		switch z.Mode {
		case ModeServer:
			s.ModeServerCount++
		case ModeDelegated:
			s.ModeDelegatedCount++
		case ModeDormant:
			s.ModeDormantCount++
		}
	}

	for i := range t.Assignments {
		if matches(t.Assignments[i].RegionID) {
			s.AssignmentCount++
		}
	}

	for i := range t.Logs {
		l := &t.Logs[i]
		if !matches(l.RegionID) {
			continue
		}
		s.LogCount++
		s.MatchedLogs = append(s.MatchedLogs, l)
		if l.Flags&FlagVerified != 0 {
			s.VerificationOkCount++
		}
		if l.Flags&FlagFailed != 0 {
			s.VerificationFailCount++
		}
	}

	for i := range t.Policies {
		if matches(t.Policies[i].RegionID) {
			s.PolicyCount++
		}
	}

	for i := range t.HashLinks {
		if matches(t.HashLinks[i].RegionID) {
			s.HashLinkCount++
		}
	}

	for i := range t.StateDeltas {
		if matches(t.StateDeltas[i].RegionID) {
			s.StateDeltaCount++
		}
	}

	return s
}
