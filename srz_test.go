// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package srz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestS1ServerZoneAlwaysVerifies covers spec.md §8 scenario S1: a
// Server-mode zone's logs verify unconditionally, with no chain or
// delta evidence required.
func TestS1ServerZoneAlwaysVerifies(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, Mode: ModeServer}}
	desc.Logs = []Log{{LogID: 1, SRZID: 1}}

	d := DomainInit(desc, nil)
	b := NewBudget(1_000_000)
	res := Resolve(d, 0, 0, 0, b)

	require.True(res.OK)
	require.Equal(1, res.VerificationOkCount)
	require.Equal(0, res.VerificationFailCount)
	require.NotZero(res.Flags & FlagVerified)

	log := d.Tables.FindLog(1)
	require.NotZero(log.Flags & FlagVerified)
}

// TestS2DelegatedStrictChainWalk covers S2: a complete two-link strict
// chain verifies and its totals match the log's declared counts.
func TestS2DelegatedStrictChainWalk(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, Mode: ModeDelegated, VerificationPolicy: VPStrict}}
	desc.Logs = []Log{{LogID: 1, SRZID: 1, ChainID: 1, ProcessCount: 5, RNGStreamCount: 2}}
	desc.HashLinks = []HashLink{
		{LinkID: 1, ChainID: 1, PrevHash: 0, Hash: 0x1001, ProcessCount: 3, RNGStreamCount: 1},
		{LinkID: 2, ChainID: 1, PrevHash: 0x1001, Hash: 0x1002, ProcessCount: 2, RNGStreamCount: 1},
	}

	d := DomainInit(desc, nil)
	b := NewBudget(1_000_000)
	res := Resolve(d, 0, 0, 0, b)

	require.True(res.OK)
	require.Equal(1, res.VerificationOkCount)
	require.NotZero(res.Flags & FlagStrictApplied)

	log := d.Tables.FindLog(1)
	require.NotZero(log.Flags & FlagVerified)
}

// TestS3BrokenChainFailsProofInvalid covers S3: a leaf whose prev-hash
// doesn't match the root's hash breaks the chain.
func TestS3BrokenChainFailsProofInvalid(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, Mode: ModeDelegated, VerificationPolicy: VPStrict}}
	desc.Logs = []Log{{LogID: 1, SRZID: 1, ChainID: 1, ProcessCount: 5, RNGStreamCount: 2}}
	desc.HashLinks = []HashLink{
		{LinkID: 1, ChainID: 1, PrevHash: 0, Hash: 0x1001, ProcessCount: 3, RNGStreamCount: 1},
		{LinkID: 2, ChainID: 1, PrevHash: 0x9999, Hash: 0x1002, ProcessCount: 2, RNGStreamCount: 1},
	}

	d := DomainInit(desc, nil)
	b := NewBudget(1_000_000)
	res := Resolve(d, 0, 0, 0, b)

	require.False(res.OK)
	require.Equal(RefusalProofInvalid, res.RefusalReason)
	require.NotZero(res.Flags & FlagVerificationFailed)

	log := d.Tables.FindLog(1)
	require.NotZero(log.Flags & FlagFailed)
}

// TestS4EpistemicMismatch covers S4: a zone/log epistemic scope
// disagreement fails the log regardless of its chain evidence.
func TestS4EpistemicMismatch(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, Mode: ModeServer, EpistemicScopeID: 7}}
	desc.Logs = []Log{{LogID: 1, SRZID: 1, EpistemicScopeID: 9}}

	d := DomainInit(desc, nil)
	b := NewBudget(1_000_000)
	res := Resolve(d, 0, 0, 0, b)

	require.False(res.OK)
	require.Equal(RefusalEpistemic, res.RefusalReason)
	require.NotZero(res.Flags & FlagEpistemicRefused)
	require.NotZero(res.Flags & FlagVerificationFailed)

	log := d.Tables.FindLog(1)
	require.NotZero(log.Flags & FlagFailed)
	require.NotZero(log.Flags & FlagEpistemicMismatch)
}

// TestS5BudgetStarvation covers S5: a budget that can afford the
// resolve's own analytic charge plus exactly one log's full charge
// ends partial with the second log untouched.
func TestS5BudgetStarvation(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Policy = DomainPolicy{CostFull: 10, CostAnalytic: 1}
	desc.Zones = []Zone{{SRZID: 1, Mode: ModeServer}}
	desc.Logs = []Log{
		{LogID: 1, SRZID: 1},
		{LogID: 2, SRZID: 1},
		{LogID: 3, SRZID: 1},
	}

	d := DomainInit(desc, nil)
	b := NewBudget(12)
	res := Resolve(d, 0, 0, 0, b)

	require.Equal(1, res.VerificationOkCount+res.VerificationFailCount)
	require.Equal(1, res.LogCount)
	require.NotZero(res.Flags & FlagResolvePartial)
	require.Equal(RefusalBudget, res.RefusalReason)
	require.Equal(uint64(11), b.UsedUnits)
}

// TestS6CollapseExpandRoundTrip covers S6: after a clean resolve,
// collapsing and re-expanding a region preserves its live counts.
func TestS6CollapseExpandRoundTrip(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, RegionID: 1, Mode: ModeServer}}
	desc.Logs = []Log{{LogID: 1, SRZID: 1, RegionID: 1}}

	d := DomainInit(desc, nil)
	b := NewBudget(1_000_000)
	Resolve(d, 1, 0, 0, b)

	require.Equal(CapsuleOK, CollapseRegion(d, 1))
	collapsedSample := RegionQuery(d, 1, b)
	require.Equal(1, collapsedSample.LogCount)
	require.Equal(1, collapsedSample.VerificationOkCount)
	require.NotZero(collapsedSample.Flags & FlagResolvePartial)

	require.Equal(CapsuleOK, ExpandRegion(d, 1))
	liveSample := RegionQuery(d, 1, b)
	require.Equal(1, liveSample.LogCount)
	require.Equal(1, liveSample.VerificationOkCount)
}

// TestInvariantDeterminism covers property 1: two independently
// initialized clones of the same description resolve identically.
func TestInvariantDeterminism(t *testing.T) {
	require := require.New(t)

	build := func() *Domain {
		desc := SurfaceDescInit()
		desc.Zones = []Zone{{SRZID: 1, Mode: ModeDelegated, VerificationPolicy: VPSpot}}
		desc.Logs = []Log{{LogID: 1, SRZID: 1, ChainID: 1}}
		desc.HashLinks = []HashLink{
			{LinkID: 1, ChainID: 1, PrevHash: 0, Hash: 1, SegmentIndex: 0},
			{LinkID: 2, ChainID: 1, PrevHash: 1, Hash: 2, SegmentIndex: 1},
		}
		return DomainInit(desc, nil)
	}

	d1, d2 := build(), build()
	b1, b2 := NewBudget(1000), NewBudget(1000)
	r1 := Resolve(d1, 0, 0, 0, b1)
	r2 := Resolve(d2, 0, 0, 0, b2)

	require.Equal(r1, r2)
	require.Equal(b1.UsedUnits, b2.UsedUnits)
}

// TestInvariantBudgetMonotonicity covers property 2.
func TestInvariantBudgetMonotonicity(t *testing.T) {
	require := require.New(t)

	b := NewBudget(20)
	prev := uint64(0)
	for i := 0; i < 10; i++ {
		b.Consume(3)
		require.GreaterOrEqual(b.UsedUnits, prev)
		require.LessOrEqual(b.UsedUnits, b.MaxUnits)
		prev = b.UsedUnits
	}
}

// TestInvariantFlagExclusivity covers property 3: after Resolve every
// log has at most one of Verified/Failed set.
func TestInvariantFlagExclusivity(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{
		{SRZID: 1, Mode: ModeServer},
		{SRZID: 2, Mode: ModeDelegated, VerificationPolicy: VPStrict},
	}
	desc.Logs = []Log{
		{LogID: 1, SRZID: 1},
		{LogID: 2, SRZID: 2, ChainID: 99},
	}

	d := DomainInit(desc, nil)
	b := NewBudget(1_000_000)
	Resolve(d, 0, 0, 0, b)

	for _, l := range d.Tables.Logs {
		both := l.Flags&FlagVerified != 0 && l.Flags&FlagFailed != 0
		require.False(both, "log %d has both Verified and Failed set", l.LogID)
	}
}

// TestInvariantCollapseIdempotence covers property 4.
func TestInvariantCollapseIdempotence(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, RegionID: 1, Mode: ModeServer}}
	d := DomainInit(desc, nil)

	require.Equal(CapsuleOK, CollapseRegion(d, 1))
	require.Equal(1, CapsuleCount(d))
	require.Equal(CapsuleOK, CollapseRegion(d, 1))
	require.Equal(1, CapsuleCount(d))
}

// TestInvariantExpandInverse covers property 5.
func TestInvariantExpandInverse(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, RegionID: 1, Mode: ModeServer}}
	d := DomainInit(desc, nil)

	require.Equal(CapsuleOK, CollapseRegion(d, 1))
	require.Equal(1, CapsuleCount(d))
	require.Equal(CapsuleOK, ExpandRegion(d, 1))
	require.Equal(0, CapsuleCount(d))
}

// TestInvariantRatioSoundness covers property 6.
func TestInvariantRatioSoundness(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, Mode: ModeDelegated, VerificationPolicy: VPStrict}}
	desc.Logs = []Log{
		{LogID: 1, SRZID: 1, ChainID: 1},
		{LogID: 2, SRZID: 1, ChainID: 2},
	}

	d := DomainInit(desc, nil)
	b := NewBudget(1_000_000)
	res := Resolve(d, 0, 0, 0, b)

	require.GreaterOrEqual(int32(res.FailureRate), int32(0))
	require.LessOrEqual(int32(res.FailureRate), int32(0x10000))
}

// TestInvariantScopeLaw covers property 7: after Resolve, a log whose
// epistemic scope differs from its zone's carries exactly
// Failed|EpistemicMismatch.
func TestInvariantScopeLaw(t *testing.T) {
	require := require.New(t)

	desc := SurfaceDescInit()
	desc.Zones = []Zone{{SRZID: 1, Mode: ModeServer, EpistemicScopeID: 1}}
	desc.Logs = []Log{{LogID: 1, SRZID: 1, EpistemicScopeID: 2}}

	d := DomainInit(desc, nil)
	b := NewBudget(1_000_000)
	Resolve(d, 0, 0, 0, b)

	log := d.Tables.FindLog(1)
	require.Equal(FlagFailed|FlagEpistemicMismatch, log.Flags)
}
