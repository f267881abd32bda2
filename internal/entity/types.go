// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package entity holds the SRZ data model: zones, assignments, policies,
// logs, hash-link chains, state deltas and macro capsules, plus the
// bounded tables that own them. All cross-entity references are bare
// integer ids looked up by equality — spec.md §3 and §9 ("Arena +
// index, not pointers").
package entity

import "github.com/luxfi/srz/internal/fixedpoint"

// Compile-time table capacities. Ingest clamps to these (invariant 1).
const (
	MaxZones        = 4096
	MaxAssignments  = 8192
	MaxPolicies     = 512
	MaxLogs         = 65536
	MaxHashLinks    = 131072
	MaxStateDeltas  = 65536
	MaxCapsules     = MaxZones
	MaxDomainRefs   = 8
	MaxThresholds   = 8
)

// Mode is a zone's authority mode.
type Mode uint8

const (
	ModeServer Mode = iota
	ModeDelegated
	ModeDormant
)

// VerificationPolicy selects the verification strategy. VPUnset is only
// valid on a Policy, meaning "defer to the zone's own policy".
type VerificationPolicy uint8

const (
	VPUnset VerificationPolicy = iota
	VPStrict
	VPSpot
	VPInvariantOnly
)

// MetricFailureRate is the only metric threshold comparisons are made
// against in this version; spec.md §9 reserves Metric as a tagged enum
// without enumerating others.
const MetricFailureRate uint32 = 1

// Threshold pairs a metric with a Q16.16 comparison value.
type Threshold struct {
	MetricID uint32
	Value    fixedpoint.Ratio
}

// Flags is a shared bitset namespace. Different entity kinds and results
// use different subsets of these bits; see spec.md §9 ("flag words may
// remain as bit masks since several bits can co-occur").
type Flags uint32

const (
	FlagVerified Flags = 1 << iota
	FlagFailed
	FlagEpistemicMismatch
	FlagCollapsed
	FlagUnresolved
	FlagEscalated
	FlagDeescalated
	FlagStrictApplied
	FlagSpotApplied
	FlagInvariantOnlyApplied
	FlagEpistemicRefused
	FlagVerificationFailed
	FlagResolvePartial
)

// logMutableFlags are cleared on a Log before each resolve of that log
// (spec.md invariant 5).
const logMutableFlags = FlagVerified | FlagFailed | FlagEpistemicMismatch

// RefusalReason is the semantic-level outcome carried inside every
// sample/result (spec.md §7).
type RefusalReason uint8

const (
	RefusalNone RefusalReason = iota
	RefusalBudget
	RefusalDomainInactive
	RefusalNoSource
	RefusalZoneMissing
	RefusalAssignmentMissing
	RefusalPolicyMissing
	RefusalLogMissing
	RefusalHashMissing
	RefusalDeltaMissing
	RefusalEpistemic
	RefusalProofInvalid
	RefusalPolicyLevel
	RefusalInternal
)

// Resolution describes how a sample was produced.
type Resolution uint8

const (
	ResolutionAnalytic Resolution = iota
)

// Confidence describes how much detail backs a sample.
type Confidence uint8

const (
	ConfidenceExact Confidence = iota
	ConfidenceUnknown
)

// ExistenceState is a domain's coarse lifecycle stage.
type ExistenceState uint8

const (
	ExistenceNonexistent ExistenceState = iota
	ExistenceDeclared
	ExistenceRealized
)

// ArchivalState tracks whether a domain is still being simulated.
type ArchivalState uint8

const (
	ArchivalLive ArchivalState = iota
	ArchivalArchived
)

// Zone is a region of simulation authority. Identity: SRZID.
type Zone struct {
	SRZID                      uint64
	Mode                       Mode
	VerificationPolicy         VerificationPolicy
	DomainIDs                  [MaxDomainRefs]uint64
	DomainIDCount              int
	EscalationThresholds       [MaxThresholds]Threshold
	EscalationThresholdCount   int
	DeescalationThresholds     [MaxThresholds]Threshold
	DeescalationThresholdCount int
	EpistemicScopeID           uint64
	PolicyID                   uint64
	ProvenanceID               uint64
	RegionID                   uint64
	Flags                      Flags
}

// Assignment binds an executor and authority token to a zone over a
// tick range. Identity: AssignmentID. ExpiryTick of 0 means open.
// RegionID is copied verbatim from the surface description on ingest
// and need not match the owning zone's own RegionID.
type Assignment struct {
	AssignmentID   uint64
	SRZID          uint64
	ExecutorID     uint64
	AuthorityToken uint64
	StartTick      uint64
	ExpiryTick     uint64
	RegionID       uint64
}

// Policy is a named verification regime that can override a zone's
// default. Identity: PolicyID. RegionID is copied verbatim from the
// surface description on ingest.
type Policy struct {
	PolicyID             uint64
	VerificationPolicy   VerificationPolicy
	SpotCheckRate        fixedpoint.Ratio
	StrictReplayInterval uint64
	MaxSegmentTicks      uint64
	RegionID             uint64
}

// Log is a recorded execution segment. Identity: LogID. Flags
// accumulates the most recent resolution verdict (spec.md §3). RegionID
// is copied verbatim from the surface description on ingest and need
// not match the owning zone's own RegionID.
type Log struct {
	LogID            uint64
	SRZID            uint64
	AssignmentID     uint64
	PolicyID         uint64
	ChainID          uint64
	DeltaID          uint64
	StartTick        uint64
	EndTick          uint64
	ProcessCount     uint64
	RNGStreamCount   uint64
	EpistemicScopeID uint64
	RegionID         uint64
	Flags            Flags
}

// ClearMutableFlags resets the three mutable verdict bits before a fresh
// resolve (spec.md invariant 5).
func (l *Log) ClearMutableFlags() {
	l.Flags &^= logMutableFlags
}

// HashLink is one segment in a chain of evidence. Identity: LinkID. A
// PrevHash of zero marks the chain's root. RegionID is copied verbatim
// from the surface description on ingest.
type HashLink struct {
	LinkID         uint64
	ChainID        uint64
	SegmentIndex   uint32
	PrevHash       uint64
	Hash           uint64
	StartTick      uint64
	EndTick        uint64
	ProcessCount   uint64
	RNGStreamCount uint64
	RegionID       uint64
}

// StateDelta is the net state change attributable to a log. Identity:
// DeltaID. RegionID is copied verbatim from the surface description on
// ingest.
type StateDelta struct {
	DeltaID        uint64
	ProcessCount   uint64
	RNGStreamCount uint64
	InvariantsOk   bool
	RegionID       uint64
}

// MacroCapsule is a frozen summary of a collapsed region. CapsuleID
// equals RegionID at creation time.
type MacroCapsule struct {
	CapsuleID             uint64
	RegionID              uint64
	ZoneCount             uint32
	AssignmentCount       uint32
	PolicyCount           uint32
	LogCount              uint32
	HashLinkCount         uint32
	StateDeltaCount       uint32
	VerificationOkCount   uint32
	VerificationFailCount uint32
	FailureHistogram      [fixedpoint.HistBins]fixedpoint.Ratio
	// RNGCursor is opaque storage reserved for deterministic
	// re-expansion; its meaning is an open question (spec.md §9) and
	// Resolve never reads it.
	RNGCursor [fixedpoint.HistBins]uint64
}

// DomainPolicy names the per-query-kind cost tiers (spec.md §4.2).
// CostMedium/CostCoarse are reserved and unread by any current
// operation.
type DomainPolicy struct {
	CostFull     uint64
	CostAnalytic uint64
	CostMedium   uint64
	CostCoarse   uint64
}

// DefaultDomainPolicy is a sensible starting cost table.
func DefaultDomainPolicy() DomainPolicy {
	return DomainPolicy{
		CostFull:     10,
		CostAnalytic: 1,
		CostMedium:   5,
		CostCoarse:   2,
	}
}

// SurfaceDescription is the one-time input used to populate a Domain's
// tables (spec.md §6, SurfaceDescInit/DomainInit).
type SurfaceDescription struct {
	Zones       []Zone
	Assignments []Assignment
	Policies    []Policy
	Logs        []Log
	HashLinks   []HashLink
	StateDeltas []StateDelta
	Policy      DomainPolicy
}

// SurfaceDescInit returns a zeroed description with default cost tiers.
func SurfaceDescInit() SurfaceDescription {
	return SurfaceDescription{Policy: DefaultDomainPolicy()}
}
