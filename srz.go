// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package srz provides a clean, single-import interface to the SRZ
// verification core: the deterministic engine that verifies a
// simulation step's execution logs against their hash-chained evidence
// and state deltas, zone by zone, region by region (spec.md §1).
//
// The core has no wire protocol, no CLI of its own and performs no I/O
// (spec.md §6); this package is the embedding surface a host engine
// calls into once per simulation step.
package srz

import (
	"github.com/luxfi/log"

	"github.com/luxfi/srz/internal/budget"
	"github.com/luxfi/srz/internal/capsule"
	"github.com/luxfi/srz/internal/domain"
	"github.com/luxfi/srz/internal/entity"
	"github.com/luxfi/srz/internal/query"
	"github.com/luxfi/srz/internal/resolve"
)

// Type aliases for a clean single-import experience.
type (
	Domain             = domain.Domain
	SurfaceDescription = entity.SurfaceDescription
	DomainPolicy       = entity.DomainPolicy

	Zone         = entity.Zone
	Assignment   = entity.Assignment
	Policy       = entity.Policy
	Log          = entity.Log
	HashLink     = entity.HashLink
	StateDelta   = entity.StateDelta
	MacroCapsule = entity.MacroCapsule
	Threshold    = entity.Threshold

	Mode               = entity.Mode
	VerificationPolicy = entity.VerificationPolicy
	RefusalReason      = entity.RefusalReason
	Resolution         = entity.Resolution
	Confidence         = entity.Confidence
	ExistenceState     = entity.ExistenceState
	ArchivalState      = entity.ArchivalState
	Flags              = entity.Flags

	Budget = budget.Budget

	ZoneSample       = query.Sample[entity.Zone]
	AssignmentSample = query.Sample[entity.Assignment]
	PolicySample     = query.Sample[entity.Policy]
	LogSample        = query.Sample[entity.Log]
	HashLinkSample   = query.Sample[entity.HashLink]
	StateDeltaSample = query.Sample[entity.StateDelta]
	RegionSample     = query.RegionSample
	QueryMetadata    = query.Metadata
	QueryStatus      = query.Status

	ResolveResult = resolve.Result
	CapsuleStatus = capsule.Status
)

// Zone modes.
const (
	ModeServer    = entity.ModeServer
	ModeDelegated = entity.ModeDelegated
	ModeDormant   = entity.ModeDormant
)

// Verification policies.
const (
	VPUnset         = entity.VPUnset
	VPStrict        = entity.VPStrict
	VPSpot          = entity.VPSpot
	VPInvariantOnly = entity.VPInvariantOnly
)

// Refusal reasons (spec.md §7).
const (
	RefusalNone              = entity.RefusalNone
	RefusalBudget            = entity.RefusalBudget
	RefusalDomainInactive    = entity.RefusalDomainInactive
	RefusalNoSource          = entity.RefusalNoSource
	RefusalZoneMissing       = entity.RefusalZoneMissing
	RefusalAssignmentMissing = entity.RefusalAssignmentMissing
	RefusalPolicyMissing     = entity.RefusalPolicyMissing
	RefusalLogMissing        = entity.RefusalLogMissing
	RefusalHashMissing       = entity.RefusalHashMissing
	RefusalDeltaMissing      = entity.RefusalDeltaMissing
	RefusalEpistemic         = entity.RefusalEpistemic
	RefusalProofInvalid      = entity.RefusalProofInvalid
	RefusalPolicyLevel       = entity.RefusalPolicyLevel
	RefusalInternal          = entity.RefusalInternal
)

// Existence / archival lifecycle states.
const (
	ExistenceNonexistent = entity.ExistenceNonexistent
	ExistenceDeclared    = entity.ExistenceDeclared
	ExistenceRealized     = entity.ExistenceRealized

	ArchivalLive     = entity.ArchivalLive
	ArchivalArchived = entity.ArchivalArchived
)

// Flag bits shared across entities and results (spec.md §9).
const (
	FlagVerified             = entity.FlagVerified
	FlagFailed               = entity.FlagFailed
	FlagEpistemicMismatch    = entity.FlagEpistemicMismatch
	FlagCollapsed            = entity.FlagCollapsed
	FlagUnresolved           = entity.FlagUnresolved
	FlagEscalated            = entity.FlagEscalated
	FlagDeescalated          = entity.FlagDeescalated
	FlagStrictApplied        = entity.FlagStrictApplied
	FlagSpotApplied          = entity.FlagSpotApplied
	FlagInvariantOnlyApplied = entity.FlagInvariantOnlyApplied
	FlagEpistemicRefused     = entity.FlagEpistemicRefused
	FlagVerificationFailed   = entity.FlagVerificationFailed
	FlagResolvePartial       = entity.FlagResolvePartial
)

// Query/Collapse/Expand status outcomes.
const (
	StatusOK       = query.StatusOK
	StatusRefused  = query.StatusRefused
	CapsuleOK       = capsule.StatusOK
	CapsuleRefused  = capsule.StatusRefused
)

// MetricFailureRate is the only escalation/de-escalation metric
// evaluated by Resolve in this version (spec.md §9).
const MetricFailureRate = entity.MetricFailureRate

// SurfaceDescInit returns a zeroed description with default cost tiers
// (spec.md §6).
func SurfaceDescInit() SurfaceDescription {
	return entity.SurfaceDescInit()
}

// NewBudget returns a Budget capped at max units.
func NewBudget(max uint64) *Budget {
	return budget.New(max)
}

// DomainInit allocates a domain, populates its entity tables from desc
// and marks it Realized/Live. A nil logger is replaced by a no-op
// logger.
func DomainInit(desc SurfaceDescription, logger log.Logger) *Domain {
	d := domain.New(logger)
	d.Init(desc)
	return d
}

// DomainFree empties a domain's tables and resets its lifecycle state.
func DomainFree(d *Domain) {
	d.Free()
}

// DomainSetState replaces a domain's existence/archival fields.
func DomainSetState(d *Domain, existence ExistenceState, archival ArchivalState) {
	d.SetState(existence, archival)
}

// DomainSetPolicy replaces a domain's cost table.
func DomainSetPolicy(d *Domain, p DomainPolicy) {
	d.SetPolicy(p)
}

// ZoneQuery is the single-entity query contract (C5) for zones.
func ZoneQuery(d *Domain, id uint64, b *Budget) ZoneSample {
	return query.Zone(d, id, b)
}

// AssignmentQuery is the single-entity query contract (C5) for
// assignments.
func AssignmentQuery(d *Domain, id uint64, b *Budget) AssignmentSample {
	return query.Assignment(d, id, b)
}

// PolicyQuery is the single-entity query contract (C5) for policies.
func PolicyQuery(d *Domain, id uint64, b *Budget) PolicySample {
	return query.Policy(d, id, b)
}

// LogQuery is the single-entity query contract (C5) for logs.
func LogQuery(d *Domain, id uint64, b *Budget) LogSample {
	return query.Log(d, id, b)
}

// HashLinkQuery is the single-entity query contract (C5) for hash
// links.
func HashLinkQuery(d *Domain, id uint64, b *Budget) HashLinkSample {
	return query.HashLink(d, id, b)
}

// StateDeltaQuery is the single-entity query contract (C5) for state
// deltas.
func StateDeltaQuery(d *Domain, id uint64, b *Budget) StateDeltaSample {
	return query.StateDelta(d, id, b)
}

// RegionQuery is the region aggregator (C6). regionID == 0 means "all
// regions".
func RegionQuery(d *Domain, regionID uint64, b *Budget) RegionSample {
	return query.Region(d, regionID, b)
}

// Resolve runs one step's verification sweep over region's logs (C8).
// tick and tickDelta are reserved for time-scoped policies and do not
// affect behavior in this version.
func Resolve(d *Domain, regionID uint64, tick uint64, tickDelta int64, b *Budget) ResolveResult {
	return resolve.Resolve(d, regionID, tick, tickDelta, b)
}

// CollapseRegion folds a region into a macro capsule (C9).
func CollapseRegion(d *Domain, regionID uint64) CapsuleStatus {
	return capsule.Collapse(d, regionID)
}

// ExpandRegion reverses Collapse, restoring full-fidelity querying (C9).
func ExpandRegion(d *Domain, regionID uint64) CapsuleStatus {
	return capsule.Expand(d, regionID)
}

// CapsuleCount returns the number of live capsules.
func CapsuleCount(d *Domain) int {
	return capsule.Count(d)
}

// CapsuleAt returns the capsule at index, or nil if out of range.
func CapsuleAt(d *Domain, index int) *MacroCapsule {
	return capsule.At(d, index)
}
