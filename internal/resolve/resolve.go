// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package resolve implements the per-region, per-log verification sweep
// (C8, spec.md §4.8): the sole operation that writes back into the
// entity tables (log flags, zone escalation bits).
package resolve

import (
	"github.com/luxfi/srz/internal/budget"
	"github.com/luxfi/srz/internal/chainverify"
	"github.com/luxfi/srz/internal/domain"
	"github.com/luxfi/srz/internal/entity"
	"github.com/luxfi/srz/internal/fixedpoint"
)

// Result is the Resolve output (spec.md §6).
type Result struct {
	OK            bool
	RefusalReason entity.RefusalReason
	Flags         entity.Flags

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
	FailureRate           fixedpoint.Ratio
}

func refusedResult(reason entity.RefusalReason) Result {
	return Result{RefusalReason: reason}
}

// Resolve runs one step's verification sweep over region's logs. tick
// and tickDelta are accepted and preserved but do not affect behavior in
// this version (spec.md §4.8, reserved for time-scoped policies).
func Resolve(d *domain.Domain, regionID uint64, tick uint64, tickDelta int64, b *budget.Budget) Result {
	if !d.IsActive() {
		return refusedResult(entity.RefusalDomainInactive)
	}
	if !b.Consume(d.Policy.CostAnalytic) {
		return refusedResult(entity.RefusalBudget)
	}

	if regionID != 0 {
		if cap := d.Tables.FindCapsule(regionID); cap != nil {
			return Result{
				OK:                    true,
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

	var (
		okCount      int
		failCount    int
		processedLog int
		flags        entity.Flags
		refusal      = entity.RefusalNone
		partial      bool
	)

	for _, log := range scan.MatchedLogs {
		if !b.Consume(d.Policy.CostFull) {
			partial = true
			if refusal == entity.RefusalNone {
				refusal = entity.RefusalBudget
			}
			break
		}
		processedLog++
		log.ClearMutableFlags()

		zone := d.Tables.FindZone(log.SRZID)
		if zone == nil {
			log.Flags |= entity.FlagFailed
			flags |= entity.FlagVerificationFailed
			if refusal == entity.RefusalNone {
				refusal = entity.RefusalZoneMissing
			}
			failCount++
			continue
		}

		if zone.EpistemicScopeID != 0 && log.EpistemicScopeID != 0 && zone.EpistemicScopeID != log.EpistemicScopeID {
			log.Flags |= entity.FlagFailed | entity.FlagEpistemicMismatch
			flags |= entity.FlagEpistemicRefused | entity.FlagVerificationFailed
			if refusal == entity.RefusalNone {
				refusal = entity.RefusalEpistemic
			}
			failCount++
			continue
		}

		if zone.Mode == entity.ModeDormant {
			partial = true
			continue
		}

		effectivePolicy := effectiveVerificationPolicy(d.Tables, zone, log)

		verified, totals, appliedFlag := verifyLog(d.Tables, zone, log, effectivePolicy)
		flags |= appliedFlag

		if verified && countsDisagree(log, totals) {
			verified = false
		}

		if verified {
			log.Flags |= entity.FlagVerified
			okCount++
			flags |= entity.FlagVerified
		} else {
			log.Flags |= entity.FlagFailed
			failCount++
			flags |= entity.FlagVerificationFailed
			if refusal == entity.RefusalNone {
				refusal = entity.RefusalProofInvalid
			}
		}
	}

	failureRate := fixedpoint.FromCounts(int64(failCount), int64(okCount)+int64(failCount))
	evaluateThresholds(scan.MatchedZones, failureRate, &flags)

	ok := failCount == 0
	if ok && refusal != entity.RefusalBudget {
		refusal = entity.RefusalNone
	}
	if partial {
		flags |= entity.FlagResolvePartial
	}
	d.Metrics.ObserveResolve(partial)

	return Result{
		OK:                    ok,
		RefusalReason:         refusal,
		Flags:                 flags,
		ZoneCount:             scan.ZoneCount,
		AssignmentCount:       scan.AssignmentCount,
		PolicyCount:           scan.PolicyCount,
		LogCount:              processedLog,
		HashLinkCount:         scan.HashLinkCount,
		StateDeltaCount:       scan.StateDeltaCount,
		ModeServerCount:       scan.ModeServerCount,
		ModeDelegatedCount:    scan.ModeDelegatedCount,
		ModeDormantCount:      scan.ModeDormantCount,
		VerificationOkCount:   okCount,
		VerificationFailCount: failCount,
		FailureRate:           failureRate,
	}
}

// effectiveVerificationPolicy looks up the log's policy_id if nonzero,
// else the zone's policy_id, and uses that policy's verification_policy
// if set, otherwise falls back to the zone's own policy (spec.md §4.8
// step 9).
func effectiveVerificationPolicy(t *entity.Tables, zone *entity.Zone, log *entity.Log) entity.VerificationPolicy {
	policyID := log.PolicyID
	if policyID == 0 {
		policyID = zone.PolicyID
	}
	if policyID != 0 {
		if p := t.FindPolicy(policyID); p != nil && p.VerificationPolicy != entity.VPUnset {
			return p.VerificationPolicy
		}
	}
	return zone.VerificationPolicy
}

// verifyLog routes by zone mode and effective policy (spec.md §4.8
// step 10).
func verifyLog(t *entity.Tables, zone *entity.Zone, log *entity.Log, policy entity.VerificationPolicy) (bool, chainverify.Totals, entity.Flags) {
	switch zone.Mode {
	case entity.ModeServer:
		return true, chainverify.Totals{}, 0
	case entity.ModeDelegated:
		switch policy {
		case entity.VPStrict:
			totals, ok := chainverify.Strict(t, log.ChainID)
			return ok, totals, entity.FlagStrictApplied
		case entity.VPSpot:
			totals, ok := chainverify.Spot(t, log.ChainID)
			return ok, totals, entity.FlagSpotApplied
		case entity.VPInvariantOnly:
			delta := t.FindStateDelta(log.DeltaID)
			totals, ok := chainverify.InvariantOnly(delta, log.ProcessCount, log.RNGStreamCount)
			return ok, totals, entity.FlagInvariantOnlyApplied
		default:
			return false, chainverify.Totals{}, 0
		}
	default:
		return false, chainverify.Totals{}, 0
	}
}

// countsDisagree implements the count-integrity downgrade of spec.md
// §4.8 step 11: a positive verify is downgraded to failure if both the
// log's and the verifier's count are nonzero and disagree.
func countsDisagree(log *entity.Log, totals chainverify.Totals) bool {
	if log.ProcessCount != 0 && totals.ProcessCount != 0 && log.ProcessCount != totals.ProcessCount {
		return true
	}
	if log.RNGStreamCount != 0 && totals.RNGStreamCount != 0 && log.RNGStreamCount != totals.RNGStreamCount {
		return true
	}
	return false
}

// evaluateThresholds implements spec.md §4.8 step 13, supplemented by
// original_source/'s first-match-wins-per-family semantics (SPEC_FULL.md
// "SUPPLEMENTED FEATURES"): escalation and de-escalation are independent
// families, each evaluated in array order and stopping at the first
// matching slot, and a zone may pick up both bits in the same resolve.
func evaluateThresholds(zones []*entity.Zone, failureRate fixedpoint.Ratio, flags *entity.Flags) {
	for _, zone := range zones {
		for i := 0; i < zone.EscalationThresholdCount; i++ {
			th := zone.EscalationThresholds[i]
			if th.MetricID == entity.MetricFailureRate && th.Value <= failureRate {
				zone.Flags |= entity.FlagEscalated
				*flags |= entity.FlagEscalated
				break
			}
		}
		for i := 0; i < zone.DeescalationThresholdCount; i++ {
			th := zone.DeescalationThresholds[i]
			if th.MetricID == entity.MetricFailureRate && th.Value >= failureRate {
				zone.Flags |= entity.FlagDeescalated
				*flags |= entity.FlagDeescalated
				break
			}
		}
	}
}
