// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command srzcli is the companion tool described as an external
// collaborator in spec.md §6: it parses a line-oriented key=value text
// fixture beginning with DOMINIUM_SRZ_FIXTURE_V1, drives the SRZ core
// over it, and prints the outcome under one of four headers.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"

	"github.com/luxfi/srz"
	srzlog "github.com/luxfi/srz/log"
)

var logger = srzlog.NewNoOpLogger()

func main() {
	mode := flag.String("mode", "validate", "validate | inspect | resolve | collapse")
	fixturePath := flag.String("fixture", "", "path to a DOMINIUM_SRZ_FIXTURE_V1 text file (defaults to stdin)")
	region := flag.Uint64("region", 0, "region id for resolve/collapse/inspect (0 = all regions for resolve/inspect; collapse refuses 0)")
	budget := flag.Uint64("budget", 10000, "units available for this run")
	flag.Parse()

	in := os.Stdin
	if *fixturePath != "" {
		f, err := os.Open(*fixturePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "srzcli:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	desc, err := parseFixture(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "srzcli:", err)
		os.Exit(1)
	}

	d := srz.DomainInit(desc, logger)
	b := srz.NewBudget(*budget)

	switch *mode {
	case "validate":
		runValidate(d, b)
	case "inspect":
		runInspect(d, *region, b)
	case "resolve":
		runResolve(d, *region, b)
	case "collapse":
		runCollapse(d, *region)
	default:
		fmt.Fprintln(os.Stderr, "srzcli: unknown mode", *mode)
		os.Exit(1)
	}
}

// runValidate drives one Resolve over the whole domain and reports
// whether every region came back clean.
func runValidate(d *srz.Domain, b *srz.Budget) {
	res := srz.Resolve(d, 0, 0, 0, b)
	fmt.Println("DOMINIUM_SRZ_VALIDATE_V1")
	fmt.Printf("ok=%v\n", res.OK)
	fmt.Printf("refusal=%d\n", res.RefusalReason)
	fmt.Printf("logs=%d verified=%d failed=%d\n", res.LogCount, res.VerificationOkCount, res.VerificationFailCount)
	fmt.Printf("flags=%#x\n", uint32(res.Flags))
}

// runInspect reports the region aggregate (C6) without mutating
// anything.
func runInspect(d *srz.Domain, region uint64, b *srz.Budget) {
	rs := srz.RegionQuery(d, region, b)
	fmt.Println("DOMINIUM_SRZ_INSPECT_V1")
	fmt.Printf("region=%d status=%d refusal=%d\n", rs.RegionID, rs.Meta.Status, rs.Meta.RefusalReason)
	fmt.Printf("zones=%d assignments=%d policies=%d logs=%d hashlinks=%d deltas=%d\n",
		rs.ZoneCount, rs.AssignmentCount, rs.PolicyCount, rs.LogCount, rs.HashLinkCount, rs.StateDeltaCount)
	fmt.Printf("server=%d delegated=%d dormant=%d\n", rs.ModeServerCount, rs.ModeDelegatedCount, rs.ModeDormantCount)
	fmt.Printf("failureRate=%d\n", rs.FailureRate)
}

// runResolve drives Resolve over one region and reports the full
// result (C8).
func runResolve(d *srz.Domain, region uint64, b *srz.Budget) {
	res := srz.Resolve(d, region, 0, 0, b)
	fmt.Println("DOMINIUM_SRZ_RESOLVE_V1")
	fmt.Printf("region=%d ok=%v refusal=%d flags=%#x\n", region, res.OK, res.RefusalReason, uint32(res.Flags))
	fmt.Printf("verified=%d failed=%d failureRate=%d\n", res.VerificationOkCount, res.VerificationFailCount, res.FailureRate)
	fmt.Printf("usedUnits=%d maxUnits=%d\n", b.UsedUnits, b.MaxUnits)
}

// runCollapse folds a region into a capsule and reports the status
// (C9).
func runCollapse(d *srz.Domain, region uint64) {
	status := srz.CollapseRegion(d, region)
	fmt.Println("DOMINIUM_SRZ_COLLAPSE_V1")
	fmt.Printf("region=%d status=%d capsules=%d\n", region, status, srz.CapsuleCount(d))
}

// fnvHash32 derives a numeric id from a string fixture token. The core
// is string-agnostic (spec.md §6); only the CLI needs this.
func fnvHash32(s string) uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return uint64(h.Sum32())
}

// idOf parses a fixture field as a uint64 id, treating any value that
// doesn't parse as a decimal integer as a string token to be hashed.
func idOf(s string) uint64 {
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v
	}
	return fnvHash32(s)
}

// parseFixture reads a DOMINIUM_SRZ_FIXTURE_V1 document: one directive
// per line, "kind key=value key=value ..." after the header line.
// Unknown kinds and unknown keys are ignored, matching the format's
// forward-compatible design.
func parseFixture(f *os.File) (srz.SurfaceDescription, error) {
	desc := srz.SurfaceDescInit()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	sawHeader := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		fields := splitFields(line)
		if len(fields) == 0 {
			continue
		}
		if !sawHeader {
			if fields[0] != "DOMINIUM_SRZ_FIXTURE_V1" {
				return desc, fmt.Errorf("expected DOMINIUM_SRZ_FIXTURE_V1 header, got %q", fields[0])
			}
			sawHeader = true
			continue
		}

		kv := toMap(fields[1:])
		switch fields[0] {
		case "zone":
			desc.Zones = append(desc.Zones, parseZone(kv))
		case "assignment":
			desc.Assignments = append(desc.Assignments, parseAssignment(kv))
		case "policy":
			desc.Policies = append(desc.Policies, parsePolicy(kv))
		case "log":
			desc.Logs = append(desc.Logs, parseLog(kv))
		case "hashlink":
			desc.HashLinks = append(desc.HashLinks, parseHashLink(kv))
		case "delta":
			desc.StateDeltas = append(desc.StateDeltas, parseStateDelta(kv))
		}
	}
	if err := scanner.Err(); err != nil {
		return desc, err
	}
	if !sawHeader {
		return desc, fmt.Errorf("empty fixture: missing DOMINIUM_SRZ_FIXTURE_V1 header")
	}
	return desc, nil
}

func splitFields(line string) []string {
	var fields []string
	start := -1
	for i, r := range line {
		if r == ' ' || r == '\t' {
			if start >= 0 {
				fields = append(fields, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, line[start:])
	}
	return fields
}

func toMap(fields []string) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		for i := 0; i < len(f); i++ {
			if f[i] == '=' {
				m[f[:i]] = f[i+1:]
				break
			}
		}
	}
	return m
}

func parseZone(kv map[string]string) srz.Zone {
	return srz.Zone{
		SRZID:              idOf(kv["id"]),
		Mode:               srz.Mode(idOf(kv["mode"])),
		VerificationPolicy: srz.VerificationPolicy(idOf(kv["policy"])),
		EpistemicScopeID:   idOf(kv["scope"]),
		PolicyID:           idOf(kv["policy_id"]),
		ProvenanceID:       idOf(kv["provenance"]),
		RegionID:           idOf(kv["region"]),
	}
}

func parseAssignment(kv map[string]string) srz.Assignment {
	return srz.Assignment{
		AssignmentID:   idOf(kv["id"]),
		SRZID:          idOf(kv["zone"]),
		ExecutorID:     idOf(kv["executor"]),
		AuthorityToken: idOf(kv["token"]),
		StartTick:      idOf(kv["start"]),
		ExpiryTick:     idOf(kv["expiry"]),
		RegionID:       idOf(kv["region"]),
	}
}

func parsePolicy(kv map[string]string) srz.Policy {
	return srz.Policy{
		PolicyID:             idOf(kv["id"]),
		VerificationPolicy:   srz.VerificationPolicy(idOf(kv["kind"])),
		StrictReplayInterval: idOf(kv["replay_interval"]),
		MaxSegmentTicks:      idOf(kv["max_segment"]),
		RegionID:             idOf(kv["region"]),
	}
}

func parseLog(kv map[string]string) srz.Log {
	return srz.Log{
		LogID:            idOf(kv["id"]),
		SRZID:            idOf(kv["zone"]),
		AssignmentID:     idOf(kv["assignment"]),
		PolicyID:         idOf(kv["policy"]),
		ChainID:          idOf(kv["chain"]),
		DeltaID:          idOf(kv["delta"]),
		StartTick:        idOf(kv["start"]),
		EndTick:          idOf(kv["end"]),
		ProcessCount:     idOf(kv["processes"]),
		RNGStreamCount:   idOf(kv["rng_streams"]),
		EpistemicScopeID: idOf(kv["scope"]),
		RegionID:         idOf(kv["region"]),
	}
}

func parseHashLink(kv map[string]string) srz.HashLink {
	return srz.HashLink{
		LinkID:         idOf(kv["id"]),
		ChainID:        idOf(kv["chain"]),
		SegmentIndex:   uint32(idOf(kv["segment"])),
		PrevHash:       idOf(kv["prev"]),
		Hash:           idOf(kv["hash"]),
		StartTick:      idOf(kv["start"]),
		EndTick:        idOf(kv["end"]),
		ProcessCount:   idOf(kv["processes"]),
		RNGStreamCount: idOf(kv["rng_streams"]),
		RegionID:       idOf(kv["region"]),
	}
}

func parseStateDelta(kv map[string]string) srz.StateDelta {
	return srz.StateDelta{
		DeltaID:        idOf(kv["id"]),
		ProcessCount:   idOf(kv["processes"]),
		RNGStreamCount: idOf(kv["rng_streams"]),
		InvariantsOk:   kv["invariants_ok"] == "true" || kv["invariants_ok"] == "1",
		RegionID:       idOf(kv["region"]),
	}
}
