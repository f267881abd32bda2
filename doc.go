// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.

/*
Package srz implements the deterministic Simulation Responsibility Zone
(SRZ) verification core: the fixed-point, order-deterministic engine
that verifies one simulation step's execution logs against their
hash-chained evidence and state deltas, zone by zone, region by region.

# Overview

For one simulation step the core takes the catalog of zones, authority
assignments, verification policies, execution logs, hash-chained log
segments and state deltas, and produces a single deterministic verdict
per region: which logs verified, which failed, which were refused for
want of evidence or budget, and whether a region should be escalated to
stronger verification or de-escalated back to cheaper scrutiny. A
related operation, Collapse, condenses a region's fine-grained state
into a single macro capsule summary; Expand reverses the fold.

# Architecture

The package is organized as:

  - internal/fixedpoint   Q16.16 ratio math and histogram binning
  - internal/safemath     overflow-checked integer arithmetic
  - internal/budget       per-call unit accounting
  - internal/entity       the zone/assignment/policy/log/link/delta/
                           capsule data model and its bounded tables
  - internal/domain       domain lifecycle (Init/Free/SetState/SetPolicy)
  - internal/query        single-entity query (C5) and region aggregator (C6)
  - internal/chainverify  strict/spot/invariant-only chain verification (C7)
  - internal/resolve      the per-region, per-log resolve pipeline (C8)
  - internal/capsule      Collapse/Expand and the capsule table (C9/C10)
  - internal/telemetry    luxfi/metrics counters around queries and resolve
  - log                   the default no-op luxfi/log.Logger
  - cmd/srzcli            the line-oriented fixture CLI described as an
                           external collaborator

The core itself performs no I/O, spawns no goroutines and holds no
locks: every entry point runs to completion in the caller's execution
context, touching only the Domain instance it was handed. Two
independently-initialized clones of the same SurfaceDescription produce
byte-for-byte identical Resolve results given the same Budget.

# Usage

	desc := srz.SurfaceDescInit()
	desc.Zones = append(desc.Zones, srz.Zone{SRZID: 1, Mode: srz.ModeServer})
	desc.Logs = append(desc.Logs, srz.Log{LogID: 1, SRZID: 1})

	d := srz.DomainInit(desc, nil)
	b := srz.NewBudget(1000)
	result := srz.Resolve(d, 0, 0, 0, b)

# License

Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
See LICENSE for details.
*/
package srz
