// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package telemetry wraps github.com/luxfi/metrics counters so callers
// can observe how often Resolve and the single-entity/region queries
// run and how often their budgets are exhausted. Nothing in here sits
// on the resolve hot path — the core itself performs no I/O and never
// touches anything outside the domain instance it was handed.
package telemetry

import "github.com/luxfi/metrics"

// Recorder counts query and resolve outcomes for one domain instance.
type Recorder struct {
	metrics        metrics.Metrics
	queries        metrics.Counter
	refusals       metrics.Counter
	resolves       metrics.Counter
	resolvePartial metrics.Counter
}

// NewRecorder returns a Recorder registered under the given namespace.
func NewRecorder(namespace string) *Recorder {
	m := metrics.New(namespace)
	return &Recorder{
		metrics:        m,
		queries:        m.NewCounter("srz_queries_total", "Counter: srz_queries_total"),
		refusals:       m.NewCounter("srz_refusals_total", "Counter: srz_refusals_total"),
		resolves:       m.NewCounter("srz_resolves_total", "Counter: srz_resolves_total"),
		resolvePartial: m.NewCounter("srz_resolve_partial_total", "Counter: srz_resolve_partial_total"),
	}
}

// NewNoOpRecorder returns a Recorder that records nothing, for callers
// that don't want the luxfi/metrics dependency wired up (e.g. tests).
func NewNoOpRecorder() *Recorder {
	return nil
}

// ObserveQuery records one single-entity or region query, noting whether
// it was refused.
func (r *Recorder) ObserveQuery(refused bool) {
	if r == nil {
		return
	}
	r.queries.Inc()
	if refused {
		r.refusals.Inc()
	}
}

// ObserveResolve records one Resolve call and whether it ended partial.
func (r *Recorder) ObserveResolve(partial bool) {
	if r == nil {
		return
	}
	r.resolves.Inc()
	if partial {
		r.resolvePartial.Inc()
	}
}
