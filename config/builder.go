// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config provides a fluent builder over entity.DomainPolicy and
// entity.SurfaceDescription.
package config

import (
	"fmt"

	"github.com/luxfi/srz/internal/entity"
)

// Builder accumulates a DomainPolicy and a set of zones/assignments/
// policies/logs/links/deltas, deferring validation until Build.
type Builder struct {
	policy entity.DomainPolicy
	desc   entity.SurfaceDescription
	err    error
}

// NewBuilder starts from DefaultPolicy.
func NewBuilder() *Builder {
	return &Builder{policy: DefaultPolicy}
}

// FromPreset replaces the accumulated policy with a named preset.
func (b *Builder) FromPreset(name string) *Builder {
	if b.err != nil {
		return b
	}
	p, ok := presetByName(name)
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrUnknownPreset, name)
		return b
	}
	b.policy = p
	return b
}

// WithCostFull overrides the single-entity query cost.
func (b *Builder) WithCostFull(cost uint64) *Builder {
	if b.err != nil {
		return b
	}
	if cost < 1 {
		b.err = ErrInvalidCostFull
		return b
	}
	b.policy.CostFull = cost
	return b
}

// WithCostAnalytic overrides the region/resolve sweep cost. It must not
// exceed CostFull.
func (b *Builder) WithCostAnalytic(cost uint64) *Builder {
	if b.err != nil {
		return b
	}
	if cost < 1 {
		b.err = ErrInvalidCostAnalytic
		return b
	}
	if cost > b.policy.CostFull {
		b.err = ErrCostAnalyticTooHigh
		return b
	}
	b.policy.CostAnalytic = cost
	return b
}

// WithZones appends zones to the surface description under construction.
func (b *Builder) WithZones(zones ...entity.Zone) *Builder {
	if b.err != nil {
		return b
	}
	b.desc.Zones = append(b.desc.Zones, zones...)
	return b
}

// WithLogs appends logs to the surface description under construction.
func (b *Builder) WithLogs(logs ...entity.Log) *Builder {
	if b.err != nil {
		return b
	}
	b.desc.Logs = append(b.desc.Logs, logs...)
	return b
}

// Build validates and returns the finished SurfaceDescription, or the
// first error recorded during the chain.
func (b *Builder) Build() (entity.SurfaceDescription, error) {
	if b.err != nil {
		return entity.SurfaceDescription{}, b.err
	}
	b.desc.Policy = b.policy
	return b.desc, nil
}
