// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package domain implements the SRZ domain lifecycle (spec.md §4.4): the
// container that owns one simulated world's entity tables and capsules.
package domain

import (
	luxlog "github.com/luxfi/log"

	srzlog "github.com/luxfi/srz/log"

	"github.com/luxfi/srz/internal/entity"
	"github.com/luxfi/srz/internal/telemetry"
)

// Domain is the container of one world's zones, assignments, policies,
// logs, chains, deltas and capsules (spec.md GLOSSARY).
type Domain struct {
	Tables           *entity.Tables
	Policy           entity.DomainPolicy
	Existence        entity.ExistenceState
	Archival         entity.ArchivalState
	AuthoringVersion uint32

	log     luxlog.Logger
	Metrics *telemetry.Recorder
}

// New returns an empty, Nonexistent domain. Init must be called before
// any query is meaningful. The domain starts with a no-op metrics
// recorder; callers that want luxfi/metrics counters call
// SetMetricsNamespace.
func New(logger luxlog.Logger) *Domain {
	if logger == nil {
		logger = srzlog.NewNoOpLogger()
	}
	return &Domain{
		Tables:  entity.NewTables(),
		log:     logger,
		Metrics: telemetry.NewNoOpRecorder(),
	}
}

// SetMetricsNamespace registers a live luxfi/metrics recorder under
// namespace, replacing the default no-op recorder.
func (d *Domain) SetMetricsNamespace(namespace string) {
	d.Metrics = telemetry.NewRecorder(namespace)
}

// Init populates the entity tables from a SurfaceDescription and marks
// the domain Realized/Live (spec.md §4.4). No description field is
// overridden by a default: whatever the description supplies is what
// lands in the tables.
func (d *Domain) Init(desc entity.SurfaceDescription) {
	d.Tables.LoadFrom(desc)
	d.Policy = desc.Policy
	d.Existence = entity.ExistenceRealized
	d.Archival = entity.ArchivalLive
	d.AuthoringVersion = 1
	d.log.Info("domain initialized",
		"zones", len(d.Tables.Zones),
		"logs", len(d.Tables.Logs),
		"hashLinks", len(d.Tables.HashLinks),
	)
}

// Free empties every table and resets lifecycle state to Nonexistent.
func (d *Domain) Free() {
	d.Tables = entity.NewTables()
	d.Policy = entity.DomainPolicy{}
	d.Existence = entity.ExistenceNonexistent
	d.Archival = entity.ArchivalLive
	d.AuthoringVersion = 0
	d.log.Info("domain freed")
}

// SetState replaces the existence/archival lifecycle fields.
func (d *Domain) SetState(existence entity.ExistenceState, archival entity.ArchivalState) {
	d.Existence = existence
	d.Archival = archival
}

// SetPolicy replaces the domain's cost table.
func (d *Domain) SetPolicy(p entity.DomainPolicy) {
	d.Policy = p
}

// IsActive reports false iff the domain is Nonexistent or Declared
// (spec.md §4.4); every query short-circuits on an inactive domain.
func (d *Domain) IsActive() bool {
	return d.Existence != entity.ExistenceNonexistent && d.Existence != entity.ExistenceDeclared
}
