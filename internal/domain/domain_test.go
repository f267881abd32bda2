// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/srz/internal/entity"
)

func TestNewDomainIsInactive(t *testing.T) {
	require := require.New(t)

	d := New(nil)
	require.False(d.IsActive())
	require.Equal(entity.ExistenceNonexistent, d.Existence)
}

func TestInitMakesDomainActive(t *testing.T) {
	require := require.New(t)

	d := New(nil)
	d.Init(entity.SurfaceDescription{Zones: []entity.Zone{{SRZID: 1}}})
	require.True(d.IsActive())
	require.Equal(entity.ExistenceRealized, d.Existence)
	require.Equal(entity.ArchivalLive, d.Archival)
	require.Len(d.Tables.Zones, 1)
}

func TestFreeResetsToNonexistent(t *testing.T) {
	require := require.New(t)

	d := New(nil)
	d.Init(entity.SurfaceDescription{Zones: []entity.Zone{{SRZID: 1}}})
	d.Free()
	require.False(d.IsActive())
	require.Empty(d.Tables.Zones)
}

func TestSetStateDeclaredIsInactive(t *testing.T) {
	require := require.New(t)

	d := New(nil)
	d.Init(entity.SurfaceDescription{})
	d.SetState(entity.ExistenceDeclared, entity.ArchivalLive)
	require.False(d.IsActive())
}

func TestSetPolicyReplacesCostTable(t *testing.T) {
	require := require.New(t)

	d := New(nil)
	d.SetPolicy(entity.DomainPolicy{CostFull: 99})
	require.Equal(uint64(99), d.Policy.CostFull)
}

func TestMetricsDefaultsToNoOpAndIsSafe(t *testing.T) {
	require := require.New(t)

	d := New(nil)
	require.Nil(d.Metrics)
	require.NotPanics(func() { d.Metrics.ObserveQuery(true) })
}
