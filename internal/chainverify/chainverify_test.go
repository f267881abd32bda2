// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chainverify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/srz/internal/entity"
)

func chainTables(links []entity.HashLink) *entity.Tables {
	tbl := entity.NewTables()
	tbl.LoadFrom(entity.SurfaceDescription{HashLinks: links})
	return tbl
}

func TestStrictWalksCompleteChain(t *testing.T) {
	require := require.New(t)

	tbl := chainTables([]entity.HashLink{
		{LinkID: 1, ChainID: 1, PrevHash: 0, Hash: 10, ProcessCount: 2, RNGStreamCount: 1},
		{LinkID: 2, ChainID: 1, PrevHash: 10, Hash: 20, ProcessCount: 3, RNGStreamCount: 1},
		{LinkID: 3, ChainID: 1, PrevHash: 20, Hash: 30, ProcessCount: 1, RNGStreamCount: 0},
	})
	totals, ok := Strict(tbl, 1)
	require.True(ok)
	require.Equal(uint64(6), totals.ProcessCount)
	require.Equal(uint64(2), totals.RNGStreamCount)
}

func TestStrictFailsOnBrokenLink(t *testing.T) {
	require := require.New(t)

	tbl := chainTables([]entity.HashLink{
		{LinkID: 1, ChainID: 1, PrevHash: 0, Hash: 10},
		{LinkID: 2, ChainID: 1, PrevHash: 999, Hash: 20},
	})
	_, ok := Strict(tbl, 1)
	require.False(ok)
}

func TestStrictFailsOnMultipleRoots(t *testing.T) {
	require := require.New(t)

	tbl := chainTables([]entity.HashLink{
		{LinkID: 1, ChainID: 1, PrevHash: 0, Hash: 10},
		{LinkID: 2, ChainID: 1, PrevHash: 0, Hash: 20},
	})
	_, ok := Strict(tbl, 1)
	require.False(ok)
}

func TestStrictFailsOnEmptyChain(t *testing.T) {
	require := require.New(t)

	tbl := chainTables(nil)
	_, ok := Strict(tbl, 1)
	require.False(ok)
}

func TestSpotRequiresRootAndNonZeroTip(t *testing.T) {
	require := require.New(t)

	tbl := chainTables([]entity.HashLink{
		{LinkID: 1, ChainID: 1, PrevHash: 0, Hash: 10, SegmentIndex: 0, ProcessCount: 2},
		{LinkID: 2, ChainID: 1, PrevHash: 10, Hash: 20, SegmentIndex: 1, ProcessCount: 3},
	})
	totals, ok := Spot(tbl, 1)
	require.True(ok)
	require.Equal(uint64(5), totals.ProcessCount)
}

func TestSpotFailsOnZeroHashTip(t *testing.T) {
	require := require.New(t)

	tbl := chainTables([]entity.HashLink{
		{LinkID: 1, ChainID: 1, PrevHash: 0, Hash: 10, SegmentIndex: 0},
		{LinkID: 2, ChainID: 1, PrevHash: 10, Hash: 0, SegmentIndex: 1},
	})
	_, ok := Spot(tbl, 1)
	require.False(ok)
}

func TestInvariantOnlyRequiresMatchingCounts(t *testing.T) {
	require := require.New(t)

	delta := &entity.StateDelta{DeltaID: 1, ProcessCount: 5, RNGStreamCount: 2, InvariantsOk: true}
	_, ok := InvariantOnly(delta, 5, 2)
	require.True(ok)

	_, ok = InvariantOnly(delta, 5, 3)
	require.False(ok)
}

func TestInvariantOnlyFailsWhenFlagFalse(t *testing.T) {
	require := require.New(t)

	delta := &entity.StateDelta{DeltaID: 1, ProcessCount: 5, RNGStreamCount: 2, InvariantsOk: false}
	_, ok := InvariantOnly(delta, 5, 2)
	require.False(ok)
}

func TestInvariantOnlyNilDelta(t *testing.T) {
	require := require.New(t)

	_, ok := InvariantOnly(nil, 0, 0)
	require.False(ok)
}
