// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package budget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsumeWithinCap(t *testing.T) {
	require := require.New(t)

	b := New(10)
	require.True(b.Consume(4))
	require.Equal(uint64(4), b.UsedUnits)
	require.True(b.Consume(6))
	require.Equal(uint64(10), b.UsedUnits)
}

func TestConsumeRefusesOverCap(t *testing.T) {
	require := require.New(t)

	b := New(5)
	require.True(b.Consume(5))
	require.False(b.Consume(1))
	require.Equal(uint64(5), b.UsedUnits, "a refused consume must not mutate UsedUnits")
}

func TestConsumeFloorsZeroCost(t *testing.T) {
	require := require.New(t)

	b := New(3)
	require.True(b.Consume(0))
	require.Equal(uint64(1), b.UsedUnits)
}

func TestMonotonicity(t *testing.T) {
	require := require.New(t)

	b := New(100)
	prev := uint64(0)
	for i := 0; i < 20; i++ {
		b.Consume(3)
		require.GreaterOrEqual(b.UsedUnits, prev)
		prev = b.UsedUnits
	}
	require.LessOrEqual(b.UsedUnits, b.MaxUnits)
}

func TestExhausted(t *testing.T) {
	require := require.New(t)

	b := New(2)
	require.False(b.Exhausted())
	b.Consume(2)
	require.True(b.Exhausted())
}
