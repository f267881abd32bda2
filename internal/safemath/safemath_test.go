// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package safemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd64(t *testing.T) {
	require := require.New(t)

	sum, err := Add64(2, 3)
	require.NoError(err)
	require.Equal(uint64(5), sum)
}

func TestAdd64Overflow(t *testing.T) {
	require := require.New(t)

	_, err := Add64(math.MaxUint64, 1)
	require.ErrorIs(err, ErrOverflow)
}

func TestSub64(t *testing.T) {
	require := require.New(t)

	diff, err := Sub64(5, 3)
	require.NoError(err)
	require.Equal(uint64(2), diff)
}

func TestSub64Underflow(t *testing.T) {
	require := require.New(t)

	_, err := Sub64(3, 5)
	require.ErrorIs(err, ErrUnderflow)
}

func TestAddSigned64(t *testing.T) {
	require := require.New(t)

	sum, err := AddSigned64(-5, 3)
	require.NoError(err)
	require.Equal(int64(-2), sum)
}

func TestAddSigned64OverflowPositive(t *testing.T) {
	require := require.New(t)

	_, err := AddSigned64(math.MaxInt64, 1)
	require.ErrorIs(err, ErrOverflow)
}

func TestAddSigned64OverflowNegative(t *testing.T) {
	require := require.New(t)

	_, err := AddSigned64(math.MinInt64, -1)
	require.ErrorIs(err, ErrOverflow)
}
