// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fixedpoint implements the Q16.16 fixed-point ratio arithmetic
// used on the SRZ resolve hot path. No float appears anywhere here.
package fixedpoint

// Ratio is a Q16.16 signed fixed-point value. RatioOne represents 1.0.
type Ratio int32

// RatioOne is the fixed-point representation of 1.0.
const RatioOne Ratio = 0x10000

// HistBins is the number of buckets in a failure-rate histogram.
const HistBins = 4

// FromCounts returns num/den as a Q16.16 ratio. Zero denominator yields 0,
// matching the "no data yet" case rather than a division fault.
func FromCounts(num, den int64) Ratio {
	if den <= 0 {
		return 0
	}
	return Ratio((num << 16) / den)
}

// Clamp restricts v to [0, RatioOne].
func Clamp(v Ratio) Ratio {
	if v < 0 {
		return 0
	}
	if v > RatioOne {
		return RatioOne
	}
	return v
}

// Bin maps a ratio into [0, HistBins-1] as (Clamp(v) * (HistBins-1)) >> 16:
// bins 0..HistBins-2 split [0, RatioOne) evenly, and only RatioOne itself
// lands in the last bin.
func Bin(v Ratio) int {
	c := Clamp(v)
	bin := (int64(c) * (HistBins - 1)) >> 16
	if bin >= HistBins {
		bin = HistBins - 1
	}
	return int(bin)
}

// BinRatio returns count/total as a Q16.16 ratio, using the same integer
// shift as FromCounts so histogram bins and their ratios never disagree.
func BinRatio(count, total int64) Ratio {
	return FromCounts(count, total)
}
