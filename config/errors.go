// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidCostFull     = errors.New("cost_full must be >= 1")
	ErrInvalidCostAnalytic = errors.New("cost_analytic must be >= 1")
	ErrCostAnalyticTooHigh = errors.New("cost_analytic must be <= cost_full")
	ErrUnknownPreset       = errors.New("unknown preset")
)
