// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "github.com/luxfi/srz/internal/entity"

// DefaultPolicy is a sensible starting cost table: single-entity queries
// cost more than the analytic region/resolve sweep.
var DefaultPolicy = entity.DomainPolicy{
	CostFull:     10,
	CostAnalytic: 1,
	CostMedium:   5,
	CostCoarse:   2,
}

// StrictPolicy widens the gap between full and analytic queries, for
// deployments that want single-entity lookups to be comparatively rare.
var StrictPolicy = entity.DomainPolicy{
	CostFull:     25,
	CostAnalytic: 1,
	CostMedium:   10,
	CostCoarse:   3,
}

// PermissivePolicy flattens costs for test and simulation harnesses
// that want a much larger effective budget.
var PermissivePolicy = entity.DomainPolicy{
	CostFull:     2,
	CostAnalytic: 1,
	CostMedium:   1,
	CostCoarse:   1,
}

// PresetNames returns the names accepted by FromPreset.
func PresetNames() []string {
	return []string{"default", "strict", "permissive"}
}

func presetByName(name string) (entity.DomainPolicy, bool) {
	switch name {
	case "default":
		return DefaultPolicy, true
	case "strict":
		return StrictPolicy, true
	case "permissive":
		return PermissivePolicy, true
	default:
		return entity.DomainPolicy{}, false
	}
}
