package world

import (
	"sync"

	"github.com/cory-johannsen/dungeon/internal/config"
)

// Rules holds the tunable constants of the model.
type Rules struct {
	// MaxSlipperyFraction caps the share of slippery-floored squares in a dungeon.
	MaxSlipperyFraction float64
	// MergeWeight biases the temperature blend of MergeWith; in [0.1, 0.4].
	MergeWeight float64
	// HotRockThreshold is the temperature from which a solid square is hot.
	HotRockThreshold int

	HeatDamageMin      int
	HeatDamageInterval int
	ColdDamageMax      int
	ColdDamageInterval int
	RustDamageMin      int
	RustDamageInterval int

	// SharedBorderEdits allows SetBorder on a slot mirrored by a neighbour.
	SharedBorderEdits bool
}

var defaultRules = sync.OnceValue(func() Rules {
	return RulesFromConfig(config.Default().World)
})

// DefaultRules returns the rules matching config.Default().
func DefaultRules() Rules {
	return defaultRules()
}

// RulesFromConfig converts the world section of the configuration.
//
// Precondition: c passed config.Config.Validate.
func RulesFromConfig(c config.WorldConfig) Rules {
	return Rules{
		MaxSlipperyFraction: c.MaxSlipperyFraction,
		MergeWeight:         c.MergeWeight,
		HotRockThreshold:    c.HotRockThreshold,
		HeatDamageMin:       c.HeatDamageMin,
		HeatDamageInterval:  c.HeatDamageInterval,
		ColdDamageMax:       c.ColdDamageMax,
		ColdDamageInterval:  c.ColdDamageInterval,
		RustDamageMin:       c.RustDamageMin,
		RustDamageInterval:  c.RustDamageInterval,
		SharedBorderEdits:   c.SharedBorderEdits,
	}
}
