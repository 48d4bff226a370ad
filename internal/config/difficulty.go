package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Preset scales the enemy modifier set. Zero fields leave the value alone.
type Preset struct {
	Aggro       float64 `yaml:"aggro"`
	DamageDealt float64 `yaml:"damage_dealt"`
	DamageTaken float64 `yaml:"damage_taken"`
	XPBoost     float64 `yaml:"xp_boost"`
}

// defaultPresets is used for any preset the YAML does not define.
var defaultPresets = map[DifficultyPreset]Preset{
	DifficultyEasy:   {Aggro: 0.75, DamageDealt: 0.5, DamageTaken: 1.25, XPBoost: 1},
	DifficultyNormal: {Aggro: 1, DamageDealt: 1, DamageTaken: 1, XPBoost: 1},
	DifficultyHard:   {Aggro: 1.5, DamageDealt: 1.5, DamageTaken: 0.75, XPBoost: 1.5},
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyPreset multiplies the preset into the enemy modifiers.
func (c *GameConfig) ApplyPreset(preset DifficultyPreset) {
	p, ok := c.Presets[preset]
	if !ok {
		p, ok = defaultPresets[preset]
		if !ok {
			return
		}
	}

	m := c.Modifiers.Normalized()
	scale := func(dst *float64, by float64) {
		if by != 0 {
			*dst *= by
		}
	}
	scale(&m.Enemy.Aggro, p.Aggro)
	scale(&m.Enemy.DamageDealt, p.DamageDealt)
	scale(&m.Enemy.DamageTaken, p.DamageTaken)
	scale(&m.Enemy.XPBoost, p.XPBoost)
	c.Modifiers = m
}
