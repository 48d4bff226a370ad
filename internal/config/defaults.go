package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/rpg.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}

// FallbackMonster is used when a monster kind has no table entry.
var FallbackMonster = MonsterStats{
	Health:       100,
	Exp:          50,
	Damage:       10,
	AttackType:   "slash",
	Speed:        100,
	Resistance:   1,
	AttackRadius: 50,
	NoticeRadius: 200,
}

// DefaultGameConfig returns the hardcoded configuration, used when the
// embedded YAML cannot be parsed and to fill fields a user file leaves out.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		TileSize: 64,
		StartMap: "default",
		Monsters: map[string]MonsterStats{
			"squid": {
				Health: 100, Exp: 100, Damage: 20, AttackType: "slash", AttackSound: "slash",
				Speed: 180, Resistance: 3, AttackRadius: 80, NoticeRadius: 360,
			},
			"raccoon": {
				Health: 300, Exp: 250, Damage: 40, AttackType: "claw", AttackSound: "claw",
				Speed: 120, Resistance: 3, AttackRadius: 120, NoticeRadius: 400,
			},
			"spirit": {
				Health: 100, Exp: 110, Damage: 8, AttackType: "thunder", AttackSound: "fireball",
				Speed: 240, Resistance: 3, AttackRadius: 60, NoticeRadius: 350,
			},
			"bamboo": {
				Health: 70, Exp: 120, Damage: 6, AttackType: "leaf_attack", AttackSound: "slash",
				Speed: 180, Resistance: 3, AttackRadius: 50, NoticeRadius: 300,
			},
		},
		Weapons: []WeaponStats{
			{Name: "sword", Cooldown: 100 * time.Millisecond, Damage: 15, Reach: 40, Width: 24},
			{Name: "lance", Cooldown: 400 * time.Millisecond, Damage: 30, Reach: 64, Width: 16},
			{Name: "axe", Cooldown: 300 * time.Millisecond, Damage: 20, Reach: 36, Width: 32},
			{Name: "rapier", Cooldown: 50 * time.Millisecond, Damage: 8, Reach: 48, Width: 12},
			{Name: "sai", Cooldown: 80 * time.Millisecond, Damage: 10, Reach: 28, Width: 20},
		},
		Magic: []MagicStats{
			{Name: "flame", Strength: 5, Cost: 20},
			{Name: "heal", Strength: 20, Cost: 10},
		},
		Player: PlayerConfig{
			Stats:           StatBlock{Health: 100, Energy: 60, Attack: 10, Magic: 3, Speed: 300},
			MaxStats:        StatBlock{Health: 300, Energy: 140, Attack: 20, Magic: 10, Speed: 720},
			UpgradeCost:     StatBlock{Health: 100, Energy: 100, Attack: 100, Magic: 100, Speed: 100},
			AttackCooldown:  400 * time.Millisecond,
			SwitchCooldown:  200 * time.Millisecond,
			Invulnerability: 500 * time.Millisecond,
			Berserk:         5 * time.Second,
			SpeedBurst:      2 * time.Second,
			Dodge:           time.Second,
			UpgradeFactor:   1.2,
			CostFactor:      1.4,
		},
		Enemy: EnemyConfig{
			AttackCooldown:   400 * time.Millisecond,
			Invulnerability:  300 * time.Millisecond,
			PathRecalc:       500 * time.Millisecond,
			Stun:             time.Second,
			ArrivalTolerance: 4,
			SwarmRadius:      200,
			ExplosionRadius:  100,
			ExplosionDamage:  20,
			RegenRate:        5,
		},
		Entities: EntityCodes{
			Player:         394,
			Monsters:       map[int]string{390: "bamboo", 391: "spirit", 392: "raccoon"},
			DefaultMonster: "squid",
		},
		Transitions: map[int]TransitionTarget{
			9000: {Map: "test", Spawn: [2]int{4, 4}},
			9001: {Map: "default", Spawn: [2]int{27, 6}},
			9002: {Map: "island", Spawn: [2]int{4, 4}},
			9003: {Map: "test", Spawn: [2]int{8, 5}},
		},
		Modifiers: Modifiers{}.Normalized(),
		Presets:   map[DifficultyPreset]Preset{},
	}
}
