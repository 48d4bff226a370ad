// Package config provides YAML-based game configuration: stat tables,
// actor timings, the modifier snapshot and difficulty presets.
package config

import "time"

// GameConfig is the full, read-only configuration injected into the world.
type GameConfig struct {
	TileSize    int                         `yaml:"tile_size"`
	StartMap    string                      `yaml:"start_map"`
	Monsters    map[string]MonsterStats     `yaml:"monsters"`
	Weapons     []WeaponStats               `yaml:"weapons"`
	Magic       []MagicStats                `yaml:"magic"`
	Player      PlayerConfig                `yaml:"player"`
	Enemy       EnemyConfig                 `yaml:"enemy"`
	Entities    EntityCodes                 `yaml:"entities"`
	Transitions map[int]TransitionTarget    `yaml:"transitions"`
	Modifiers   Modifiers                   `yaml:"modifiers"`
	Presets     map[DifficultyPreset]Preset `yaml:"presets"`
}

// MonsterStats is the template for one monster kind.
type MonsterStats struct {
	Health       float64 `yaml:"health"`
	Exp          float64 `yaml:"exp"`
	Damage       float64 `yaml:"damage"`
	AttackType   string  `yaml:"attack_type"`
	AttackSound  string  `yaml:"attack_sound"`
	Speed        float64 `yaml:"speed"`
	Resistance   float64 `yaml:"resistance"`
	AttackRadius float64 `yaml:"attack_radius"`
	NoticeRadius float64 `yaml:"notice_radius"`
}

// WeaponStats describes one weapon. Reach and Width size the swing hitbox.
type WeaponStats struct {
	Name     string        `yaml:"name"`
	Cooldown time.Duration `yaml:"cooldown"`
	Damage   float64       `yaml:"damage"`
	Reach    int           `yaml:"reach"`
	Width    int           `yaml:"width"`
}

// MagicStats describes one spell.
type MagicStats struct {
	Name     string  `yaml:"name"`
	Strength float64 `yaml:"strength"`
	Cost     float64 `yaml:"cost"`
}

// StatBlock holds one value per player stat.
type StatBlock struct {
	Health float64 `yaml:"health"`
	Energy float64 `yaml:"energy"`
	Attack float64 `yaml:"attack"`
	Magic  float64 `yaml:"magic"`
	Speed  float64 `yaml:"speed"`
}

// PlayerConfig holds the player's stat tables and timings.
type PlayerConfig struct {
	Stats           StatBlock     `yaml:"stats"`
	MaxStats        StatBlock     `yaml:"max_stats"`
	UpgradeCost     StatBlock     `yaml:"upgrade_cost"`
	AttackCooldown  time.Duration `yaml:"attack_cooldown"`
	SwitchCooldown  time.Duration `yaml:"switch_cooldown"`
	Invulnerability time.Duration `yaml:"invulnerability"`
	Berserk         time.Duration `yaml:"berserk"`
	SpeedBurst      time.Duration `yaml:"speed_burst"`
	Dodge           time.Duration `yaml:"dodge"`
	UpgradeFactor   float64       `yaml:"upgrade_factor"`
	CostFactor      float64       `yaml:"cost_factor"`
}

// EnemyConfig holds timings and constants shared by all monster kinds.
type EnemyConfig struct {
	AttackCooldown   time.Duration `yaml:"attack_cooldown"`
	Invulnerability  time.Duration `yaml:"invulnerability"`
	PathRecalc       time.Duration `yaml:"path_recalc"`
	Stun             time.Duration `yaml:"stun"`
	ArrivalTolerance float64       `yaml:"arrival_tolerance"`
	SwarmRadius      float64       `yaml:"swarm_radius"`
	ExplosionRadius  float64       `yaml:"explosion_radius"`
	ExplosionDamage  float64       `yaml:"explosion_damage"`
	RegenRate        float64       `yaml:"regen_rate"`
}

// EntityCodes maps entity-layer cell codes to what spawns there.
type EntityCodes struct {
	Player         int            `yaml:"player"`
	Monsters       map[int]string `yaml:"monsters"`
	DefaultMonster string         `yaml:"default_monster"`
}

// TransitionTarget is where an entity-layer transition code leads.
// Spawn is in tile coordinates.
type TransitionTarget struct {
	Map   string `yaml:"map"`
	Spawn [2]int `yaml:"spawn"`
}

// Modifiers is the tunable snapshot applied to the world once per frame.
type Modifiers struct {
	Player PlayerModifiers `yaml:"player"`
	Enemy  EnemyModifiers  `yaml:"enemy"`
	Magic  MagicModifiers  `yaml:"magic"`
	World  WorldModifiers  `yaml:"world"`
}

// PlayerModifiers alter the player's damage, speed and resource formulas.
// GodMode implies Invulnerable, InfiniteHealth and OneHitKO.
type PlayerModifiers struct {
	SpeedBoost      bool    `yaml:"speed_boost"`
	FastAttack      bool    `yaml:"fast_attack"`
	NoCooldown      bool    `yaml:"no_cooldown"`
	DoubleDamage    bool    `yaml:"double_damage"`
	Rage            bool    `yaml:"rage"`
	CritChance      float64 `yaml:"crit_chance"`
	UnlimitedEnergy bool    `yaml:"unlimited_energy"`
	EnergyBoost     bool    `yaml:"energy_boost"`
	Invulnerable    bool    `yaml:"invulnerable"`
	InfiniteHealth  bool    `yaml:"infinite_health"`
	Stealth         bool    `yaml:"stealth"`
	WallDash        bool    `yaml:"wall_dash"`
	LifeSteal       bool    `yaml:"life_steal"`
	HealOnHit       bool    `yaml:"heal_on_hit"`
	ManaOnHit       bool    `yaml:"mana_on_hit"`
	MaxStats        bool    `yaml:"max_stats"`
	StunAttack      bool    `yaml:"stun_attack"`
	Dodge           bool    `yaml:"dodge"`
	Berserk         bool    `yaml:"berserk"`
	SpeedBurst      bool    `yaml:"speed_burst"`
	OneHitKO        bool    `yaml:"one_hit_ko"`
	GodMode         bool    `yaml:"god_mode"`
}

// EnemyModifiers alter every enemy's perception, speed, damage and
// reactions. Zero multipliers mean 1.
type EnemyModifiers struct {
	Aggro       float64 `yaml:"aggro"`
	Speed       float64 `yaml:"speed"`
	DamageDealt float64 `yaml:"damage_dealt"`
	DamageTaken float64 `yaml:"damage_taken"`
	XPBoost     float64 `yaml:"xp_boost"`
	StunScale   float64 `yaml:"stun_scale"`
	Pacifist    bool    `yaml:"pacifist"`
	Flee        bool    `yaml:"flee"`
	Fear        bool    `yaml:"fear"`
	Swarm       bool    `yaml:"swarm"`
	Regenerate  bool    `yaml:"regenerate"`
	Knockback   bool    `yaml:"knockback"`
	Explode     bool    `yaml:"explode"`
	StunAll     bool    `yaml:"stun_all"`
}

// MagicModifiers alter spell cost, power and reach. Zero multipliers mean 1.
type MagicModifiers struct {
	ManaCostScale float64 `yaml:"mana_cost_scale"`
	SpellPower    float64 `yaml:"spell_power"`
	AreaOfEffect  float64 `yaml:"area_of_effect"`
	InstantCast   bool    `yaml:"instant_cast"`
	InfiniteMana  bool    `yaml:"infinite_mana"`
}

// WorldModifiers affect the level as a whole.
type WorldModifiers struct {
	TimeStop bool `yaml:"time_stop"`
}

// Normalized returns the modifiers with zero multipliers replaced by 1, so
// formulas can multiply blindly.
func (m Modifiers) Normalized() Modifiers {
	m.Player = m.Player.Normalized()
	if m.Player.GodMode {
		m.Magic.InfiniteMana = true
	}
	m.Enemy = m.Enemy.Normalized()
	m.Magic = m.Magic.Normalized()
	return m
}

// Normalized expands GodMode into the flags it implies.
func (m PlayerModifiers) Normalized() PlayerModifiers {
	if m.GodMode {
		m.Invulnerable = true
		m.InfiniteHealth = true
		m.OneHitKO = true
	}
	return m
}

// Normalized replaces zero multipliers with 1.
func (m EnemyModifiers) Normalized() EnemyModifiers {
	one(&m.Aggro)
	one(&m.Speed)
	one(&m.DamageDealt)
	one(&m.DamageTaken)
	one(&m.XPBoost)
	one(&m.StunScale)
	return m
}

// Normalized replaces zero multipliers with 1.
func (m MagicModifiers) Normalized() MagicModifiers {
	one(&m.ManaCostScale)
	one(&m.SpellPower)
	one(&m.AreaOfEffect)
	return m
}

func one(v *float64) {
	if *v == 0 {
		*v = 1
	}
}
