package world

import "github.com/vovakirdan/tui-rpg/internal/core"

// AttackKind tells a victim which damage formula of the source applies.
type AttackKind uint8

const (
	AttackWeapon AttackKind = iota
	AttackMagic
)

func (k AttackKind) String() string {
	if k == AttackMagic {
		return "magic"
	}
	return "weapon"
}

// Target is what enemies perceive and chase.
type Target interface {
	Center() core.Vec2
	Stealthy() bool
}

// DamageSource is the attacker behind a hitbox.
type DamageSource interface {
	WeaponDamage() float64
	MagicDamage() float64
	Center() core.Vec2
	StunsOnHit() bool
}

// EnemyHost is the world as seen by an enemy.
type EnemyHost interface {
	DamagePlayer(amount float64, kind string)
	AddExp(amount float64)
	CreateExplosion(pos core.Vec2, radius, damage float64)
	EnemiesNear(pos core.Vec2, radius float64) []*Enemy
	RemoveEnemy(e *Enemy)
}

// PlayerHost is the world as seen by the player.
type PlayerHost interface {
	CreateAttack()
	DestroyAttack()
	CreateMagic(style string, strength, cost float64)
}

var (
	_ EnemyHost    = (*Level)(nil)
	_ PlayerHost   = (*Level)(nil)
	_ Target       = (*Player)(nil)
	_ DamageSource = (*Player)(nil)
)
