package world

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/nav"
)

const enemyFrames = 4

// EnemyOptions configures a new enemy.
type EnemyOptions struct {
	Kind      string
	Stats     config.MonsterStats
	Timing    config.EnemyConfig
	Mods      config.EnemyModifiers
	Origin    core.Point // pixel top-left of the spawn cell
	TileSize  int
	Obstacles *ObstacleSet
	Grid      *nav.Grid
	Clock     *core.Clock
	Host      EnemyHost
	Effects   Effects
}

// Enemy is a monster driven by a distance-based state machine.
type Enemy struct {
	Entity

	Kind   string
	Origin core.Point
	Health float64
	Status EnemyStatus

	stats  config.MonsterStats
	timing config.EnemyConfig
	mods   config.EnemyModifiers
	tile   int
	grid   *nav.Grid
	clock  *core.Clock
	host   EnemyHost
	fx     Effects

	path     []nav.Cell
	pathWin  core.Window
	goal     nav.Cell
	hasGoal  bool
	attack   core.Window
	hurt     core.Window
	stun     core.Window
	recoil   core.Vec2
	lastSeen core.Vec2
	seen     bool
	dead     bool
}

// NewEnemy spawns an enemy whose display rect covers the origin tile.
func NewEnemy(opts EnemyOptions) *Enemy {
	size := opts.TileSize
	if size <= 0 {
		size = 64
	}
	clock := opts.Clock
	if clock == nil {
		clock = &core.Clock{}
	}
	rect := core.NewRect(opts.Origin.X, opts.Origin.Y, size, size)
	return &Enemy{
		Entity: newEntity(rect, 0, -10, opts.Obstacles),
		Kind:   opts.Kind,
		Origin: opts.Origin,
		Health: opts.Stats.Health,
		stats:  opts.Stats,
		timing: opts.Timing,
		mods:   opts.Mods.Normalized(),
		tile:   size,
		grid:   opts.Grid,
		clock:  clock,
		host:   opts.Host,
		fx:     orNop(opts.Effects),
	}
}

// Stats returns the monster's template stats.
func (e *Enemy) Stats() config.MonsterStats { return e.stats }

// Path returns the remaining waypoints.
func (e *Enemy) Path() []nav.Cell { return e.path }

// Dead reports whether death handling has run.
func (e *Enemy) Dead() bool { return e.dead }

// Stunned reports whether a stun window is active.
func (e *Enemy) Stunned() bool { return e.stun.IsOpen() }

// Vulnerable reports whether the enemy can take damage.
func (e *Enemy) Vulnerable() bool { return !e.hurt.IsOpen() }

// SetModifiers replaces the enemy's modifier set.
func (e *Enemy) SetModifiers(m config.EnemyModifiers) { e.mods = m.Normalized() }

// Distance returns the distance and unit direction toward the target. A
// stealthy target outside the attack radius is reported at infinite
// distance with no direction.
func (e *Enemy) Distance(t Target) (float64, core.Vec2) {
	delta := t.Center().Sub(e.Center())
	dist := delta.Len()
	if t.Stealthy() && dist > e.stats.AttackRadius {
		return math.Inf(1), core.Vec2{}
	}
	return dist, delta.Normalize()
}

// Update runs one frame: status, action, knockback, movement, cooldowns,
// regeneration and the death check.
func (e *Enemy) Update(t Target, dt float64) {
	if e.dead {
		return
	}
	e.updateStatus(t)
	e.act(t)
	e.lastSeen, e.seen = t.Center(), true

	speed := e.stats.Speed * e.mods.Speed
	if e.hurt.IsOpen() && !e.stun.IsOpen() {
		e.Direction = e.recoil
		speed *= e.stats.Resistance
		if e.mods.Knockback {
			speed *= 2
		}
	}
	e.Move(speed, dt)

	e.animate(dt, enemyFrames)
	e.cooldowns()
	e.regenerate(dt)
	e.CheckDeath()
}

func (e *Enemy) updateStatus(t Target) {
	prev := e.Status
	switch {
	case e.stun.IsOpen():
		e.Status = EnemyIdle
	default:
		dist, _ := e.Distance(t)
		switch {
		case dist <= e.stats.AttackRadius && !e.mods.Pacifist:
			if prev != EnemyAttack {
				e.FrameIndex = 0
			}
			e.Status = EnemyAttack
		case dist <= e.stats.NoticeRadius*e.mods.Aggro:
			e.Status = EnemyMove
		default:
			e.Status = EnemyIdle
		}
	}
	if e.Status != EnemyMove || e.mods.Fear {
		e.path = nil
	}
}

func (e *Enemy) act(t Target) {
	if e.stun.IsOpen() {
		e.Direction = core.Vec2{}
		return
	}
	now := e.clock.Now()

	switch e.Status {
	case EnemyAttack:
		e.Direction = core.Vec2{}
		if e.attack.Active(now, e.timing.AttackCooldown) {
			return
		}
		e.attack.Open(now)
		if e.host != nil {
			e.host.DamagePlayer(e.stats.Damage*e.mods.DamageDealt, e.stats.AttackType)
		}
		if e.stats.AttackSound != "" {
			e.fx.PlaySound(e.stats.AttackSound)
		}
	case EnemyMove:
		switch {
		case e.mods.Flee || e.mods.Fear:
			_, dir := e.Distance(t)
			e.Direction = dir.Scale(-1)
		case e.mods.Swarm:
			e.Direction = e.swarmDirection(t)
		default:
			e.Direction = e.pathDirection(t)
		}
	default:
		e.Direction = core.Vec2{}
	}
}

func (e *Enemy) swarmDirection(t Target) core.Vec2 {
	var (
		sum core.Vec2
		n   int
	)
	if e.host != nil {
		for _, o := range e.host.EnemiesNear(e.Center(), e.timing.SwarmRadius) {
			if o == e || o.dead || o.Kind != e.Kind {
				continue
			}
			sum = sum.Add(o.Center())
			n++
		}
	}
	if n == 0 {
		_, dir := e.Distance(t)
		return dir
	}
	return sum.Scale(1 / float64(n)).Sub(e.Center()).Normalize()
}

func (e *Enemy) pathDirection(t Target) core.Vec2 {
	now := e.clock.Now()
	goal := nav.PixelToGrid(t.Center(), e.tile)

	stale := len(e.path) == 0 ||
		!e.pathWin.Active(now, e.timing.PathRecalc) ||
		!e.hasGoal || goal != e.goal
	if stale && e.grid != nil {
		start := nav.PixelToGrid(e.Center(), e.tile)
		e.goal, e.hasGoal = goal, true
		route := nav.AStar(e.grid, start, goal)
		if len(route) > 1 {
			e.path = route[1:]
		} else {
			e.path = nil
		}
		e.pathWin.Open(now)
	}

	if len(e.path) == 0 {
		_, dir := e.Distance(t)
		return dir
	}
	toNext := nav.GridToPixelCenter(e.path[0], e.tile).Sub(e.Center())
	if toNext.Len() < e.timing.ArrivalTolerance {
		e.path = e.path[1:]
	}
	return toNext.Normalize()
}

// ApplyDamage takes a hit from src. It does nothing while the enemy is
// invulnerable.
func (e *Enemy) ApplyDamage(src DamageSource, kind AttackKind) {
	if e.dead || e.hurt.IsOpen() {
		return
	}
	now := e.clock.Now()
	e.fx.PlaySound(CueHit)

	dmg := src.WeaponDamage()
	if kind == AttackMagic {
		dmg = src.MagicDamage()
	}
	e.Health = math.Max(0, e.Health-dmg*e.mods.DamageTaken)
	e.recoil = e.Center().Sub(src.Center()).Normalize()
	e.hurt.Open(now)

	if src.StunsOnHit() || e.mods.StunAll {
		e.stun.Open(now)
	}
}

// TakeSplash applies area damage that ignores invulnerability.
func (e *Enemy) TakeSplash(amount float64) {
	if e.dead {
		return
	}
	e.Health = math.Max(0, e.Health-amount)
}

// CheckDeath runs death handling once health has reached zero. It reports
// whether the enemy died on this call; later calls are no-ops.
func (e *Enemy) CheckDeath() bool {
	if e.dead || e.Health > 0 {
		return false
	}
	e.dead = true
	center := e.Center()

	if e.host != nil {
		e.host.RemoveEnemy(e)
	}
	e.fx.DeathParticles(center, e.Kind)
	if e.host != nil {
		e.host.AddExp(e.stats.Exp * e.mods.XPBoost)
	}
	if e.seen {
		e.fx.ExpParticles(center, e.lastSeen, e.stats.Exp)
	}
	e.fx.PlaySound(CueDeath)
	if e.mods.Explode && e.host != nil {
		e.host.CreateExplosion(center, e.timing.ExplosionRadius, e.timing.ExplosionDamage)
	}
	return true
}

func (e *Enemy) cooldowns() {
	now := e.clock.Now()
	if e.attack.Expired(now, e.timing.AttackCooldown) {
		e.attack.Close()
	}
	if e.hurt.Expired(now, scaleDuration(e.timing.Invulnerability, e.mods.StunScale)) {
		e.hurt.Close()
	}
	if e.stun.Expired(now, e.timing.Stun) {
		e.stun.Close()
	}
}

func (e *Enemy) regenerate(dt float64) {
	if !e.mods.Regenerate || e.Health <= 0 {
		return
	}
	e.Health = math.Min(e.Health+e.timing.RegenRate*dt, e.stats.Health)
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
