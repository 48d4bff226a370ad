package world

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
)

// Stat names a player stat.
type Stat string

const (
	StatHealth Stat = "health"
	StatEnergy Stat = "energy"
	StatAttack Stat = "attack"
	StatMagic  Stat = "magic"
	StatSpeed  Stat = "speed"
)

// StatOrder is the display and upgrade-menu order.
var StatOrder = []Stat{StatHealth, StatEnergy, StatAttack, StatMagic, StatSpeed}

const (
	playerFrames = 4
	onHitRestore = 5
	lifeSteal    = 10
)

func statMap(b config.StatBlock) map[Stat]float64 {
	return map[Stat]float64{
		StatHealth: b.Health,
		StatEnergy: b.Energy,
		StatAttack: b.Attack,
		StatMagic:  b.Magic,
		StatSpeed:  b.Speed,
	}
}

// PlayerOptions configures a new player.
type PlayerOptions struct {
	Config    *config.GameConfig
	Origin    core.Point // pixel top-left of the spawn cell
	Obstacles *ObstacleSet
	Clock     *core.Clock
	Host      PlayerHost
	Effects   Effects
	Rand      *rand.Rand
}

// Player is the controllable actor.
type Player struct {
	Entity

	Status      Status
	Health      float64
	Energy      float64
	Exp         float64
	Stats       map[Stat]float64
	MaxStats    map[Stat]float64
	UpgradeCost map[Stat]float64
	WeaponIndex int
	MagicIndex  int

	cfg   *config.GameConfig
	mods  config.PlayerModifiers
	clock *core.Clock
	host  PlayerHost
	fx    Effects
	rng   *rand.Rand

	attacking    bool
	attack       core.Window
	weaponSwitch core.Window
	magicSwitch  core.Window
	hurt         core.Window
	dodge        core.Window
	berserk      core.Window
	burst        core.Window
}

// NewPlayer creates a player with base stats from the configuration.
func NewPlayer(opts PlayerOptions) *Player {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultGameConfig()
		cfg = &def
	}
	size := cfg.TileSize
	if size <= 0 {
		size = 64
	}
	clock := opts.Clock
	if clock == nil {
		clock = &core.Clock{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	rect := core.NewRect(opts.Origin.X, opts.Origin.Y, size, size)
	p := &Player{
		Entity:      newEntity(rect, -6, -26, opts.Obstacles),
		Status:      Status{Facing: FacingDown, Activity: ActivityMove},
		Stats:       statMap(cfg.Player.Stats),
		MaxStats:    statMap(cfg.Player.MaxStats),
		UpgradeCost: statMap(cfg.Player.UpgradeCost),
		cfg:         cfg,
		clock:       clock,
		host:        opts.Host,
		fx:          orNop(opts.Effects),
		rng:         rng,
	}
	p.Health = p.Stats[StatHealth]
	p.Energy = p.Stats[StatEnergy]
	return p
}

// Rebind attaches the player to a new level's obstacles and host.
func (p *Player) Rebind(obstacles *ObstacleSet, host PlayerHost) {
	p.obstacles = obstacles
	p.host = host
	p.attacking = false
	p.attack.Close()
}

// SetModifiers replaces the player's modifier set.
func (p *Player) SetModifiers(m config.PlayerModifiers) {
	p.mods = m.Normalized()
	p.ghost = m.WallDash
}

// Weapon returns the equipped weapon.
func (p *Player) Weapon() config.WeaponStats { return p.cfg.Weapon(p.WeaponIndex) }

// Spell returns the selected spell.
func (p *Player) Spell() config.MagicStats { return p.cfg.Spell(p.MagicIndex) }

// Attacking reports whether an attack or cast is in progress.
func (p *Player) Attacking() bool { return p.attacking }

// Stealthy implements Target.
func (p *Player) Stealthy() bool { return p.mods.Stealth }

// StunsOnHit implements DamageSource.
func (p *Player) StunsOnHit() bool { return p.mods.StunAttack }

// Vulnerable reports whether enemy attacks can land.
func (p *Player) Vulnerable() bool {
	if p.mods.Invulnerable || p.mods.InfiniteHealth {
		return false
	}
	now := p.clock.Now()
	if p.mods.Dodge && p.dodge.Active(now, p.cfg.Player.Dodge) {
		return false
	}
	return !p.hurt.IsOpen()
}

// Update runs one frame: input, cooldowns, status, animation, speed,
// movement and energy recovery.
func (p *Player) Update(in core.InputFrame, dt float64) {
	p.applyPassives()

	p.input(in)
	p.cooldowns()
	p.Status = p.Status.next(!p.Direction.IsZero(), p.attacking)
	p.animate(dt, playerFrames)
	p.Move(p.speed(), dt)
	p.recoverEnergy(dt)
}

func (p *Player) applyPassives() {
	if p.mods.MaxStats {
		for _, s := range StatOrder {
			p.Stats[s] = p.MaxStats[s]
		}
		p.Health = p.Stats[StatHealth]
		p.Energy = p.Stats[StatEnergy]
	}
	if p.mods.InfiniteHealth || p.mods.Invulnerable {
		p.Health = p.Stats[StatHealth]
	}
	if p.attacking {
		if p.mods.HealOnHit {
			p.Heal(onHitRestore)
		}
		if p.mods.ManaOnHit {
			p.Energy = math.Min(p.Energy+onHitRestore, p.Stats[StatEnergy])
		}
	}
}

func (p *Player) input(in core.InputFrame) {
	if p.attacking {
		return
	}
	now := p.clock.Now()

	p.Direction = core.V(axisInput(in, core.ActionRight, core.ActionLeft), axisInput(in, core.ActionDown, core.ActionUp))
	switch {
	case p.Direction.Y < 0:
		p.Status = Status{Facing: FacingUp}
	case p.Direction.Y > 0:
		p.Status = Status{Facing: FacingDown}
	case p.Direction.X > 0:
		p.Status = Status{Facing: FacingRight}
	case p.Direction.X < 0:
		p.Status = Status{Facing: FacingLeft}
	}

	if in.Has(core.ActionAttack) {
		p.attacking = true
		p.attack.Open(now)
		if p.host != nil {
			p.host.CreateAttack()
		}
		p.fx.PlaySound(CueSword)
		p.Direction = core.Vec2{}
	}
	if in.Has(core.ActionCast) {
		p.attacking = true
		p.attack.Open(now)
		spell := p.Spell()
		if p.host != nil {
			p.host.CreateMagic(spell.Name, spell.Strength+p.Stats[StatMagic], spell.Cost)
		}
		p.Direction = core.Vec2{}
	}
	if in.Has(core.ActionNextWeapon) && !p.weaponSwitch.IsOpen() {
		p.weaponSwitch.Open(now)
		if n := len(p.cfg.Weapons); n > 0 {
			p.WeaponIndex = (p.WeaponIndex + 1) % n
		}
	}
	if in.Has(core.ActionNextMagic) && !p.magicSwitch.IsOpen() {
		p.magicSwitch.Open(now)
		if n := len(p.cfg.Magic); n > 0 {
			p.MagicIndex = (p.MagicIndex + 1) % n
		}
	}
	if in.Has(core.ActionDodge) && p.mods.Dodge {
		p.dodge.Open(now)
	}
	if in.Has(core.ActionBerserk) && p.mods.Berserk {
		p.berserk.Open(now)
	}
	if in.Has(core.ActionSpeedBurst) && p.mods.SpeedBurst {
		p.burst.Open(now)
	}
}

func axisInput(in core.InputFrame, pos, neg core.Action) float64 {
	v := 0.0
	if in.Has(pos) {
		v++
	}
	if in.Has(neg) {
		v--
	}
	return v
}

// AttackDuration is how long an attack or cast locks the player.
func (p *Player) AttackDuration() time.Duration {
	base := p.cfg.Player.AttackCooldown
	switch {
	case p.mods.NoCooldown:
		base = 0
	case p.mods.FastAttack:
		base /= 2
	}
	return base + p.Weapon().Cooldown
}

func (p *Player) cooldowns() {
	now := p.clock.Now()
	if p.attacking && p.attack.Expired(now, p.AttackDuration()) {
		p.attacking = false
		p.attack.Close()
		if p.host != nil {
			p.host.DestroyAttack()
		}
	}
	if p.weaponSwitch.Expired(now, p.cfg.Player.SwitchCooldown) {
		p.weaponSwitch.Close()
	}
	if p.magicSwitch.Expired(now, p.cfg.Player.SwitchCooldown) {
		p.magicSwitch.Close()
	}
	if p.hurt.Expired(now, p.cfg.Player.Invulnerability) {
		p.hurt.Close()
	}
}

func (p *Player) berserking(now time.Duration) bool {
	return p.mods.Berserk && p.berserk.Active(now, p.cfg.Player.Berserk)
}

// speed composes the active speed multipliers.
func (p *Player) speed() float64 {
	now := p.clock.Now()
	speed := p.Stats[StatSpeed]
	if p.mods.SpeedBoost {
		speed *= 2
	}
	if p.mods.SpeedBurst && p.burst.Active(now, p.cfg.Player.SpeedBurst) {
		speed *= 1.5
	}
	if p.mods.Dodge && p.dodge.Active(now, p.cfg.Player.Dodge) {
		speed *= 1.5
	}
	if p.berserking(now) {
		speed *= 2
	}
	return speed
}

func (p *Player) recoverEnergy(dt float64) {
	rate := p.Stats[StatMagic]
	if p.mods.EnergyBoost {
		rate *= 2
	}
	limit := p.Stats[StatEnergy]
	if p.Energy < limit {
		p.Energy += rate * dt
	}
	if p.Energy > limit {
		p.Energy = limit
	}
}

// EnergyCost spends c energy if enough is available. With unlimited energy
// it always succeeds and spends nothing.
func (p *Player) EnergyCost(c float64) bool {
	if p.mods.UnlimitedEnergy {
		return true
	}
	if p.Energy >= c {
		p.Energy -= c
		return true
	}
	return false
}

// WeaponDamage is stat attack plus weapon damage, amplified.
func (p *Player) WeaponDamage() float64 {
	return p.amplify(p.Stats[StatAttack] + p.Weapon().Damage)
}

// MagicDamage is stat magic plus spell strength, amplified.
func (p *Player) MagicDamage() float64 {
	return p.amplify(p.Stats[StatMagic] + p.Spell().Strength)
}

// amplify applies rage or berserk, then double damage, then the critical
// roll. Each doubles the result.
func (p *Player) amplify(dmg float64) float64 {
	if p.mods.Rage || p.berserking(p.clock.Now()) {
		dmg *= 2
	}
	if p.mods.DoubleDamage {
		dmg *= 2
	}
	if p.mods.CritChance > 0 && p.rng.Float64() < p.mods.CritChance {
		dmg *= 2
	}
	return dmg
}

// Heal restores health up to the health stat.
func (p *Player) Heal(amount float64) {
	p.Health = core.ClampF(p.Health+amount, 0, p.Stats[StatHealth])
}

// TakeDamage removes health, never below zero, and opens the
// invulnerability window.
func (p *Player) TakeDamage(amount float64) {
	p.Health = core.ClampF(p.Health-amount, 0, p.Stats[StatHealth])
	p.hurt.Open(p.clock.Now())
}

// Upgrade buys one step of a stat with experience. It reports whether the
// purchase happened.
func (p *Player) Upgrade(s Stat) bool {
	cost := p.UpgradeCost[s]
	if p.Exp < cost || p.Stats[s] >= p.MaxStats[s] {
		return false
	}
	p.Exp -= cost
	p.Stats[s] = math.Min(p.Stats[s]*p.cfg.Player.UpgradeFactor, p.MaxStats[s])
	p.UpgradeCost[s] = cost * p.cfg.Player.CostFactor
	return true
}

// Revive refills health and clears the hurt window.
func (p *Player) Revive(at core.Vec2) {
	p.Health = p.Stats[StatHealth]
	p.hurt.Close()
	p.attacking = false
	p.attack.Close()
	p.Direction = core.Vec2{}
	p.SetCenter(at)
}
