// Package world holds the simulation core: tiles and obstacles, the entity
// movement base, enemies, the player and the level that sequences a frame.
package world

import (
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/maps"
	"github.com/vovakirdan/tui-rpg/internal/nav"
	"github.com/vovakirdan/tui-rpg/internal/save"
)

const (
	flameLife  = 500 * time.Millisecond
	flameReach = 6
)

// Transition is a request to leave for another map.
type Transition struct {
	MapID string
	Spawn core.Vec2
}

// LevelOptions configures a new level.
type LevelOptions struct {
	Config  *config.GameConfig
	Layout  *maps.Layout
	Clock   *core.Clock
	Effects Effects
	Logger  *log.Logger
	Rand    *rand.Rand

	// Player carries an existing player across a transition. When nil a new
	// player is created, restored from Saved if present.
	Player *Player
	// Spawn overrides the layout's player spawn, as a center point.
	Spawn *core.Vec2
	// Saved lists spawn tiles to skip and the player to restore.
	Saved *save.State

	OnTransition func(Transition)
}

// Level owns every entity of one map and runs the frame.
type Level struct {
	cfg    *config.GameConfig
	layout *maps.Layout
	clock  *core.Clock
	fx     Effects
	log    *log.Logger
	rng    *rand.Rand
	tile   int

	obstacles *ObstacleSet
	grid      *nav.Grid
	player    *Player
	enemies   []*Enemy
	grass     []*Tile
	attacks   []*Attack
	weapon    *Attack

	transitions    map[nav.Cell]Transition
	lastTransition *nav.Cell
	onTransition   func(Transition)

	defeated  map[core.Point]bool
	destroyed map[core.Point]bool
	warned    map[string]bool

	mods         config.Modifiers
	initialSpawn core.Vec2
	gameOver     bool
	kills        int
}

// NewLevel composes a level from a layout: boundary, grass and object tiles
// become obstacles in that order, then the walk grid is built, then
// entities spawn.
func NewLevel(opts LevelOptions) *Level {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultGameConfig()
		cfg = &def
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = &core.Clock{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	layout := opts.Layout
	if layout == nil {
		layout = maps.NewLayout("empty", nil)
	}

	l := &Level{
		cfg:          cfg,
		layout:       layout,
		clock:        clock,
		fx:           orNop(opts.Effects),
		log:          logger,
		rng:          rng,
		tile:         cfg.TileSize,
		obstacles:    NewObstacleSet(),
		transitions:  make(map[nav.Cell]Transition),
		onTransition: opts.OnTransition,
		defeated:     make(map[core.Point]bool),
		destroyed:    make(map[core.Point]bool),
		warned:       make(map[string]bool),
		mods:         cfg.Modifiers.Normalized(),
	}
	if l.tile <= 0 {
		l.tile = 64
	}
	if opts.Saved != nil {
		l.defeated = save.PointSet(opts.Saved.DefeatedEnemies)
		l.destroyed = save.PointSet(opts.Saved.DestroyedGrass)
	}

	l.buildTiles()
	w, h := l.Size()
	l.grid = nav.BuildGrid(w, h, l.tile, l.obstacles.Rects())
	l.spawnEntities(opts)

	cell := nav.PixelToGrid(l.player.Center(), l.tile)
	if _, ok := l.transitions[cell]; ok {
		l.lastTransition = &cell
	}
	l.ApplyModifiers(cfg.Modifiers)
	return l
}

func (l *Level) buildTiles() {
	l.layout.Each(maps.LayerBoundary, func(x, y, code int) {
		l.obstacles.Add(NewTile(TileInvisible, code, x*l.tile, y*l.tile, l.tile))
	})
	l.layout.Each(maps.LayerGrass, func(x, y, code int) {
		t := NewTile(TileGrass, code, x*l.tile, y*l.tile, l.tile)
		if l.destroyed[t.Origin] {
			return
		}
		l.obstacles.Add(t)
		l.grass = append(l.grass, t)
	})
	l.layout.Each(maps.LayerObjects, func(x, y, code int) {
		l.obstacles.Add(NewTile(TileObject, code, x*l.tile, y*l.tile, l.tile))
	})
}

func (l *Level) spawnEntities(opts LevelOptions) {
	codes := l.cfg.Entities
	l.layout.Each(maps.LayerEntities, func(x, y, code int) {
		origin := core.Point{X: x * l.tile, Y: y * l.tile}

		if target, ok := l.cfg.Transition(code); ok {
			l.transitions[nav.Cell{X: x, Y: y}] = Transition{
				MapID: target.Map,
				Spawn: nav.GridToPixelCenter(nav.Cell{X: target.Spawn[0], Y: target.Spawn[1]}, l.tile),
			}
			return
		}
		if code == codes.Player {
			l.placePlayer(opts, origin)
			return
		}
		if l.defeated[origin] {
			return
		}
		kind := l.cfg.MonsterForCode(code)
		stats, ok := l.cfg.Monster(kind)
		if !ok && !l.warned[kind] {
			l.warned[kind] = true
			l.log.Warn("unknown monster kind, using defaults", "kind", kind, "code", code)
		}
		l.enemies = append(l.enemies, NewEnemy(EnemyOptions{
			Kind:      kind,
			Stats:     stats,
			Timing:    l.cfg.Enemy,
			Mods:      l.mods.Enemy,
			Origin:    origin,
			TileSize:  l.tile,
			Obstacles: l.obstacles,
			Grid:      l.grid,
			Clock:     l.clock,
			Host:      l,
			Effects:   l.fx,
		}))
	})

	if l.player == nil {
		w, h := l.Size()
		center := core.Point{X: w/2 - l.tile/2, Y: h/2 - l.tile/2}
		l.placePlayer(opts, center)
	}
	l.initialSpawn = l.player.Center()
}

// placePlayer creates or adopts the player at the spawn cell. An explicit
// spawn point wins over the layout.
func (l *Level) placePlayer(opts LevelOptions, origin core.Point) {
	if l.player != nil {
		return
	}
	if opts.Player != nil {
		l.player = opts.Player
		l.player.Rebind(l.obstacles, l)
		if opts.Spawn != nil {
			l.player.SetCenter(*opts.Spawn)
		}
		return
	}

	l.player = NewPlayer(PlayerOptions{
		Config:    l.cfg,
		Origin:    origin,
		Obstacles: l.obstacles,
		Clock:     l.clock,
		Host:      l,
		Effects:   l.fx,
		Rand:      l.rng,
	})
	if opts.Saved != nil && opts.Saved.Player.Stats != nil {
		l.player.LoadSave(opts.Saved.Player)
	}
	if opts.Spawn != nil {
		l.player.SetCenter(*opts.Spawn)
	}
}

// ApplyModifiers installs a modifier snapshot on every actor.
func (l *Level) ApplyModifiers(m config.Modifiers) {
	l.mods = m.Normalized()
	l.player.SetModifiers(l.mods.Player)
	for _, e := range l.enemies {
		e.SetModifiers(l.mods.Enemy)
	}
}

// Update runs one frame: player, enemies, attack resolution, expiry of
// spell hitboxes, then the transition check. The frame stops as soon as
// the player dies.
func (l *Level) Update(in core.InputFrame, dt float64) {
	if l.gameOver {
		return
	}
	l.player.Update(in, dt)

	if !l.mods.World.TimeStop {
		for _, e := range slices.Clone(l.enemies) {
			if e.dead {
				continue
			}
			e.Update(l.player, dt)
			if l.gameOver {
				return
			}
		}
	}

	l.resolveAttacks()
	l.expireAttacks()
	l.checkTransition()
}

// resolveAttacks applies every live attack hitbox to grass, then enemies.
func (l *Level) resolveAttacks() {
	for _, a := range slices.Clone(l.attacks) {
		if a.removed {
			continue
		}
		for _, g := range slices.Clone(l.grass) {
			if !g.removed && a.Rect.Intersects(g.Hitbox) {
				l.destroyGrass(g)
			}
		}
		for _, e := range slices.Clone(l.enemies) {
			if e.dead || !a.Rect.Intersects(e.Hitbox) {
				continue
			}
			if l.mods.Player.OneHitKO {
				e.Health = 0
			} else {
				e.ApplyDamage(l.player, a.Kind)
			}
			if e.Health > 0 {
				continue
			}
			if l.mods.Player.LifeSteal {
				l.player.Heal(lifeSteal)
			}
			e.CheckDeath()
		}
	}
}

func (l *Level) destroyGrass(g *Tile) {
	cx, cy := g.Rect.Center()
	pos := core.V(float64(cx), float64(cy-75))
	for n := 3 + l.rng.Intn(4); n > 0; n-- {
		l.fx.GrassParticles(pos)
	}
	l.obstacles.Remove(g)
	l.grass = slices.DeleteFunc(l.grass, func(t *Tile) bool { return t == g })
	l.destroyed[g.Origin] = true
}

func (l *Level) expireAttacks() {
	now := l.clock.Now()
	l.attacks = slices.DeleteFunc(l.attacks, func(a *Attack) bool {
		if a.expired(now) {
			a.removed = true
		}
		return a.removed
	})
}

// checkTransition fires once per entry into a transition cell.
func (l *Level) checkTransition() {
	cell := nav.PixelToGrid(l.player.Center(), l.tile)
	target, ok := l.transitions[cell]
	if !ok {
		l.lastTransition = nil
		return
	}
	if l.lastTransition != nil && *l.lastTransition == cell {
		return
	}
	l.lastTransition = &cell
	l.fx.PlaySound(CuePill)
	l.log.Info("transition", "from", l.layout.ID, "to", target.MapID, "cell", cell)
	if l.onTransition != nil {
		l.onTransition(target)
	}
}

// DamagePlayer implements EnemyHost.
func (l *Level) DamagePlayer(amount float64, kind string) {
	if !l.player.Vulnerable() {
		return
	}
	l.player.TakeDamage(amount)
	l.fx.HitParticles(l.player.Center(), kind)
	l.log.Debug("player hit", "amount", amount, "kind", kind, "health", l.player.Health)
	if l.player.Health <= 0 {
		l.fx.PlaySound(CueDeath)
		l.gameOver = true
		l.log.Info("player died", "map", l.layout.ID, "exp", l.player.Exp)
	}
}

// AddExp implements EnemyHost.
func (l *Level) AddExp(amount float64) {
	l.player.Exp += amount
}

// RemoveEnemy implements EnemyHost. The enemy's spawn tile is remembered
// so it stays defeated on reload.
func (l *Level) RemoveEnemy(e *Enemy) {
	before := len(l.enemies)
	l.enemies = slices.DeleteFunc(l.enemies, func(o *Enemy) bool { return o == e })
	if len(l.enemies) == before {
		return
	}
	l.defeated[e.Origin] = true
	l.kills++
	l.log.Info("enemy defeated", "kind", e.Kind, "origin", e.Origin)
}

// EnemiesNear implements EnemyHost. Distance is strictly below radius.
func (l *Level) EnemiesNear(pos core.Vec2, radius float64) []*Enemy {
	var near []*Enemy
	for _, e := range l.enemies {
		if !e.dead && e.Center().Dist(pos) < radius {
			near = append(near, e)
		}
	}
	return near
}

// CreateExplosion implements EnemyHost: flat damage to every enemy within
// radius, each checked for death.
func (l *Level) CreateExplosion(pos core.Vec2, radius, damage float64) {
	l.log.Debug("explosion", "pos", pos, "radius", radius, "damage", damage)
	for _, e := range slices.Clone(l.enemies) {
		if e.dead || e.Center().Dist(pos) > radius {
			continue
		}
		e.TakeSplash(damage)
		e.CheckDeath()
	}
}

// CreateAttack implements PlayerHost.
func (l *Level) CreateAttack() {
	l.DestroyAttack()
	p := l.player
	w := p.Weapon()
	l.weapon = &Attack{
		Kind:   AttackWeapon,
		Name:   w.Name,
		Rect:   weaponRect(p.Rect, p.Status.Facing, w),
		Facing: p.Status.Facing,
		born:   l.clock.Now(),
	}
	l.attacks = append(l.attacks, l.weapon)
}

// DestroyAttack implements PlayerHost.
func (l *Level) DestroyAttack() {
	if l.weapon == nil {
		return
	}
	l.weapon.removed = true
	l.attacks = slices.DeleteFunc(l.attacks, func(a *Attack) bool { return a == l.weapon })
	l.weapon = nil
}

// CreateMagic implements PlayerHost.
func (l *Level) CreateMagic(style string, strength, cost float64) {
	mm := l.mods.Magic
	cost *= mm.ManaCostScale
	if mm.InfiniteMana {
		cost = 0
	}
	p := l.player

	switch style {
	case "heal":
		if !p.EnergyCost(cost) && !mm.InstantCast {
			return
		}
		l.fx.PlaySound(CueHeal)
		p.Heal(strength * mm.SpellPower)
		l.fx.MagicParticles("aura", p.Center())
		l.fx.MagicParticles("heal", p.Center().Add(core.V(0, -20)))
	case "flame":
		if !p.EnergyCost(cost) && !mm.InstantCast {
			return
		}
		l.fx.PlaySound(CueFlame)
		l.castFlame()
	default:
		l.log.Debug("unknown spell", "style", style)
	}
}

// castFlame lays a line of short-lived magic hitboxes in front of the
// player, one per tile, each jittered by up to a third of a tile.
func (l *Level) castFlame() {
	p := l.player
	dir := p.Status.Facing.Vec()
	center := p.Center()
	jitter := l.tile / 3
	now := l.clock.Now()

	n := int(flameReach * l.mods.Magic.AreaOfEffect)
	for i := 1; i < n; i++ {
		off := dir.Scale(float64(i * l.tile))
		pos := center.Add(off).Add(core.V(
			float64(l.rng.Intn(2*jitter+1)-jitter),
			float64(l.rng.Intn(2*jitter+1)-jitter),
		))
		l.attacks = append(l.attacks, &Attack{
			Kind:   AttackMagic,
			Name:   "flame",
			Rect:   core.RectAt(int(pos.X), int(pos.Y), l.tile, l.tile),
			Facing: p.Status.Facing,
			born:   now,
			life:   flameLife,
		})
		l.fx.MagicParticles("flame", pos)
	}
}

// Restart clears game over and revives the player at the first spawn.
func (l *Level) Restart() {
	l.gameOver = false
	l.kills = 0
	l.DestroyAttack()
	l.player.Revive(l.initialSpawn)
	l.log.Info("restart", "map", l.layout.ID)
}

// SavableState captures the player and the cleared spawn tiles.
func (l *Level) SavableState() save.State {
	return save.State{
		MapID:           l.layout.ID,
		Player:          l.player.ToSave(),
		DefeatedEnemies: sortedPoints(l.defeated),
		DestroyedGrass:  sortedPoints(l.destroyed),
	}
}

// Size returns the world size in pixels.
func (l *Level) Size() (int, int) {
	return l.layout.Cols * l.tile, l.layout.Rows * l.tile
}

func (l *Level) TileSize() int { return l.tile }
func (l *Level) MapID() string { return l.layout.ID }
func (l *Level) Player() *Player { return l.player }
func (l *Level) Enemies() []*Enemy { return l.enemies }
func (l *Level) Grass() []*Tile { return l.grass }
func (l *Level) Obstacles() *ObstacleSet { return l.obstacles }
func (l *Level) Attacks() []*Attack { return l.attacks }
func (l *Level) Grid() *nav.Grid { return l.grid }
func (l *Level) GameOver() bool { return l.gameOver }
func (l *Level) Kills() int { return l.kills }

// TransitionCells returns the transition trigger cells in row-major order.
func (l *Level) TransitionCells() []nav.Cell {
	cells := make([]nav.Cell, 0, len(l.transitions))
	for c := range l.transitions {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b nav.Cell) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return cells
}
