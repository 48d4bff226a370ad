package world

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/save"
)

type castCall struct {
	style          string
	strength, cost float64
}

type fakePlayerHost struct {
	created   int
	destroyed int
	casts     []castCall
}

func (h *fakePlayerHost) CreateAttack()  { h.created++ }
func (h *fakePlayerHost) DestroyAttack() { h.destroyed++ }
func (h *fakePlayerHost) CreateMagic(style string, strength, cost float64) {
	h.casts = append(h.casts, castCall{style, strength, cost})
}

type playerFixture struct {
	player *Player
	host   *fakePlayerHost
	fx     *recorder
	clock  *core.Clock
}

func newPlayerFixture(mods config.PlayerModifiers) *playerFixture {
	f := &playerFixture{host: &fakePlayerHost{}, fx: newRecorder(), clock: &core.Clock{}}
	f.player = NewPlayer(PlayerOptions{
		Config:  testConfig(),
		Origin:  core.Point{X: 640, Y: 640},
		Clock:   f.clock,
		Host:    f.host,
		Effects: f.fx,
	})
	f.player.SetModifiers(mods)
	return f
}

func (f *playerFixture) run(in core.InputFrame, n int) {
	for i := 0; i < n; i++ {
		f.player.Update(in, frameDT)
		f.clock.Advance(frame)
	}
}

func TestPlayerFacingPriority(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		facing  Facing
		dir     core.Vec2
	}{
		{"up beats right", []core.Action{core.ActionUp, core.ActionRight}, FacingUp, core.V(1, -1).Normalize()},
		{"down beats left", []core.Action{core.ActionDown, core.ActionLeft}, FacingDown, core.V(-1, 1).Normalize()},
		{"right alone", []core.Action{core.ActionRight}, FacingRight, core.V(1, 0)},
		{"left alone", []core.Action{core.ActionLeft}, FacingLeft, core.V(-1, 0)},
		{"opposites cancel", []core.Action{core.ActionLeft, core.ActionRight}, FacingDown, core.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlayerFixture(config.PlayerModifiers{})
			f.run(core.FrameOf(tt.actions...), 1)
			if f.player.Status.Facing != tt.facing {
				t.Errorf("facing = %v, want %v", f.player.Status.Facing, tt.facing)
			}
			if d := f.player.Direction.Sub(tt.dir).Len(); d > 1e-9 {
				t.Errorf("direction = %+v, want %+v", f.player.Direction, tt.dir)
			}
		})
	}
}

func TestPlayerStatusAnimationKey(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{})

	f.run(core.FrameOf(core.ActionRight), 1)
	if got := f.player.Status.String(); got != "right" {
		t.Errorf("moving: %q", got)
	}
	f.run(core.NewInputFrame(), 1)
	if got := f.player.Status.String(); got != "right_idle" {
		t.Errorf("stopped: %q", got)
	}
	f.run(core.FrameOf(core.ActionAttack), 1)
	if got := f.player.Status.String(); got != "right_attack" {
		t.Errorf("attacking: %q", got)
	}
}

func TestPlayerAttackLock(t *testing.T) {
	tests := []struct {
		name string
		mods config.PlayerModifiers
		want time.Duration
	}{
		{"base", config.PlayerModifiers{}, 500 * time.Millisecond},
		{"fast attack", config.PlayerModifiers{FastAttack: true}, 300 * time.Millisecond},
		{"no cooldown", config.PlayerModifiers{NoCooldown: true}, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlayerFixture(tt.mods)
			if got := f.player.AttackDuration(); got != tt.want {
				t.Fatalf("AttackDuration = %v, want %v", got, tt.want)
			}

			f.run(core.FrameOf(core.ActionAttack), 1)
			if !f.player.Attacking() || f.host.created != 1 || f.fx.sounds[CueSword] != 1 {
				t.Fatalf("attack did not start: attacking=%v created=%d", f.player.Attacking(), f.host.created)
			}

			// Held movement and repeated presses are ignored while locked.
			pos := f.player.Center()
			held := core.FrameOf(core.ActionAttack, core.ActionRight)
			var ended time.Duration
			for f.player.Attacking() {
				ended = f.clock.Now()
				f.player.Update(held, frameDT)
				f.clock.Advance(frame)
				if ended > time.Second {
					t.Fatal("attack never ended")
				}
			}
			if ended < tt.want || ended >= tt.want+frame {
				t.Errorf("attack ended at %v, want within one frame of %v", ended, tt.want)
			}
			if f.host.created != 1 || f.host.destroyed != 1 {
				t.Errorf("created %d, destroyed %d, want 1 each", f.host.created, f.host.destroyed)
			}
			if f.player.Center() != pos {
				t.Errorf("player moved while attacking")
			}
		})
	}
}

func TestPlayerCastPassesStrengthAndCost(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{})
	f.run(core.FrameOf(core.ActionCast), 1)

	want := []castCall{{"flame", 8, 20}}
	if len(f.host.casts) != 1 || f.host.casts[0] != want[0] {
		t.Errorf("casts = %+v, want %+v", f.host.casts, want)
	}
	if !f.player.Attacking() {
		t.Error("cast does not lock the player")
	}
}

func TestPlayerSwitchLockout(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{})
	next := core.FrameOf(core.ActionNextWeapon, core.ActionNextMagic)

	f.run(next, 1)
	f.run(next, 1)
	if f.player.WeaponIndex != 1 || f.player.MagicIndex != 1 {
		t.Fatalf("indexes = %d/%d, want 1/1 inside the lockout", f.player.WeaponIndex, f.player.MagicIndex)
	}

	f.clock.Advance(200 * time.Millisecond)
	f.run(core.NewInputFrame(), 1)
	f.run(next, 1)
	if f.player.WeaponIndex != 2 {
		t.Errorf("weapon index = %d, want 2", f.player.WeaponIndex)
	}
	if f.player.MagicIndex != 0 {
		t.Errorf("magic index = %d, want wrap to 0", f.player.MagicIndex)
	}
}

func TestPlayerEnergyCost(t *testing.T) {
	tests := []struct {
		name   string
		mods   config.PlayerModifiers
		cost   float64
		ok     bool
		energy float64
	}{
		{"affordable", config.PlayerModifiers{}, 20, true, 40},
		{"exact", config.PlayerModifiers{}, 60, true, 0},
		{"too expensive", config.PlayerModifiers{}, 61, false, 60},
		{"unlimited", config.PlayerModifiers{UnlimitedEnergy: true}, 500, true, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlayerFixture(tt.mods)
			if ok := f.player.EnergyCost(tt.cost); ok != tt.ok {
				t.Errorf("EnergyCost(%v) = %v, want %v", tt.cost, ok, tt.ok)
			}
			if f.player.Energy != tt.energy {
				t.Errorf("energy = %v, want %v", f.player.Energy, tt.energy)
			}
		})
	}
}

func TestPlayerEnergyRecovery(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{})
	f.player.Energy = 0

	f.run(core.NewInputFrame(), 60)
	if e := f.player.Energy; e < 2.99 || e > 3.01 {
		t.Errorf("energy after 1s = %v, want 3", e)
	}
	f.run(core.NewInputFrame(), 60*30)
	if e := f.player.Energy; e != 60 {
		t.Errorf("energy = %v, want capped at 60", e)
	}
}

func TestPlayerDamageFormulas(t *testing.T) {
	tests := []struct {
		name   string
		mods   config.PlayerModifiers
		weapon float64
		magic  float64
	}{
		// attack 10 + sword 15; magic 3 + flame 5.
		{"base", config.PlayerModifiers{}, 25, 8},
		{"rage", config.PlayerModifiers{Rage: true}, 50, 16},
		{"double", config.PlayerModifiers{DoubleDamage: true}, 50, 16},
		{"rage and double", config.PlayerModifiers{Rage: true, DoubleDamage: true}, 100, 32},
		{"certain crit", config.PlayerModifiers{CritChance: 1}, 50, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlayerFixture(tt.mods)
			if got := f.player.WeaponDamage(); got != tt.weapon {
				t.Errorf("WeaponDamage = %v, want %v", got, tt.weapon)
			}
			if got := f.player.MagicDamage(); got != tt.magic {
				t.Errorf("MagicDamage = %v, want %v", got, tt.magic)
			}
		})
	}
}

func TestPlayerBerserkWindow(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{Berserk: true})

	f.run(core.FrameOf(core.ActionBerserk), 1)
	if got := f.player.WeaponDamage(); got != 50 {
		t.Errorf("berserk damage = %v, want 50", got)
	}
	if got := f.player.speed(); got != 600 {
		t.Errorf("berserk speed = %v, want 600", got)
	}

	f.clock.Advance(5 * time.Second)
	if got := f.player.WeaponDamage(); got != 25 {
		t.Errorf("damage after berserk = %v, want 25", got)
	}
}

func TestPlayerBerserkNeedsModifier(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{})
	f.run(core.FrameOf(core.ActionBerserk, core.ActionSpeedBurst, core.ActionDodge), 1)
	if got := f.player.speed(); got != 300 {
		t.Errorf("speed = %v, want 300 without modifiers", got)
	}
}

func TestPlayerSpeedMultipliers(t *testing.T) {
	tests := []struct {
		name    string
		mods    config.PlayerModifiers
		actions []core.Action
		want    float64
	}{
		{"base", config.PlayerModifiers{}, nil, 300},
		{"boost", config.PlayerModifiers{SpeedBoost: true}, nil, 600},
		{"burst", config.PlayerModifiers{SpeedBurst: true}, []core.Action{core.ActionSpeedBurst}, 450},
		{"dodge", config.PlayerModifiers{Dodge: true}, []core.Action{core.ActionDodge}, 450},
		{"boost and burst", config.PlayerModifiers{SpeedBoost: true, SpeedBurst: true}, []core.Action{core.ActionSpeedBurst}, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlayerFixture(tt.mods)
			f.run(core.FrameOf(tt.actions...), 1)
			if got := f.player.speed(); got != tt.want {
				t.Errorf("speed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlayerHealthBounds(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{})

	f.player.TakeDamage(500)
	if f.player.Health != 0 {
		t.Errorf("health = %v, want 0", f.player.Health)
	}
	f.player.Heal(1000)
	if f.player.Health != 100 {
		t.Errorf("health = %v, want 100", f.player.Health)
	}
}

func TestPlayerVulnerability(t *testing.T) {
	tests := []struct {
		name string
		mods config.PlayerModifiers
		want bool
	}{
		{"normal", config.PlayerModifiers{}, true},
		{"invulnerable", config.PlayerModifiers{Invulnerable: true}, false},
		{"infinite health", config.PlayerModifiers{InfiniteHealth: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlayerFixture(tt.mods)
			if got := f.player.Vulnerable(); got != tt.want {
				t.Errorf("Vulnerable = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("hurt window", func(t *testing.T) {
		f := newPlayerFixture(config.PlayerModifiers{})
		f.player.TakeDamage(10)
		if f.player.Vulnerable() {
			t.Fatal("vulnerable right after a hit")
		}
		f.clock.Advance(500 * time.Millisecond)
		f.run(core.NewInputFrame(), 1)
		if !f.player.Vulnerable() {
			t.Error("still invulnerable after 500ms")
		}
	})

	t.Run("dodge window", func(t *testing.T) {
		f := newPlayerFixture(config.PlayerModifiers{Dodge: true})
		f.run(core.FrameOf(core.ActionDodge), 1)
		if f.player.Vulnerable() {
			t.Fatal("vulnerable while dodging")
		}
		f.clock.Advance(time.Second)
		if !f.player.Vulnerable() {
			t.Error("still dodging after one second")
		}
	})
}

func TestPlayerPassives(t *testing.T) {
	t.Run("infinite health refills", func(t *testing.T) {
		f := newPlayerFixture(config.PlayerModifiers{InfiniteHealth: true})
		f.player.Health = 1
		f.run(core.NewInputFrame(), 1)
		if f.player.Health != 100 {
			t.Errorf("health = %v, want 100", f.player.Health)
		}
	})

	t.Run("max stats", func(t *testing.T) {
		f := newPlayerFixture(config.PlayerModifiers{MaxStats: true})
		f.run(core.NewInputFrame(), 1)
		for _, s := range StatOrder {
			if f.player.Stats[s] != f.player.MaxStats[s] {
				t.Errorf("%s = %v, want max %v", s, f.player.Stats[s], f.player.MaxStats[s])
			}
		}
		if f.player.Health != 300 {
			t.Errorf("health = %v, want 300", f.player.Health)
		}
	})

	t.Run("heal on hit", func(t *testing.T) {
		f := newPlayerFixture(config.PlayerModifiers{HealOnHit: true})
		f.player.Health = 50
		f.run(core.FrameOf(core.ActionAttack), 1)
		f.run(core.NewInputFrame(), 1)
		if f.player.Health != 55 {
			t.Errorf("health = %v, want 55", f.player.Health)
		}
	})
}

func TestPlayerUpgrade(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{})
	p := f.player
	p.Exp = 150

	if !p.Upgrade(StatAttack) {
		t.Fatal("upgrade with enough exp failed")
	}
	if p.Stats[StatAttack] != 12 || p.UpgradeCost[StatAttack] != 140 || p.Exp != 50 {
		t.Errorf("after upgrade: attack=%v cost=%v exp=%v, want 12/140/50",
			p.Stats[StatAttack], p.UpgradeCost[StatAttack], p.Exp)
	}
	if p.Upgrade(StatAttack) {
		t.Error("upgrade without enough exp succeeded")
	}

	p.Exp = 1000
	p.Stats[StatAttack] = 18
	if !p.Upgrade(StatAttack) || p.Stats[StatAttack] != 20 {
		t.Errorf("attack = %v, want clamped to 20", p.Stats[StatAttack])
	}
	exp := p.Exp
	if p.Upgrade(StatAttack) || p.Exp != exp {
		t.Error("upgrade at max succeeded or charged exp")
	}
}

func TestPlayerSaveRoundTrip(t *testing.T) {
	f := newPlayerFixture(config.PlayerModifiers{})
	p := f.player
	p.Exp = 420
	p.Health = 70
	p.Stats[StatSpeed] = 360
	p.WeaponIndex = 3
	p.SetCenter(core.V(200, 300))

	s := p.ToSave()
	s.MagicIndex = -1

	q := newPlayerFixture(config.PlayerModifiers{}).player
	q.LoadSave(s)
	if q.Center() != core.V(200, 300) {
		t.Errorf("center = %+v", q.Center())
	}
	if q.Exp != 420 || q.Health != 70 || q.Stats[StatSpeed] != 360 {
		t.Errorf("restored exp=%v health=%v speed=%v", q.Exp, q.Health, q.Stats[StatSpeed])
	}
	if q.WeaponIndex != 3 || q.MagicIndex != 1 {
		t.Errorf("indexes = %d/%d, want 3/1", q.WeaponIndex, q.MagicIndex)
	}

	q.LoadSave(save.PlayerState{Health: 1000, Energy: -5})
	if q.Health != 100 || q.Energy != 0 {
		t.Errorf("clamped health=%v energy=%v", q.Health, q.Energy)
	}
}
