package world

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/maps"
)

const (
	frame   = time.Second / 60
	frameDT = 1.0 / 60
)

// layoutFrom builds a layout from an ASCII sketch, one rune per cell:
//
//	# boundary   g grass   o object   P player
//	s squid      r raccoon T transition 9000   . empty
func layoutFrom(t *testing.T, rows ...string) *maps.Layout {
	t.Helper()
	layers := map[maps.Layer][][]int{}
	for _, name := range maps.Layers {
		grid := make([][]int, len(rows))
		for y, row := range rows {
			grid[y] = make([]int, len(row))
			for x := range row {
				grid[y][x] = maps.Empty
			}
		}
		layers[name] = grid
	}
	for y, row := range rows {
		for x, r := range row {
			switch r {
			case '#':
				layers[maps.LayerBoundary][y][x] = 395
			case 'g':
				layers[maps.LayerGrass][y][x] = 8
			case 'o':
				layers[maps.LayerObjects][y][x] = 0
			case 'P':
				layers[maps.LayerEntities][y][x] = 394
			case 's':
				layers[maps.LayerEntities][y][x] = 393
			case 'r':
				layers[maps.LayerEntities][y][x] = 392
			case 'T':
				layers[maps.LayerEntities][y][x] = 9000
			case '.':
			default:
				t.Fatalf("unknown sketch rune %q in %q", r, strings.TrimSpace(row))
			}
		}
	}
	return maps.NewLayout("sketch", layers)
}

func testConfig() *config.GameConfig {
	cfg := config.DefaultGameConfig()
	return &cfg
}

// recorder counts effect events.
type recorder struct {
	deaths map[string]int
	hits   int
	exp    []float64
	grass  int
	magic  map[string]int
	sounds map[string]int
}

func newRecorder() *recorder {
	return &recorder{
		deaths: map[string]int{},
		magic:  map[string]int{},
		sounds: map[string]int{},
	}
}

func (r *recorder) DeathParticles(_ core.Vec2, kind string) { r.deaths[kind]++ }
func (r *recorder) HitParticles(core.Vec2, string) { r.hits++ }
func (r *recorder) ExpParticles(_, _ core.Vec2, amount float64) {
	r.exp = append(r.exp, amount)
}
func (r *recorder) GrassParticles(core.Vec2) { r.grass++ }
func (r *recorder) MagicParticles(style string, _ core.Vec2) { r.magic[style]++ }
func (r *recorder) PlaySound(cue string) { r.sounds[cue]++ }

// fakeHost records enemy callbacks without a level.
type fakeHost struct {
	damage     []float64
	exp        float64
	removed    int
	explosions int
	near       []*Enemy
}

func (h *fakeHost) DamagePlayer(amount float64, _ string) { h.damage = append(h.damage, amount) }
func (h *fakeHost) AddExp(amount float64) { h.exp += amount }
func (h *fakeHost) CreateExplosion(core.Vec2, float64, float64) {
	h.explosions++
}
func (h *fakeHost) EnemiesNear(core.Vec2, float64) []*Enemy { return h.near }
func (h *fakeHost) RemoveEnemy(*Enemy) { h.removed++ }

// dummy is a target and damage source at a fixed point.
type dummy struct {
	at      core.Vec2
	stealth bool
	weapon  float64
	magic   float64
	stuns   bool
}

func (d *dummy) Center() core.Vec2 { return d.at }
func (d *dummy) Stealthy() bool { return d.stealth }
func (d *dummy) WeaponDamage() float64 { return d.weapon }
func (d *dummy) MagicDamage() float64 { return d.magic }
func (d *dummy) StunsOnHit() bool { return d.stuns }

// step runs n level frames, advancing the clock after each.
func step(l *Level, clock *core.Clock, in core.InputFrame, n int) {
	for i := 0; i < n; i++ {
		l.Update(in, frameDT)
		clock.Advance(frame)
	}
}
