package game

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/world"
)

// Particle is a decorative glyph in world space. Text particles render a
// short string instead of a single rune.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2 // world units per frame
	Glyph rune
	Text  string
	Color core.Color
	TTL   int // frames left
}

// Sound is a cue that played recently.
type Sound struct {
	Cue string
	TTL int
}

const (
	soundTTL  = 30
	maxSounds = 3
)

var killColors = map[string]core.Color{
	"squid":   core.ColorMagenta,
	"raccoon": core.ColorBrown,
	"spirit":  core.ColorCyan,
	"bamboo":  core.ColorGreen,
}

// Field is the session's effects sink. It keeps short-lived particles and
// the recent sound cues for the HUD. Cues outside the known set are
// dropped.
type Field struct {
	rng       *rand.Rand
	known     map[string]bool
	particles []Particle
	sounds    []Sound
}

// NewField creates an empty field. cues lists the sound cues that may
// play besides the built-in ones.
func NewField(seed int64, cues ...string) *Field {
	known := map[string]bool{
		world.CueSword: true,
		world.CueHit:   true,
		world.CueDeath: true,
		world.CueHeal:  true,
		world.CueFlame: true,
		world.CuePill:  true,
	}
	for _, c := range cues {
		if c != "" {
			known[c] = true
		}
	}
	return &Field{rng: rand.New(rand.NewSource(seed)), known: known}
}

// Update ages every particle and sound by one frame.
func (f *Field) Update() {
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos = p.Pos.Add(p.Vel)
		p.TTL--
	}
	f.particles = slices.DeleteFunc(f.particles, func(p Particle) bool { return p.TTL <= 0 })
	for i := range f.sounds {
		f.sounds[i].TTL--
	}
	f.sounds = slices.DeleteFunc(f.sounds, func(s Sound) bool { return s.TTL <= 0 })
}

// Clear drops everything, as on a map change.
func (f *Field) Clear() {
	f.particles = f.particles[:0]
	f.sounds = f.sounds[:0]
}

// Particles returns the live particles. The slice must not be modified.
func (f *Field) Particles() []Particle { return f.particles }

// Sounds returns the recent cues, oldest first.
func (f *Field) Sounds() []Sound { return f.sounds }

func (f *Field) spread(n int, pos core.Vec2, speed float64, glyph rune, c core.Color, ttl int) {
	for i := 0; i < n; i++ {
		vel := core.V(f.rng.Float64()*2-1, f.rng.Float64()*2-1).Normalize().Scale(speed)
		f.particles = append(f.particles, Particle{
			Pos:   pos,
			Vel:   vel,
			Glyph: glyph,
			Color: c,
			TTL:   ttl + f.rng.Intn(ttl/2+1),
		})
	}
}

// DeathParticles bursts the monster's color outward.
func (f *Field) DeathParticles(pos core.Vec2, kind string) {
	c, ok := killColors[kind]
	if !ok {
		c = core.ColorRed
	}
	f.spread(8, pos, 6, '*', c, 20)
}

// HitParticles marks the player being hit.
func (f *Field) HitParticles(pos core.Vec2, _ string) {
	f.spread(3, pos, 4, '×', core.ColorBrightRed, 10)
}

// ExpParticles floats the reward above the kill and sends an orb toward
// where the player was last seen.
func (f *Field) ExpParticles(from, to core.Vec2, amount float64) {
	f.particles = append(f.particles, Particle{
		Pos:   from,
		Vel:   core.V(0, -2),
		Text:  fmt.Sprintf("+%d", int(amount)),
		Color: core.ColorBrightYellow,
		TTL:   45,
	})
	const orbFrames = 30
	f.particles = append(f.particles, Particle{
		Pos:   from,
		Vel:   to.Sub(from).Scale(1.0 / orbFrames),
		Glyph: 'o',
		Color: core.ColorYellow,
		TTL:   orbFrames,
	})
}

// GrassParticles drops a leaf that drifts down.
func (f *Field) GrassParticles(pos core.Vec2) {
	f.particles = append(f.particles, Particle{
		Pos:   pos.Add(core.V(float64(f.rng.Intn(33)-16), 0)),
		Vel:   core.V(f.rng.Float64()-0.5, 3),
		Glyph: '\'',
		Color: core.ColorBrightGreen,
		TTL:   20 + f.rng.Intn(10),
	})
}

// MagicParticles draws a spell effect.
func (f *Field) MagicParticles(style string, pos core.Vec2) {
	switch style {
	case "flame":
		f.particles = append(f.particles, Particle{Pos: pos, Vel: core.V(0, -1), Glyph: '^', Color: core.ColorOrange, TTL: 30})
	case "heal":
		f.spread(4, pos, 2, '+', core.ColorBrightGreen, 20)
	case "aura":
		f.spread(6, pos, 5, '°', core.ColorBrightCyan, 12)
	}
}

// PlaySound records a known cue for the HUD.
func (f *Field) PlaySound(cue string) {
	if !f.known[cue] {
		return
	}
	f.sounds = append(f.sounds, Sound{Cue: cue, TTL: soundTTL})
	if len(f.sounds) > maxSounds {
		f.sounds = f.sounds[len(f.sounds)-maxSounds:]
	}
}

var _ world.Effects = (*Field)(nil)
