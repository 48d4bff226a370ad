package world

import "github.com/vovakirdan/tui-rpg/internal/core"

// Sound cues emitted by the world. Sinks that do not know a cue ignore it.
const (
	CueSword = "sword"
	CueHit   = "hit"
	CueDeath = "death"
	CueHeal  = "heal"
	CueFlame = "flame"
	CuePill  = "red_pill"
)

// Effects receives decorative events from the simulation. None of them may
// feed back into world state.
type Effects interface {
	DeathParticles(pos core.Vec2, kind string)
	HitParticles(pos core.Vec2, kind string)
	ExpParticles(from, to core.Vec2, amount float64)
	GrassParticles(pos core.Vec2)
	MagicParticles(style string, pos core.Vec2)
	PlaySound(cue string)
}

// NopEffects discards every event.
type NopEffects struct{}

func (NopEffects) DeathParticles(core.Vec2, string) {}
func (NopEffects) HitParticles(core.Vec2, string) {}
func (NopEffects) ExpParticles(core.Vec2, core.Vec2, float64) {}
func (NopEffects) GrassParticles(core.Vec2) {}
func (NopEffects) MagicParticles(string, core.Vec2) {}
func (NopEffects) PlaySound(string) {}

var _ Effects = NopEffects{}

func orNop(fx Effects) Effects {
	if fx == nil {
		return NopEffects{}
	}
	return fx
}
