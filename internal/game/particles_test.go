package game

import (
	"testing"

	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/world"
)

func TestFieldSounds(t *testing.T) {
	f := NewField(1, "slash")

	f.PlaySound("kazoo")
	if len(f.Sounds()) != 0 {
		t.Error("unknown cues should be dropped")
	}

	for _, cue := range []string{world.CueSword, "slash", world.CueHit, world.CueDeath} {
		f.PlaySound(cue)
	}
	got := f.Sounds()
	if len(got) != maxSounds {
		t.Fatalf("sounds = %d, want %d", len(got), maxSounds)
	}
	if got[0].Cue != "slash" || got[2].Cue != world.CueDeath {
		t.Errorf("sounds = %+v, want the latest cues oldest first", got)
	}

	for range soundTTL {
		f.Update()
	}
	if len(f.Sounds()) != 0 {
		t.Errorf("sounds should expire after %d frames", soundTTL)
	}
}

func TestFieldParticlesExpire(t *testing.T) {
	f := NewField(1)
	f.ExpParticles(core.V(0, 0), core.V(300, 0), 100)
	f.DeathParticles(core.V(0, 0), "squid")

	ps := f.Particles()
	if len(ps) != 10 {
		t.Fatalf("particles = %d, want 10", len(ps))
	}
	if ps[0].Text != "+100" {
		t.Errorf("exp text = %q, want +100", ps[0].Text)
	}

	for range 30 {
		f.Update()
	}
	for _, p := range f.Particles() {
		if p.Glyph == 'o' {
			t.Error("the orb should be gone once it reaches the player")
		}
	}

	for range 60 {
		f.Update()
	}
	if n := len(f.Particles()); n != 0 {
		t.Errorf("particles = %d after 90 frames, want 0", n)
	}
}

func TestFieldClear(t *testing.T) {
	f := NewField(1)
	f.MagicParticles("aura", core.V(10, 10))
	f.PlaySound(world.CueFlame)
	f.Clear()
	if len(f.Particles()) != 0 || len(f.Sounds()) != 0 {
		t.Error("Clear should drop everything")
	}
}
