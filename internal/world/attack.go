package world

import (
	"time"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
)

// Attack is a transient hitbox: a weapon swing that lives until the player's
// attack ends, or a spell effect with a fixed lifetime.
type Attack struct {
	Kind    AttackKind
	Name    string
	Rect    core.Rect
	Facing  Facing
	born    time.Duration
	life    time.Duration // zero: until destroyed
	removed bool
}

func (a *Attack) expired(now time.Duration) bool {
	return a.life > 0 && now-a.born >= a.life
}

// weaponRect places a weapon swing beside the player's display rect.
// Horizontal swings sit 16 px below center; vertical ones 10 px left.
func weaponRect(p core.Rect, f Facing, w config.WeaponStats) core.Rect {
	cx, cy := p.Center()
	switch f {
	case FacingRight:
		r := core.RectAt(0, cy+16, w.Reach, w.Width)
		r.X = p.Right()
		return r
	case FacingLeft:
		r := core.RectAt(0, cy+16, w.Reach, w.Width)
		r.X = p.X - w.Reach
		return r
	case FacingUp:
		r := core.RectAt(cx-10, 0, w.Width, w.Reach)
		r.Y = p.Y - w.Reach
		return r
	default:
		r := core.RectAt(cx-10, 0, w.Width, w.Reach)
		r.Y = p.Bottom()
		return r
	}
}
