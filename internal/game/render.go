package game

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/world"
)

// A terminal cell is roughly twice as tall as it is wide, so one world
// tile maps to two columns and one row.
const (
	cellW = 32
	cellH = 64

	hudRows = 2
	minW    = 40
	minH    = 12
)

var enemyGlyphs = map[string]rune{
	"squid":   'S',
	"raccoon": 'R',
	"spirit":  'W',
	"bamboo":  'B',
}

// viewport maps world pixels to screen cells. The camera follows the
// player and stops at the map edges.
type viewport struct {
	camX, camY int // top-left world column/row in cells
	offX, offY int // screen offset of that cell
	w, h       int
}

func newViewport(dst *core.Screen, l *world.Level) viewport {
	v := viewport{offY: hudRows, w: dst.Width(), h: dst.Height() - hudRows - 1}
	mw, mh := l.Size()
	cols := mw / cellW
	rows := mh / cellH
	c := l.Player().Center()

	if cols <= v.w {
		v.offX = (v.w - cols) / 2
	} else {
		v.camX = core.Clamp(int(c.X)/cellW-v.w/2, 0, cols-v.w)
	}
	if rows <= v.h {
		v.offY += (v.h - rows) / 2
	} else {
		v.camY = core.Clamp(int(c.Y)/cellH-v.h/2, 0, rows-v.h)
	}
	return v
}

// cell returns the screen position of a world point and whether it is
// inside the view.
func (v viewport) cell(p core.Vec2) (int, int, bool) {
	x := int(p.X)/cellW - v.camX + v.offX
	y := int(p.Y)/cellH - v.camY + v.offY
	ok := x >= v.offX && x < v.offX+v.w && y >= hudRows && y < hudRows+v.h
	return x, y, ok
}

func (v viewport) set(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	if x, y, ok := v.cell(p); ok {
		dst.SetColored(x, y, r, c)
	}
}

// fillTile paints both columns of the tile whose top-left is at p.
func (v viewport) fillTile(dst *core.Screen, p core.Vec2, r rune, c core.Color) {
	v.set(dst, p, r, c)
	v.set(dst, p.Add(core.V(cellW, 0)), r, c)
}

// Render draws the world, the HUD and any overlay.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCenteredColored(dst.Height()/2, "Window too small", core.ColorYellow)
		return
	}

	l := s.level
	v := newViewport(dst, l)
	s.renderTerrain(dst, v)
	s.renderActors(dst, v)
	s.renderParticles(dst, v)
	s.renderHUD(dst)
	s.renderFooter(dst)

	switch {
	case l.GameOver():
		s.renderOverlay(dst, "You died",
			fmt.Sprintf("EXP %d   Kills %d", int(l.Player().Exp), s.Kills()),
			"R restart   Q quit")
	case s.paused:
		s.renderUpgradeMenu(dst)
	}
}

func (s *Session) renderTerrain(dst *core.Screen, v viewport) {
	l := s.level
	size := float64(l.TileSize())
	for _, c := range l.TransitionCells() {
		v.fillTile(dst, core.V(float64(c.X)*size, float64(c.Y)*size), '>', core.ColorBrightMagenta)
	}
	for _, t := range l.Obstacles().Tiles() {
		origin := core.V(float64(t.Origin.X), float64(t.Origin.Y))
		switch t.Kind {
		case world.TileInvisible:
			v.fillTile(dst, origin, '#', core.ColorGray)
		case world.TileGrass:
			v.fillTile(dst, origin, '"', core.ColorGreen)
		case world.TileObject:
			r, c := objectGlyph(t.Code)
			v.fillTile(dst, origin, r, c)
		}
	}
}

// objectGlyph picks a glyph by object code range. Unknown codes render as a
// placeholder rather than failing.
func objectGlyph(code int) (rune, core.Color) {
	switch {
	case code >= 0 && code <= 4:
		return '♣', core.ColorDarkGreen
	case code >= 5 && code <= 12:
		return '▲', core.ColorGray
	case code >= 13 && code <= 17:
		return '♠', core.ColorDarkGreen
	case code >= 18 && code <= 20:
		return 'Π', core.ColorBrown
	default:
		return '?', core.ColorYellow
	}
}

func (s *Session) renderActors(dst *core.Screen, v viewport) {
	l := s.level
	flash := s.tick%8 < 4

	for _, a := range l.Attacks() {
		r, c := attackGlyph(a)
		v.set(dst, a.Rect.CenterVec(), r, c)
	}

	for _, e := range l.Enemies() {
		r, ok := enemyGlyphs[e.Kind]
		if !ok {
			r, _ = utf8.DecodeRuneInString(strings.ToUpper(e.Kind))
		}
		c := core.ColorRed
		switch {
		case !e.Vulnerable() && flash:
			c = core.ColorBrightWhite
		case e.Stunned():
			c = core.ColorBlue
		case e.Status == world.EnemyAttack:
			c = core.ColorBrightRed
		}
		v.set(dst, e.Center(), r, c)
	}

	p := l.Player()
	c := core.ColorBrightYellow
	if !p.Vulnerable() && flash {
		c = core.ColorBrightWhite
	}
	v.set(dst, p.Center(), '@', c)
}

func attackGlyph(a *world.Attack) (rune, core.Color) {
	if a.Kind == world.AttackMagic {
		return '^', core.ColorOrange
	}
	if a.Facing == world.FacingUp || a.Facing == world.FacingDown {
		return '│', core.ColorBrightWhite
	}
	return '─', core.ColorBrightWhite
}

func (s *Session) renderParticles(dst *core.Screen, v viewport) {
	for _, p := range s.fx.Particles() {
		x, y, ok := v.cell(p.Pos)
		if !ok {
			continue
		}
		if p.Text != "" {
			dst.DrawTextColored(x, y, p.Text, p.Color)
			continue
		}
		dst.SetColored(x, y, p.Glyph, p.Color)
	}
}

// renderHUD draws the gauges on the first line and the loadout on the second.
func (s *Session) renderHUD(dst *core.Screen) {
	p := s.level.Player()
	hp := p.Health / p.Stats[world.StatHealth]
	en := p.Energy / p.Stats[world.StatEnergy]

	dst.DrawTextColored(0, 0, " HP", core.ColorBrightRed)
	dst.DrawBar(4, 0, 20, hp, core.ColorRed)
	dst.DrawTextColored(25, 0, "EN", core.ColorBrightBlue)
	dst.DrawBar(28, 0, 12, en, core.ColorBlue)
	dst.DrawTextColored(41, 0, fmt.Sprintf("EXP %d", int(p.Exp)), core.ColorBrightYellow)

	status := fmt.Sprintf(" %s | %s | %s | kills %d", p.Weapon().Name, p.Spell().Name, s.level.MapID(), s.Kills())
	dst.DrawTextColored(0, 1, status, core.ColorWhite)
}

func (s *Session) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if s.msgTTL > 0 {
		dst.DrawTextColored(1, y, s.message, core.ColorBrightCyan)
		return
	}
	sounds := s.fx.Sounds()
	if len(sounds) == 0 {
		return
	}
	cues := make([]string, len(sounds))
	for i, snd := range sounds {
		cues[i] = snd.Cue
	}
	dst.DrawTextColored(1, y, "♪ "+strings.Join(cues, " "), core.ColorGray)
}

func (s *Session) renderUpgradeMenu(dst *core.Screen) {
	p := s.level.Player()
	lines := make([]string, 0, len(world.StatOrder))
	for i, st := range world.StatOrder {
		marker := "  "
		if i == s.cursor {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-7s %4d/%-4d cost %d",
			marker, st, int(p.Stats[st]), int(p.MaxStats[st]), int(p.UpgradeCost[st])))
	}

	boxW := 42
	boxH := len(lines) + 6
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Y+1, fmt.Sprintf("Paused  EXP %d", int(p.Exp)), core.ColorBrightYellow)
	for i, line := range lines {
		c := core.ColorWhite
		if i == s.cursor {
			c = core.ColorBrightCyan
		}
		dst.DrawTextColored(box.X+2, box.Y+3+i, line, c)
	}
	dst.DrawTextCenteredColored(box.Bottom()-2, "enter upgrade  ctrl+s save  esc resume", core.ColorGray)
}

func (s *Session) renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(l))
	}
	boxW := maxLen + 6
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightRed)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightRed
		}
		dst.DrawTextCenteredColored(box.Y+2+i, l, c)
	}
}
