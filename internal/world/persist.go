package world

import (
	"sort"

	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/save"
)

// ToSave captures the persisted part of the player.
func (p *Player) ToSave() save.PlayerState {
	return save.PlayerState{
		Pos:         p.Pos,
		Health:      p.Health,
		Energy:      p.Energy,
		Exp:         p.Exp,
		Stats:       toNamed(p.Stats),
		MaxStats:    toNamed(p.MaxStats),
		UpgradeCost: toNamed(p.UpgradeCost),
		WeaponIndex: p.WeaponIndex,
		MagicIndex:  p.MagicIndex,
	}
}

// LoadSave restores the player from a save. Missing stats keep their
// current values; indexes wrap to the configured tables.
func (p *Player) LoadSave(s save.PlayerState) {
	p.SetCenter(s.Pos)
	p.Health = s.Health
	p.Energy = s.Energy
	p.Exp = s.Exp
	fromNamed(p.Stats, s.Stats)
	fromNamed(p.MaxStats, s.MaxStats)
	fromNamed(p.UpgradeCost, s.UpgradeCost)
	p.WeaponIndex = wrapIndex(s.WeaponIndex, len(p.cfg.Weapons))
	p.MagicIndex = wrapIndex(s.MagicIndex, len(p.cfg.Magic))
	p.Health = core.ClampF(p.Health, 0, p.Stats[StatHealth])
	p.Energy = core.ClampF(p.Energy, 0, p.Stats[StatEnergy])
}

func toNamed(m map[Stat]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func fromNamed(dst map[Stat]float64, src map[string]float64) {
	for _, s := range StatOrder {
		if v, ok := src[string(s)]; ok {
			dst[s] = v
		}
	}
}

func wrapIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// sortedPoints returns the set's members ordered by row, then column.
func sortedPoints(set map[core.Point]bool) []core.Point {
	pts := make([]core.Point, 0, len(set))
	for p := range set {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}
