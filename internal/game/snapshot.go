package game

import (
	"fmt"
	"hash/fnv"
)

// Snapshot is a flattened view of the session for replay comparison.
// Positions are rounded to whole pixels.
type Snapshot struct {
	Tick     uint64
	MapID    string
	PlayerX  int
	PlayerY  int
	Health   int
	Energy   int
	Exp      int
	Weapon   int
	Magic    int
	Kills    int
	Paused   bool
	GameOver bool

	// Each enemy is 4 ints: X, Y, Health, Status.
	EnemyData []int
	Grass     int
	Attacks   int
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	l := s.level
	p := l.Player()
	enemies := l.Enemies()
	data := make([]int, 0, len(enemies)*4)
	for _, e := range enemies {
		c := e.Center()
		data = append(data, int(c.X), int(c.Y), int(e.Health), int(e.Status))
	}
	pos := p.Center()
	return Snapshot{
		Tick:      s.tick,
		MapID:     l.MapID(),
		PlayerX:   int(pos.X),
		PlayerY:   int(pos.Y),
		Health:    int(p.Health),
		Energy:    int(p.Energy),
		Exp:       int(p.Exp),
		Weapon:    p.WeaponIndex,
		Magic:     p.MagicIndex,
		Kills:     s.Kills(),
		Paused:    s.paused,
		GameOver:  l.GameOver(),
		EnemyData: data,
		Grass:     len(l.Grass()),
		Attacks:   len(l.Attacks()),
	}
}

// Hash digests the snapshot for determinism checks.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "T:%d;M:%s;", snap.Tick, snap.MapID)
	fmt.Fprintf(h, "P:%d,%d,%d,%d,%d,%d,%d;", snap.PlayerX, snap.PlayerY, snap.Health, snap.Energy, snap.Exp, snap.Weapon, snap.Magic)
	fmt.Fprintf(h, "S:%d,%v,%v;", snap.Kills, snap.Paused, snap.GameOver)
	fmt.Fprintf(h, "E:")
	for _, v := range snap.EnemyData {
		fmt.Fprintf(h, "%d,", v)
	}
	fmt.Fprintf(h, ";G:%d;A:%d", snap.Grass, snap.Attacks)
	return h.Sum64()
}
