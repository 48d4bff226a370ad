// Package save defines the persisted game state exchanged between the world
// and the save store.
package save

import "github.com/vovakirdan/tui-rpg/internal/core"

// PlayerState is the persisted part of the player.
type PlayerState struct {
	Pos         core.Vec2          `json:"pos"`
	Health      float64            `json:"health"`
	Energy      float64            `json:"energy"`
	Exp         float64            `json:"exp"`
	Stats       map[string]float64 `json:"stats"`
	MaxStats    map[string]float64 `json:"max_stats"`
	UpgradeCost map[string]float64 `json:"upgrade_cost"`
	WeaponIndex int                `json:"weapon_index"`
	MagicIndex  int                `json:"magic_index"`
}

// State is a complete save: the map the player is on, the player, and the
// spawn tiles that must not respawn on reload. Tiles are the pixel
// coordinates of the tile's top-left corner.
type State struct {
	MapID           string       `json:"map_id"`
	Player          PlayerState  `json:"player"`
	DefeatedEnemies []core.Point `json:"defeated_enemies"`
	DestroyedGrass  []core.Point `json:"destroyed_grass"`
}

// PointSet returns the points as a set for membership tests.
func PointSet(points []core.Point) map[core.Point]bool {
	set := make(map[core.Point]bool, len(points))
	for _, p := range points {
		set[p] = true
	}
	return set
}
