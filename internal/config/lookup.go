package config

// Monster returns the stats for a monster kind. Unknown kinds get
// FallbackMonster and ok=false so callers can log once.
func (c *GameConfig) Monster(kind string) (MonsterStats, bool) {
	if s, ok := c.Monsters[kind]; ok {
		return s, true
	}
	return FallbackMonster, false
}

// MonsterForCode maps an entity-layer code to a monster kind.
func (c *GameConfig) MonsterForCode(code int) string {
	if kind, ok := c.Entities.Monsters[code]; ok {
		return kind
	}
	return c.Entities.DefaultMonster
}

// Transition looks up a transition code.
func (c *GameConfig) Transition(code int) (TransitionTarget, bool) {
	t, ok := c.Transitions[code]
	return t, ok
}

// Weapon returns the weapon at index i, wrapping around the table.
func (c *GameConfig) Weapon(i int) WeaponStats {
	if len(c.Weapons) == 0 {
		return WeaponStats{Name: "fists", Damage: 1, Reach: 16, Width: 16}
	}
	return c.Weapons[wrap(i, len(c.Weapons))]
}

// Spell returns the spell at index i, wrapping around the table.
func (c *GameConfig) Spell(i int) MagicStats {
	if len(c.Magic) == 0 {
		return MagicStats{Name: "none"}
	}
	return c.Magic[wrap(i, len(c.Magic))]
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
