package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	def := DefaultGameConfig()

	if !reflect.DeepEqual(cfg.Monsters, def.Monsters) {
		t.Errorf("monster tables differ:\n%+v\n%+v", cfg.Monsters, def.Monsters)
	}
	if !reflect.DeepEqual(cfg.Weapons, def.Weapons) {
		t.Errorf("weapon tables differ:\n%+v\n%+v", cfg.Weapons, def.Weapons)
	}
	if !reflect.DeepEqual(cfg.Magic, def.Magic) {
		t.Errorf("magic tables differ")
	}
	if !reflect.DeepEqual(cfg.Player, def.Player) {
		t.Errorf("player config differs:\n%+v\n%+v", cfg.Player, def.Player)
	}
	if !reflect.DeepEqual(cfg.Enemy, def.Enemy) {
		t.Errorf("enemy config differs:\n%+v\n%+v", cfg.Enemy, def.Enemy)
	}
	if !reflect.DeepEqual(cfg.Transitions, def.Transitions) {
		t.Errorf("transitions differ")
	}
	if cfg.Enemy.PathRecalc != 500*time.Millisecond {
		t.Errorf("PathRecalc = %v, expected 500ms", cfg.Enemy.PathRecalc)
	}
}

func TestParseKeepsDefaultsForMissingFields(t *testing.T) {
	cfg, err := Parse([]byte(`
start_map: island
monsters:
  squid: {health: 5, exp: 1, damage: 1, speed: 10, resistance: 1, attack_radius: 10, notice_radius: 20}
`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.StartMap != "island" {
		t.Errorf("StartMap = %q", cfg.StartMap)
	}
	if cfg.Monsters["squid"].Health != 5 {
		t.Errorf("squid health = %v, expected override 5", cfg.Monsters["squid"].Health)
	}
	if _, ok := cfg.Monsters["raccoon"]; !ok {
		t.Error("raccoon should survive from defaults")
	}
	if cfg.TileSize != 64 || len(cfg.Weapons) != 5 {
		t.Errorf("defaults lost: tile=%d weapons=%d", cfg.TileSize, len(cfg.Weapons))
	}
	if cfg.Modifiers.Enemy.XPBoost != 1 || cfg.Modifiers.Magic.ManaCostScale != 1 {
		t.Error("multipliers should normalize to 1")
	}
}

func TestGodModeImpliesCheats(t *testing.T) {
	cfg, err := Parse([]byte(`
modifiers:
  player: {god_mode: true}
`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	p := cfg.Modifiers.Player
	if !p.Invulnerable || !p.InfiniteHealth || !p.OneHitKO {
		t.Errorf("player modifiers = %+v, god mode should imply invulnerable, infinite health and one hit ko", p)
	}
	if !cfg.Modifiers.Magic.InfiniteMana {
		t.Error("god mode should imply infinite mana")
	}
	if cfg.Modifiers.Enemy.Speed != 1 {
		t.Errorf("enemy speed = %v, expected 1", cfg.Modifiers.Enemy.Speed)
	}

	plain := Modifiers{}.Normalized()
	if plain.Player.OneHitKO || plain.Magic.InfiniteMana {
		t.Error("cheats should stay off without god mode")
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("monsters: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("tile_size: 32\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TileSize != 32 {
		t.Errorf("TileSize = %d, expected 32", cfg.TileSize)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestMonsterFallback(t *testing.T) {
	cfg := DefaultGameConfig()

	if s, ok := cfg.Monster("raccoon"); !ok || s.Health != 300 {
		t.Errorf("raccoon = %+v, %v", s, ok)
	}
	s, ok := cfg.Monster("dragon")
	if ok {
		t.Error("unknown kind reported as found")
	}
	if s != FallbackMonster {
		t.Errorf("fallback = %+v", s)
	}
	if s.Health != 100 || s.Exp != 50 || s.Speed != 100 || s.Damage != 10 ||
		s.Resistance != 1 || s.AttackRadius != 50 || s.NoticeRadius != 200 || s.AttackType != "slash" {
		t.Errorf("fallback values changed: %+v", s)
	}
}

func TestEntityCodes(t *testing.T) {
	cfg := DefaultGameConfig()
	tests := map[int]string{390: "bamboo", 391: "spirit", 392: "raccoon", 393: "squid", 7: "squid"}
	for code, want := range tests {
		if got := cfg.MonsterForCode(code); got != want {
			t.Errorf("MonsterForCode(%d) = %q, expected %q", code, got, want)
		}
	}

	tr, ok := cfg.Transition(9001)
	if !ok || tr.Map != "default" || tr.Spawn != [2]int{27, 6} {
		t.Errorf("Transition(9001) = %+v, %v", tr, ok)
	}
	if _, ok := cfg.Transition(394); ok {
		t.Error("player code should not be a transition")
	}
}

func TestWeaponAndSpellWrap(t *testing.T) {
	cfg := DefaultGameConfig()
	if cfg.Weapon(0).Name != "sword" || cfg.Weapon(5).Name != "sword" || cfg.Weapon(-1).Name != "sai" {
		t.Error("weapon index should wrap")
	}
	if cfg.Spell(1).Name != "heal" || cfg.Spell(2).Name != "flame" {
		t.Error("spell index should wrap")
	}

	empty := GameConfig{}
	if empty.Weapon(3).Damage <= 0 {
		t.Error("empty weapon table should yield a usable placeholder")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		aggro  float64
		dealt  float64
	}{
		{DifficultyEasy, 0.75, 0.5},
		{DifficultyNormal, 1, 1},
		{DifficultyHard, 1.5, 1.5},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultGameConfig()
			cfg.ApplyPreset(tc.preset)
			if cfg.Modifiers.Enemy.Aggro != tc.aggro || cfg.Modifiers.Enemy.DamageDealt != tc.dealt {
				t.Errorf("enemy modifiers = %+v", cfg.Modifiers.Enemy)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
