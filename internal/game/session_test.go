package game

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/maps"
	"github.com/vovakirdan/tui-rpg/internal/save"
	"github.com/vovakirdan/tui-rpg/internal/storage"
)

type memStore struct {
	saves   map[string]save.State
	runs    []storage.RunEntry
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{saves: make(map[string]save.State)}
}

func (m *memStore) SaveGame(slot string, st save.State) error {
	m.saves[slot] = st
	return nil
}

func (m *memStore) LoadGame(slot string) (save.State, error) {
	if m.loadErr != nil {
		return save.State{}, m.loadErr
	}
	st, ok := m.saves[slot]
	if !ok {
		return save.State{}, storage.ErrNoSave
	}
	return st, nil
}

func (m *memStore) RecordRun(run storage.RunEntry) (int64, error) {
	m.runs = append(m.runs, run)
	return int64(len(m.runs)), nil
}

const ring = "395,395,395,395,395,395,395\n" +
	"395,-1,-1,-1,-1,-1,395\n" +
	"395,-1,-1,-1,-1,-1,395\n" +
	"395,-1,-1,-1,-1,-1,395\n" +
	"395,395,395,395,395,395,395\n"

// Map "a" leads to "b" through cell (3,2); map "c" leads nowhere.
func testMaps() *maps.Loader {
	return maps.NewLoaderFS(fstest.MapFS{
		"map_a_FloorBlocks.csv": {Data: []byte(ring)},
		"map_a_Entities.csv":    {Data: []byte("-1\n-1\n-1,394,-1,9100\n")},
		"map_b_FloorBlocks.csv": {Data: []byte(ring)},
		"map_c_FloorBlocks.csv": {Data: []byte(ring)},
		"map_c_Entities.csv":    {Data: []byte("-1\n-1\n-1,394,-1,9101\n")},
	})
}

func testConfig(start string) *config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.StartMap = start
	cfg.Transitions = map[int]config.TransitionTarget{
		9100: {Map: "b", Spawn: [2]int{2, 2}},
		9101: {Map: "nowhere", Spawn: [2]int{1, 1}},
	}
	return &cfg
}

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Maps == nil {
		opts.Maps = testMaps()
	}
	if opts.Config == nil {
		opts.Config = testConfig("a")
	}
	s := New(opts)
	if err := s.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return s
}

func TestDeterminism(t *testing.T) {
	script := func(i int) core.InputFrame {
		dirs := []core.Action{core.ActionRight, core.ActionDown, core.ActionLeft, core.ActionUp}
		in := core.FrameOf(dirs[(i/45)%len(dirs)])
		if i%40 == 0 {
			in.Set(core.ActionAttack)
		}
		if i%97 == 0 {
			in.Set(core.ActionCast)
		}
		if i == 200 {
			in.Set(core.ActionNextWeapon)
		}
		return in
	}

	run := func() []uint64 {
		s := New(Options{})
		rc := core.DefaultConfig()
		rc.Seed = 42
		if err := s.Reset(rc); err != nil {
			t.Fatalf("Reset failed: %v", err)
		}
		hashes := make([]uint64, 0, 600)
		for i := range 600 {
			s.Step(script(i))
			snap := s.Snapshot()
			hashes = append(hashes, snap.Hash())
		}
		return hashes
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Determinism failed at tick %d: %d != %d", i+1, a[i], b[i])
		}
	}
	if a[0] == a[len(a)-1] {
		t.Error("Snapshot should change as the game runs")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newSession(t, Options{})
	p := s.Level().Player()

	s.Step(core.FrameOf(core.ActionPause))
	if !s.State().Paused {
		t.Fatal("Pause should open the menu")
	}
	before := p.Center()
	for range 10 {
		s.Step(core.FrameOf(core.ActionRight))
	}
	if p.Center() != before {
		t.Errorf("player moved while paused: %v -> %v", before, p.Center())
	}

	s.Step(core.FrameOf(core.ActionBack))
	if s.State().Paused {
		t.Fatal("Back should close the menu")
	}
	s.Step(core.FrameOf(core.ActionRight))
	if p.Center().X <= before.X {
		t.Error("player should move after unpausing")
	}
}

func TestMenuCursorMovesOnPress(t *testing.T) {
	s := newSession(t, Options{})
	s.Step(core.FrameOf(core.ActionPause))

	steps := []struct {
		in   core.InputFrame
		want int
	}{
		{core.FrameOf(core.ActionDown), 1},
		{core.FrameOf(core.ActionDown), 1}, // held
		{core.NewInputFrame(), 1},
		{core.FrameOf(core.ActionDown), 2},
		{core.FrameOf(core.ActionUp), 1},
		{core.FrameOf(core.ActionLeft), 0},
		{core.NewInputFrame(), 0},
		{core.FrameOf(core.ActionLeft), 4},
	}
	for i, st := range steps {
		s.Step(st.in)
		if s.cursor != st.want {
			t.Errorf("step %d: cursor = %d, want %d", i, s.cursor, st.want)
		}
	}
}

func TestUpgradeFromMenu(t *testing.T) {
	s := newSession(t, Options{})
	p := s.Level().Player()
	p.Exp = 150

	s.Step(core.FrameOf(core.ActionPause))
	s.Step(core.FrameOf(core.ActionConfirm))
	if got := p.Stats["health"]; got != 120 {
		t.Errorf("health = %v, want 120", got)
	}
	if p.Exp != 50 {
		t.Errorf("exp = %v, want 50", p.Exp)
	}
	if s.message != "health upgraded" {
		t.Errorf("message = %q", s.message)
	}

	s.Step(core.NewInputFrame())
	s.Step(core.FrameOf(core.ActionConfirm))
	if p.Exp != 50 {
		t.Errorf("second upgrade should fail, exp = %v", p.Exp)
	}
	if s.message != "need 140 exp" {
		t.Errorf("message = %q, want %q", s.message, "need 140 exp")
	}
}

func TestSaveAndContinue(t *testing.T) {
	store := newMemStore()
	s := newSession(t, Options{Store: store, Slot: "hero"})
	s.Level().Player().Exp = 250

	s.Step(core.FrameOf(core.ActionPause))
	s.Step(core.FrameOf(core.ActionSave))
	st, ok := store.saves["hero"]
	if !ok {
		t.Fatal("Save should write the slot")
	}
	if st.MapID != "a" || st.Player.Exp != 250 {
		t.Errorf("saved %q with exp %v", st.MapID, st.Player.Exp)
	}

	resumed := newSession(t, Options{Store: store, Slot: "hero", Continue: true})
	if got := resumed.Level().Player().Exp; got != 250 {
		t.Errorf("continued exp = %v, want 250", got)
	}
	if resumed.message != "welcome back" {
		t.Errorf("message = %q", resumed.message)
	}
}

func TestContinueFallsBackToFreshGame(t *testing.T) {
	tests := []struct {
		name  string
		store *memStore
	}{
		{"no save", newMemStore()},
		{"load error", &memStore{saves: map[string]save.State{}, loadErr: errors.New("disk on fire")}},
		{"unknown map", &memStore{saves: map[string]save.State{
			"hero": {MapID: "gone", Player: save.PlayerState{Exp: 999, Stats: map[string]float64{"health": 100}}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, Options{Store: tt.store, Slot: "hero", Continue: true})
			if s.Level().MapID() != "a" {
				t.Errorf("map = %q, want a", s.Level().MapID())
			}
			if s.Level().Player().Exp != 0 {
				t.Errorf("exp = %v, want a fresh player", s.Level().Player().Exp)
			}
		})
	}
}

func TestSaveWithoutStore(t *testing.T) {
	s := newSession(t, Options{})
	if err := s.Save(); !errors.Is(err, ErrNoStore) {
		t.Errorf("Save() = %v, want ErrNoStore", err)
	}
}

func TestTransitionCarriesPlayer(t *testing.T) {
	s := newSession(t, Options{})
	p := s.Level().Player()
	p.Exp = 42

	for i := 0; i < 60 && s.Level().MapID() == "a"; i++ {
		s.Step(core.FrameOf(core.ActionRight))
	}
	if s.Level().MapID() != "b" {
		t.Fatalf("map = %q, want b", s.Level().MapID())
	}
	if s.Level().Player() != p {
		t.Error("the same player should be carried over")
	}
	if p.Exp != 42 {
		t.Errorf("exp = %v, want 42", p.Exp)
	}
	if c := p.Center(); c != core.V(160, 160) {
		t.Errorf("spawn = %v, want (160,160)", c)
	}
	if s.message != "entered b" {
		t.Errorf("message = %q", s.message)
	}
}

func TestTransitionToUnknownMapKeepsPlayer(t *testing.T) {
	s := newSession(t, Options{Config: testConfig("c")})
	for range 40 {
		s.Step(core.FrameOf(core.ActionRight))
	}
	if s.Level().MapID() != "c" {
		t.Errorf("map = %q, want c", s.Level().MapID())
	}
	if s.Level().Player().Center().X <= 224 {
		t.Error("player should keep walking past the broken transition")
	}
}

func TestGameOverRecordsRunOnce(t *testing.T) {
	store := newMemStore()
	s := newSession(t, Options{Store: store, Slot: "hero"})

	s.Level().DamagePlayer(1000, "squid")
	s.Step(core.NewInputFrame())
	if !s.State().GameOver {
		t.Fatal("State should report game over")
	}
	for range 5 {
		s.Step(core.FrameOf(core.ActionRight))
	}
	if len(store.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(store.runs))
	}
	run := store.runs[0]
	if run.Player != "hero" || run.MapID != "a" {
		t.Errorf("run = %+v", run)
	}

	s.Step(core.FrameOf(core.ActionRestart))
	if s.State().GameOver {
		t.Fatal("Restart should clear game over")
	}
	if h := s.Level().Player().Health; h != 100 {
		t.Errorf("health after restart = %v, want 100", h)
	}

	s.Level().DamagePlayer(1000, "squid")
	s.Step(core.NewInputFrame())
	if len(store.runs) != 2 {
		t.Errorf("runs = %d, want 2 after a second death", len(store.runs))
	}
}

func TestQuit(t *testing.T) {
	s := newSession(t, Options{})
	res := s.Step(core.FrameOf(core.ActionQuit))
	if !res.State.Quit {
		t.Error("Quit action should set Quit")
	}
}

func TestRender(t *testing.T) {
	s := New(Options{})
	if err := s.Reset(core.DefaultConfig()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	dst := core.NewScreen(80, 24)

	s.Render(dst)
	out := dst.String()
	if !strings.ContainsRune(out, '@') {
		t.Error("player glyph missing")
	}
	if !strings.Contains(dst.Row(0), "HP") || !strings.Contains(dst.Row(0), "EXP 0") {
		t.Errorf("HUD row = %q", dst.Row(0))
	}
	if !strings.Contains(dst.Row(1), "sword") || !strings.Contains(dst.Row(1), "default") {
		t.Errorf("status row = %q", dst.Row(1))
	}

	s.Step(core.FrameOf(core.ActionPause))
	s.Render(dst)
	if !strings.Contains(dst.String(), "Paused") {
		t.Error("pause menu missing")
	}
	s.Step(core.FrameOf(core.ActionPause))

	s.Level().DamagePlayer(1000, "squid")
	s.Step(core.NewInputFrame())
	s.Render(dst)
	if !strings.Contains(dst.String(), "You died") {
		t.Error("game over overlay missing")
	}

	small := core.NewScreen(20, 5)
	s.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("small screens should show a hint")
	}
}

func TestObjectGlyphPlaceholder(t *testing.T) {
	if r, _ := objectGlyph(4); r == '?' {
		t.Error("known object code should have a glyph")
	}
	if r, _ := objectGlyph(99); r != '?' {
		t.Errorf("unknown code glyph = %q, want '?'", r)
	}
}
