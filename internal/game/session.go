// Package game wraps a level into a playable session: fixed-timestep
// stepping, the pause and upgrade menu, saving, map transitions, game over
// and the terminal rendering of it all.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/maps"
	"github.com/vovakirdan/tui-rpg/internal/save"
	"github.com/vovakirdan/tui-rpg/internal/storage"
	"github.com/vovakirdan/tui-rpg/internal/world"
)

// ErrNoStore is returned by Save when the session has no store.
var ErrNoStore = errors.New("game: no save store")

const messageTTL = 90

// Store persists save slots and finished runs. *storage.Store satisfies it.
type Store interface {
	SaveGame(slot string, st save.State) error
	LoadGame(slot string) (save.State, error)
	RecordRun(run storage.RunEntry) (int64, error)
}

// Options configures a session.
type Options struct {
	Config *config.GameConfig
	Maps   *maps.Loader
	Store  Store  // optional
	Slot   string // save slot, also the run's player name
	Logger *log.Logger

	// Continue restores the slot's save on Reset when one exists.
	Continue bool
}

// Session is one player's game.
type Session struct {
	cfg    *config.GameConfig
	maps   *maps.Loader
	store  Store
	slot   string
	resume bool
	log    *log.Logger

	dt    float64
	step  time.Duration
	clock *core.Clock
	rng   *rand.Rand
	fx    *Field
	level *world.Level

	cleared map[string]save.State
	pending *world.Transition
	prev    core.InputFrame

	tick     uint64
	runStart uint64
	kills    int
	paused   bool
	cursor   int
	quit     bool
	recorded bool
	message  string
	msgTTL   int
}

// New creates a session. Call Reset before stepping it.
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultGameConfig()
		cfg = &def
	}
	loader := opts.Maps
	if loader == nil {
		loader = maps.NewLoader("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	slot := opts.Slot
	if slot == "" {
		slot = "local"
	}
	return &Session{
		cfg:    cfg,
		maps:   loader,
		store:  opts.Store,
		slot:   slot,
		resume: opts.Continue,
		log:    logger,
	}
}

// Reset starts the session from the saved slot when asked to continue, or
// from the configured start map.
func (s *Session) Reset(rc core.RuntimeConfig) error {
	s.step = rc.TickDuration()
	s.dt = s.step.Seconds()
	s.clock = &core.Clock{}
	s.rng = rand.New(rand.NewSource(rc.Seed))
	s.fx = NewField(rc.Seed+1, s.attackSounds()...)
	s.cleared = make(map[string]save.State)
	s.pending = nil
	s.prev = core.NewInputFrame()
	s.tick, s.runStart, s.kills = 0, 0, 0
	s.paused, s.quit, s.recorded = false, false, false
	s.cursor = 0
	s.message, s.msgTTL = "", 0

	var saved *save.State
	if s.resume {
		saved = s.loadSave()
	}

	mapID := s.cfg.StartMap
	if saved != nil {
		mapID = saved.MapID
	}
	layout, err := s.maps.Load(mapID)
	if err != nil && saved != nil {
		s.log.Warn("saved map unavailable, starting fresh", "map", mapID, "err", err)
		saved = nil
		layout, err = s.maps.Load(s.cfg.StartMap)
	}
	if err != nil {
		return fmt.Errorf("game: load start map: %w", err)
	}

	s.buildLevel(layout, nil, nil, saved)
	if saved != nil {
		s.notify("welcome back")
	}
	return nil
}

func (s *Session) loadSave() *save.State {
	if s.store == nil {
		return nil
	}
	st, err := s.store.LoadGame(s.slot)
	switch {
	case errors.Is(err, storage.ErrNoSave):
		s.log.Info("no prior save", "slot", s.slot)
		return nil
	case err != nil:
		s.log.Warn("cannot load save, starting fresh", "slot", s.slot, "err", err)
		return nil
	}
	return &st
}

func (s *Session) attackSounds() []string {
	cues := make([]string, 0, len(s.cfg.Monsters))
	for _, m := range s.cfg.Monsters {
		cues = append(cues, m.AttackSound)
	}
	return cues
}

func (s *Session) buildLevel(layout *maps.Layout, player *world.Player, spawn *core.Vec2, saved *save.State) {
	s.level = world.NewLevel(world.LevelOptions{
		Config:  s.cfg,
		Layout:  layout,
		Clock:   s.clock,
		Effects: s.fx,
		Logger:  s.log,
		Rand:    s.rng,
		Player:  player,
		Spawn:   spawn,
		Saved:   saved,
		OnTransition: func(t world.Transition) {
			s.pending = &t
		},
	})
}

// Step advances the session by one fixed tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	s.tick++
	defer func() { s.prev = in.Clone() }()

	if in.Has(core.ActionQuit) {
		s.quit = true
		return core.StepResult{State: s.State()}
	}
	if s.msgTTL > 0 {
		s.msgTTL--
	}

	switch {
	case s.level.GameOver():
		s.recordRun()
		if in.Has(core.ActionRestart) {
			s.restart()
		}
		s.fx.Update()
	case s.paused:
		s.menu(in)
	case in.Has(core.ActionPause):
		s.paused = true
		s.cursor = 0
	default:
		s.level.ApplyModifiers(s.cfg.Modifiers)
		s.level.Update(in, s.dt)
		s.clock.Advance(s.step)
		if s.pending != nil {
			t := *s.pending
			s.pending = nil
			s.travel(t)
		}
		if s.level.GameOver() {
			s.recordRun()
		}
		s.fx.Update()
	}
	return core.StepResult{State: s.State()}
}

// pressed reports whether a is held now but was not on the previous tick.
func (s *Session) pressed(in core.InputFrame, a core.Action) bool {
	return in.Has(a) && !s.prev.Has(a)
}

// menu drives the pause screen: cursor over the stats, upgrade, save,
// resume.
func (s *Session) menu(in core.InputFrame) {
	n := len(world.StatOrder)
	switch {
	case in.Has(core.ActionPause), in.Has(core.ActionBack):
		s.paused = false
	case s.pressed(in, core.ActionUp), s.pressed(in, core.ActionLeft):
		s.cursor = (s.cursor + n - 1) % n
	case s.pressed(in, core.ActionDown), s.pressed(in, core.ActionRight):
		s.cursor = (s.cursor + 1) % n
	case in.Has(core.ActionConfirm):
		s.upgrade(world.StatOrder[s.cursor])
	case in.Has(core.ActionSave):
		if err := s.Save(); err != nil {
			s.log.Error("save failed", "slot", s.slot, "err", err)
			s.notify("save failed")
			return
		}
		s.notify("game saved")
	}
}

func (s *Session) upgrade(stat world.Stat) {
	p := s.level.Player()
	switch {
	case p.Stats[stat] >= p.MaxStats[stat]:
		s.notify(fmt.Sprintf("%s is maxed", stat))
	case !p.Upgrade(stat):
		s.notify(fmt.Sprintf("need %d exp", int(p.UpgradeCost[stat])))
	default:
		s.log.Debug("upgrade", "stat", stat, "value", p.Stats[stat])
		s.notify(fmt.Sprintf("%s upgraded", stat))
	}
}

// travel rebuilds the world for the transition's map, carrying the player
// over. The cleared tiles of the map being left are kept for the rest of
// the run. A map that cannot be loaded leaves the player where they are.
func (s *Session) travel(t world.Transition) {
	layout, err := s.maps.Load(t.MapID)
	if err != nil {
		s.log.Warn("transition target unavailable", "map", t.MapID, "err", err)
		return
	}

	cur := s.level.SavableState()
	s.cleared[cur.MapID] = save.State{
		MapID:           cur.MapID,
		DefeatedEnemies: cur.DefeatedEnemies,
		DestroyedGrass:  cur.DestroyedGrass,
	}
	s.kills += s.level.Kills()

	var saved *save.State
	if c, ok := s.cleared[t.MapID]; ok {
		saved = &c
	}
	spawn := t.Spawn
	s.fx.Clear()
	s.buildLevel(layout, s.level.Player(), &spawn, saved)
	s.notify("entered " + t.MapID)
}

func (s *Session) restart() {
	s.level.Restart()
	s.recorded = false
	s.runStart = s.tick
	s.kills = 0
	s.fx.Clear()
}

// recordRun stores the finished run once per death.
func (s *Session) recordRun() {
	if s.recorded {
		return
	}
	s.recorded = true
	if s.store == nil {
		return
	}
	run := storage.RunEntry{
		Player:   s.slot,
		MapID:    s.level.MapID(),
		Exp:      int(s.level.Player().Exp),
		Kills:    s.Kills(),
		Duration: time.Duration(s.tick-s.runStart) * s.step,
	}
	if _, err := s.store.RecordRun(run); err != nil {
		s.log.Error("cannot record run", "err", err)
		return
	}
	s.log.Info("run recorded", "player", run.Player, "exp", run.Exp, "kills", run.Kills)
}

// Save writes the current map and player to the session's slot.
func (s *Session) Save() error {
	if s.store == nil {
		return ErrNoStore
	}
	st := s.level.SavableState()
	if err := s.store.SaveGame(s.slot, st); err != nil {
		return fmt.Errorf("game: save slot %q: %w", s.slot, err)
	}
	s.log.Info("game saved", "slot", s.slot, "map", st.MapID)
	return nil
}

func (s *Session) notify(msg string) {
	s.message = msg
	s.msgTTL = messageTTL
}

// State returns the platform-facing summary.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    int(s.level.Player().Exp),
		GameOver: s.level.GameOver(),
		Paused:   s.paused,
		Quit:     s.quit,
	}
}

// Kills counts enemies defeated since the run started, across maps.
func (s *Session) Kills() int { return s.kills + s.level.Kills() }

// Level returns the active level.
func (s *Session) Level() *world.Level { return s.level }

// Slot returns the save slot name.
func (s *Session) Slot() string { return s.slot }
