package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rpg/internal/config"
	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/game"
	"github.com/vovakirdan/tui-rpg/internal/maps"
	"github.com/vovakirdan/tui-rpg/internal/platform/tui"
	"github.com/vovakirdan/tui-rpg/internal/storage"
)

// loadGameConfig reads the YAML config and applies the difficulty preset.
func loadGameConfig() (*config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	cfg.ApplyPreset(preset)
	return &cfg, nil
}

// newLauncher builds sessions sharing one config, map loader and store.
func newLauncher(cfg *config.GameConfig, loader *maps.Loader, store *storage.Store, logger *log.Logger) tui.Launcher {
	return func(slot string, resume bool, rc core.RuntimeConfig) (tui.Game, error) {
		if rc.Seed == 0 {
			rc.Seed = time.Now().UnixNano()
		}
		opts := game.Options{
			Config:   cfg,
			Maps:     loader,
			Slot:     slot,
			Logger:   logger,
			Continue: resume,
		}
		// A nil *storage.Store must not become a non-nil interface.
		if store != nil {
			opts.Store = store
		}
		s := game.New(opts)
		if err := s.Reset(rc); err != nil {
			return nil, err
		}
		return s, nil
	}
}
