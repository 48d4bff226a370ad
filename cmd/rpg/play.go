package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/logging"
	"github.com/vovakirdan/tui-rpg/internal/maps"
	"github.com/vovakirdan/tui-rpg/internal/platform/tui"
	"github.com/vovakirdan/tui-rpg/internal/storage"
)

var (
	flagSlot    string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Open the title screen: continue the slot's save, start a new game,
or browse the runs board.

Controls:
  Arrows/WASD    - Move
  Space/J        - Attack
  F/K            - Cast spell
  E / C          - Next weapon / next spell
  X / Z / V      - Dodge / berserk / speed burst (when unlocked)
  P/M            - Pause and upgrade stats
  Enter          - Buy the selected upgrade
  Ctrl+S         - Save (while paused)
  R              - Restart (after game over)
  Esc/B          - Back
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Enemies notice you later and hit softer
  normal - As configured
  hard   - Enemies see further, hit harder, give more experience
  fixed  - No preset adjustment

Examples:
  rpg play
  rpg play --slot alice --difficulty hard
  rpg play --log-file ~/.rpg/rpg.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSlot, "slot", "", "Save slot (default: current user name)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := logging.OpenFile(flagLogFile, "rpg")
	if err != nil {
		return err
	}
	//nolint:errcheck // Best-effort close on exit
	defer closeLog()

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, saves disabled", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v (saves disabled)\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return tui.Run(tui.AppOptions{
		Store:  store,
		Launch: newLauncher(cfg, maps.NewLoader(flagMapsDir), store, logger),
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Slot:   slotName(),
		Logger: logger,
	})
}

func slotName() string {
	if flagSlot != "" {
		return flagSlot
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
