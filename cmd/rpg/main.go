// rpg is a top-down action RPG that runs in the terminal.
//
// Usage:
//
//	rpg play               - Play locally (title screen, continue or new game)
//	rpg serve              - Start SSH server for remote play
//	rpg maps               - List available maps
//	rpg runs               - Show the best finished runs
//	rpg saves              - List save slots
//	rpg saves delete <slot> - Delete a save slot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.rpg/rpg.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--maps <dir>          - Directory of map CSV files
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMapsDir    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rpg",
	Short: "A top-down action RPG in your terminal",
	Long: `Explore the overworld, cut grass, fight monsters with weapons and
magic, and spend experience on stat upgrades.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  maps     - List available maps
  runs     - Show the best finished runs
  saves    - List or delete save slots

Examples:
  rpg play
  rpg play --difficulty hard --slot alice
  rpg serve --ssh :2222
  rpg maps --maps ./my-maps`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rpg/rpg.db", "Path to saves and runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagMapsDir, "maps", "", "Directory of map CSV files (built-in maps fill the gaps)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(savesCmd)
}
