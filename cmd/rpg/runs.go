package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rpg/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the best finished runs",
	Long: `Display the top runs by experience. A run is recorded each time a
player falls.

Examples:
  rpg runs
  rpg runs --limit 25`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieve runs: %w", err)
	}

	fmt.Println("Top runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-14s  %-10s  %-6s  %-5s  %-8s  %s\n", "Rank", "Player", "Map", "EXP", "Kills", "Time", "Date")
	fmt.Printf("  %-4s  %-14s  %-10s  %-6s  %-5s  %-8s  %s\n", "----", "------", "---", "---", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-14s  %-10s  %-6d  %-5d  %-8s  %s\n",
			i+1, r.Player, r.MapID, r.Exp, r.Kills,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
