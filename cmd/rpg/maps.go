package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rpg/internal/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List available maps",
	Long: `Shows every map the game can load: the built-in ones plus any found
in the --maps directory, with their size and contents.`,
	Args: cobra.NoArgs,
	RunE: runMaps,
}

func runMaps(_ *cobra.Command, _ []string) error {
	loader := maps.NewLoader(flagMapsDir)
	ids, err := loader.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No maps available.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, id := range ids {
		maxIDLen = max(maxIDLen, len(id))
	}

	fmt.Println("Available maps:")
	fmt.Println()
	fmt.Printf("  %-*s  %-7s  %-8s  %-5s  %s\n", maxIDLen, "ID", "Size", "Entities", "Grass", "Objects")
	fmt.Printf("  %-*s  %-7s  %-8s  %-5s  %s\n", maxIDLen, "--", "----", "--------", "-----", "-------")
	for _, id := range ids {
		layout, err := loader.Load(id)
		if err != nil {
			fmt.Printf("  %-*s  error: %v\n", maxIDLen, id, err)
			continue
		}
		fmt.Printf("  %-*s  %-7s  %-8d  %-5d  %d\n", maxIDLen, id,
			fmt.Sprintf("%dx%d", layout.Cols, layout.Rows),
			layout.Count(maps.LayerEntities),
			layout.Count(maps.LayerGrass),
			layout.Count(maps.LayerObjects),
		)
	}
	return nil
}
