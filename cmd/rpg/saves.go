package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rpg/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	RunE:  runSaves,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSaves(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		return fmt.Errorf("list saves: %w", err)
	}
	if len(saves) == 0 {
		fmt.Println("No saves yet.")
		return nil
	}

	fmt.Printf("  %-14s  %-10s  %-6s  %-6s  %s\n", "Slot", "Map", "EXP", "HP", "Saved")
	fmt.Printf("  %-14s  %-10s  %-6s  %-6s  %s\n", "----", "---", "---", "--", "-----")
	for _, s := range saves {
		fmt.Printf("  %-14s  %-10s  %-6d  %-6d  %s\n",
			s.Slot, s.MapID, int(s.Exp), int(s.Health), s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSavesDelete(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteSave(args[0]); err != nil {
		return fmt.Errorf("delete save %q: %w", args[0], err)
	}
	fmt.Printf("Deleted save %q\n", args[0])
	return nil
}
