package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/save"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleState() save.State {
	return save.State{
		MapID: "island",
		Player: save.PlayerState{
			Pos:         core.V(640.5, 320),
			Health:      80,
			Energy:      45,
			Exp:         230,
			Stats:       map[string]float64{"health": 100, "energy": 60, "attack": 12, "magic": 3, "speed": 300},
			MaxStats:    map[string]float64{"health": 300, "energy": 140, "attack": 20, "magic": 10, "speed": 720},
			UpgradeCost: map[string]float64{"health": 100, "energy": 100, "attack": 140, "magic": 100, "speed": 100},
			WeaponIndex: 2,
			MagicIndex:  1,
		},
		DefeatedEnemies: []core.Point{{X: 128, Y: 64}, {X: 640, Y: 704}},
		DestroyedGrass:  []core.Point{{X: 192, Y: 192}},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTemp(t)
	want := sampleState()

	if err := store.SaveGame("alice", want); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	got, err := store.LoadGame("alice")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadGame() = %+v\nexpected %+v", got, want)
	}
}

func TestStoreSaveOverwritesSlot(t *testing.T) {
	store := openTemp(t)
	first := sampleState()
	if err := store.SaveGame("slot", first); err != nil {
		t.Fatal(err)
	}

	second := sampleState()
	second.MapID = "default"
	second.Player.Exp = 999
	second.DefeatedEnemies = nil
	second.DestroyedGrass = []core.Point{{X: 0, Y: 64}}
	if err := store.SaveGame("slot", second); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadGame("slot")
	if err != nil {
		t.Fatal(err)
	}
	if got.MapID != "default" || got.Player.Exp != 999 {
		t.Errorf("slot not overwritten: %+v", got)
	}
	if len(got.DefeatedEnemies) != 0 {
		t.Errorf("stale defeated enemies kept: %v", got.DefeatedEnemies)
	}
	if !reflect.DeepEqual(got.DestroyedGrass, second.DestroyedGrass) {
		t.Errorf("DestroyedGrass = %v", got.DestroyedGrass)
	}
}

func TestStoreLoadMissingSlot(t *testing.T) {
	store := openTemp(t)

	if _, err := store.LoadGame("nobody"); !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadGame() error = %v, expected ErrNoSave", err)
	}
	ok, err := store.HasSave("nobody")
	if err != nil || ok {
		t.Errorf("HasSave() = %v, %v", ok, err)
	}
}

func TestStoreDeleteAndList(t *testing.T) {
	store := openTemp(t)
	for _, slot := range []string{"a", "b"} {
		if err := store.SaveGame(slot, sampleState()); err != nil {
			t.Fatal(err)
		}
	}

	infos, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 saves, got %d", len(infos))
	}
	if infos[0].MapID != "island" || infos[0].Exp != 230 {
		t.Errorf("info = %+v", infos[0])
	}

	if err := store.DeleteSave("a"); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if _, err := store.LoadGame("a"); !errors.Is(err, ErrNoSave) {
		t.Errorf("deleted slot still loads: %v", err)
	}
	if ok, _ := store.HasSave("b"); !ok {
		t.Error("other slot should survive delete")
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTemp(t)

	for i, exp := range []int{100, 500, 300, 200, 400} {
		_, err := store.RecordRun(RunEntry{
			Player:   "p",
			MapID:    "default",
			Exp:      exp,
			Kills:    i,
			Duration: time.Duration(i+1) * time.Second,
		})
		if err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Exp != 500 || runs[1].Exp != 400 || runs[2].Exp != 300 {
		t.Errorf("runs not in expected order: %v", runs)
	}
	if runs[0].Duration != 2*time.Second || runs[0].Kills != 1 {
		t.Errorf("run fields not preserved: %+v", runs[0])
	}
}
