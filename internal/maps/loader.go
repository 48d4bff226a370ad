package maps

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

//go:embed data/*.csv
var embedded embed.FS

// Loader reads layouts from a directory of CSV files, falling back to the
// built-in maps for ids the directory does not provide.
type Loader struct {
	sources []fs.FS
}

// NewLoader creates a loader. An empty dir means built-in maps only.
func NewLoader(dir string) *Loader {
	l := &Loader{}
	if dir != "" {
		l.sources = append(l.sources, os.DirFS(dir))
	}
	l.sources = append(l.sources, Builtin())
	return l
}

// NewLoaderFS creates a loader over arbitrary file systems, searched in order.
func NewLoaderFS(sources ...fs.FS) *Loader {
	return &Loader{sources: sources}
}

// Builtin returns the embedded map files.
func Builtin() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("maps: embedded data: %v", err))
	}
	return sub
}

// Load reads all four layers of a map. The boundary layer must exist;
// other missing layers are treated as empty.
func (l *Loader) Load(id string) (*Layout, error) {
	for _, src := range l.sources {
		layout, err := loadFrom(src, id)
		if errors.Is(err, ErrUnknownMap) {
			continue
		}
		return layout, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMap, id)
}

func loadFrom(src fs.FS, id string) (*Layout, error) {
	layers := make(map[Layer][][]int, len(Layers))
	for _, layer := range Layers {
		name := FileName(id, layer)
		f, err := src.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			if layer == LayerBoundary {
				return nil, ErrUnknownMap
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("maps: open %s: %w", name, err)
		}
		grid, err := ParseCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("maps: %s: %w", name, err)
		}
		layers[layer] = grid
	}
	if id == "" {
		id = "default"
	}
	return NewLayout(id, layers), nil
}

// List returns the ids of every map available to the loader, sorted.
func (l *Loader) List() ([]string, error) {
	seen := make(map[string]struct{})
	suffix := "_" + string(LayerBoundary) + ".csv"
	for _, src := range l.sources {
		entries, err := fs.ReadDir(src, ".")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("maps: list: %w", err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasPrefix(name, "map") || !strings.HasSuffix(name, suffix) {
				continue
			}
			id := strings.TrimSuffix(strings.TrimPrefix(name, "map"), suffix)
			id = strings.TrimPrefix(id, "_")
			if id == "" {
				id = "default"
			}
			seen[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
