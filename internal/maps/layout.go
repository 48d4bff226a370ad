// Package maps loads tile layouts: four CSV layers of integer cell codes per
// map, with -1 marking an empty cell.
package maps

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Layer names one of the four layout layers.
type Layer string

const (
	LayerBoundary Layer = "FloorBlocks"
	LayerGrass    Layer = "Grass"
	LayerObjects  Layer = "Objects"
	LayerEntities Layer = "Entities"
)

// Layers lists the layers in composition order.
var Layers = []Layer{LayerBoundary, LayerGrass, LayerObjects, LayerEntities}

// Empty is the code of an unused cell.
const Empty = -1

// ErrUnknownMap is returned when no layout exists for a map id.
var ErrUnknownMap = errors.New("maps: unknown map")

// Layout is a parsed map: one grid of codes per layer, all the same size.
type Layout struct {
	ID     string
	Cols   int
	Rows   int
	layers map[Layer][][]int
}

// NewLayout builds a layout from raw layer grids. Missing layers are empty;
// ragged rows are padded with Empty up to the widest row of any layer.
func NewLayout(id string, layers map[Layer][][]int) *Layout {
	l := &Layout{ID: id, layers: make(map[Layer][][]int, len(Layers))}
	for _, grid := range layers {
		l.Rows = max(l.Rows, len(grid))
		for _, row := range grid {
			l.Cols = max(l.Cols, len(row))
		}
	}
	for _, name := range Layers {
		src := layers[name]
		grid := make([][]int, l.Rows)
		for y := range grid {
			grid[y] = make([]int, l.Cols)
			for x := range grid[y] {
				grid[y][x] = Empty
				if y < len(src) && x < len(src[y]) {
					grid[y][x] = src[y][x]
				}
			}
		}
		l.layers[name] = grid
	}
	return l
}

// At returns the code at column x, row y of a layer, or Empty out of range.
func (l *Layout) At(layer Layer, x, y int) int {
	grid := l.layers[layer]
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return Empty
	}
	return grid[y][x]
}

// Each calls fn for every non-empty cell of a layer in row-major order.
func (l *Layout) Each(layer Layer, fn func(x, y, code int)) {
	for y, row := range l.layers[layer] {
		for x, code := range row {
			if code != Empty {
				fn(x, y, code)
			}
		}
	}
}

// Count returns the number of non-empty cells in a layer.
func (l *Layout) Count(layer Layer) int {
	n := 0
	l.Each(layer, func(int, int, int) { n++ })
	return n
}

// ParseCSV reads one layer: comma-separated integers, one row per line.
// Blank fields count as Empty.
func ParseCSV(r io.Reader) ([][]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var grid [][]int
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("maps: csv: %w", err)
		}
		row := make([]int, len(rec))
		for i, field := range rec {
			field = strings.TrimSpace(field)
			if field == "" {
				row[i] = Empty
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("maps: line %d col %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// FileName returns the CSV file name for a map layer. The default map uses
// the bare "map_<Layer>.csv" form.
func FileName(id string, layer Layer) string {
	if id == "" || id == "default" {
		return fmt.Sprintf("map_%s.csv", layer)
	}
	return fmt.Sprintf("map_%s_%s.csv", id, layer)
}
