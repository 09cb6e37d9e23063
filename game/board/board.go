// Package board implements the square grid that holds the game's tiles.
//
// The board is the single source of truth for tile placement. Tiles are stored
// by value in a slice indexed by coordinate, and the board rewrites a tile's
// X/Y whenever it stores it, so a tile read back from the board always agrees
// with the cell that holds it. Tile identity is carried by Tile.ID.
//
// The board knows nothing about game rules: it offers cell queries, placement
// primitives, and random empty-cell selection.
package board

import (
	"fmt"
	"strings"
)

// Intner is the subset of a random source needed to pick a cell.
type Intner interface {
	Intn(n int) int
}

// Board is a size x size grid of optional tiles
type Board struct {
	size  int
	cells []Tile
}

// New creates an empty board of the given size
func New(size int) *Board {
	if size < 1 {
		panic(fmt.Sprintf("board: size must be positive, got %d", size))
	}
	b := &Board{size: size}
	b.Build()
	return b
}

// FromTiles builds a board from a list of tiles, rejecting tiles that are out
// of bounds, share a cell, or carry an invalid value.
func FromTiles(size int, tiles []Tile) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("board size must be positive, got %d", size)
	}
	b := New(size)
	for _, t := range tiles {
		pos := t.Position()
		if !b.WithinBounds(pos) {
			return nil, fmt.Errorf("tile %d at (%d,%d) is outside a %dx%d board", t.ID, pos.X, pos.Y, size, size)
		}
		if !ValidValue(t.Value) {
			return nil, fmt.Errorf("tile %d at (%d,%d) has invalid value %d", t.ID, pos.X, pos.Y, t.Value)
		}
		if b.CellOccupied(pos) {
			return nil, fmt.Errorf("cell (%d,%d) holds more than one tile", pos.X, pos.Y)
		}
		b.Insert(t)
	}
	return b, nil
}

// FromRows builds a board from rows of values indexed rows[y][x]. Zero means
// an empty cell. Tiles receive IDs 1..n in row-major order.
func FromRows(rows [][]int) (*Board, error) {
	size := len(rows)
	var tiles []Tile
	id := 1
	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), size)
		}
		for x, v := range row {
			if v == 0 {
				continue
			}
			tiles = append(tiles, NewTile(id, Position{X: x, Y: y}, v))
			id++
		}
	}
	return FromTiles(size, tiles)
}

// Build resets the board to an empty grid
func (b *Board) Build() {
	b.cells = make([]Tile, b.size*b.size)
}

// Size returns the length of one side of the board
func (b *Board) Size() int {
	return b.size
}

func (b *Board) index(pos Position) int {
	return pos.Y*b.size + pos.X
}

// WithinBounds reports whether pos lies on the board
func (b *Board) WithinBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < b.size &&
		pos.Y >= 0 && pos.Y < b.size
}

// CellContent returns the tile at pos. Empty and out-of-bounds cells both
// report false.
func (b *Board) CellContent(pos Position) (Tile, bool) {
	if !b.WithinBounds(pos) {
		return Tile{}, false
	}
	t := b.cells[b.index(pos)]
	if t.empty() {
		return Tile{}, false
	}
	return t, true
}

// CellOccupied reports whether pos holds a tile
func (b *Board) CellOccupied(pos Position) bool {
	_, ok := b.CellContent(pos)
	return ok
}

// CellAvailable reports whether pos is free. Out-of-bounds cells count as
// available, callers pair this with WithinBounds.
func (b *Board) CellAvailable(pos Position) bool {
	return !b.CellOccupied(pos)
}

// AvailableCells returns every empty cell, x-major then y
func (b *Board) AvailableCells() []Position {
	var cells []Position
	b.EachCell(func(pos Position, _ Tile, ok bool) {
		if !ok {
			cells = append(cells, pos)
		}
	})
	return cells
}

// CellsAvailable reports whether at least one cell is empty
func (b *Board) CellsAvailable() bool {
	for _, t := range b.cells {
		if t.empty() {
			return true
		}
	}
	return false
}

// RandomAvailableCell picks an empty cell uniformly. It returns false when the
// board is full.
func (b *Board) RandomAvailableCell(rng Intner) (Position, bool) {
	cells := b.AvailableCells()
	if len(cells) == 0 {
		return Position{}, false
	}
	return cells[rng.Intn(len(cells))], true
}

// Insert stores a tile at its own coordinates. Tiles outside the board are
// ignored.
func (b *Board) Insert(t Tile) {
	pos := t.Position()
	if !b.WithinBounds(pos) {
		return
	}
	b.cells[b.index(pos)] = t
}

// Remove clears the cell at the tile's coordinates
func (b *Board) Remove(t Tile) {
	pos := t.Position()
	if !b.WithinBounds(pos) {
		return
	}
	b.cells[b.index(pos)] = Tile{}
}

// MoveTile relocates a tile and returns it with its updated coordinates
func (b *Board) MoveTile(t Tile, to Position) Tile {
	b.Remove(t)
	t.UpdatePosition(to)
	b.Insert(t)
	return t
}

// EachCell visits every coordinate once, x-major then y, passing the tile
// stored there if any.
func (b *Board) EachCell(fn func(pos Position, t Tile, ok bool)) {
	for x := 0; x < b.size; x++ {
		for y := 0; y < b.size; y++ {
			pos := Position{X: x, Y: y}
			t := b.cells[b.index(pos)]
			fn(pos, t, !t.empty())
		}
	}
}

// Tiles returns the occupied cells in EachCell order
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, len(b.cells))
	b.EachCell(func(_ Position, t Tile, ok bool) {
		if ok {
			tiles = append(tiles, t.Clone())
		}
	})
	return tiles
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	c := &Board{size: b.size, cells: make([]Tile, len(b.cells))}
	for i, t := range b.cells {
		c.cells[i] = t.Clone()
	}
	return c
}

// Values returns tile values as rows[y][x], zero for empty cells
func (b *Board) Values() [][]int {
	rows := make([][]int, b.size)
	for y := range rows {
		rows[y] = make([]int, b.size)
		for x := range rows[y] {
			rows[y][x] = b.cells[b.index(Position{X: x, Y: y})].Value
		}
	}
	return rows
}

// Sum adds up every tile value on the board
func (b *Board) Sum() int {
	sum := 0
	for _, t := range b.cells {
		sum += t.Value
	}
	return sum
}

// MaxValue returns the largest tile value, or zero on an empty board
func (b *Board) MaxValue() int {
	max := 0
	for _, t := range b.cells {
		if t.Value > max {
			max = t.Value
		}
	}
	return max
}

// String renders the board as ASCII art
func (b *Board) String() string {
	var sb strings.Builder
	line := "+" + strings.Repeat("------+", b.size) + "\n"
	sb.WriteString(line)
	for y := 0; y < b.size; y++ {
		sb.WriteString("|")
		for x := 0; x < b.size; x++ {
			v := b.cells[b.index(Position{X: x, Y: y})].Value
			if v == 0 {
				sb.WriteString("      |")
			} else {
				sb.WriteString(fmt.Sprintf("%5d |", v))
			}
		}
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return sb.String()
}
