package engine

import "github.com/wricardo/tile-merge-game/game/board"

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// TileAt returns the tile at (x, y) in the snapshot
func (s *Snapshot) TileAt(x, y int) (board.Tile, bool) {
	for _, t := range s.Tiles {
		if t.X == x && t.Y == y {
			return t, true
		}
	}
	return board.Tile{}, false
}

// EmptyCells counts the cells without a tile
func (s *Snapshot) EmptyCells() int {
	return s.Size*s.Size - len(s.Tiles)
}

// MaxTile returns the highest tile value, zero on an empty board
func (s *Snapshot) MaxTile() int {
	max := 0
	for _, t := range s.Tiles {
		if t.Value > max {
			max = t.Value
		}
	}
	return max
}

// Neighbors returns the in-bounds orthogonal neighbours of pos on a board of
// the given size, in direction order
func Neighbors(pos board.Position, size int) map[Direction]board.Position {
	out := make(map[Direction]board.Position, 4)
	for _, dir := range AllDirections {
		n := pos.Add(dir.Vector())
		if n.X >= 0 && n.X < size && n.Y >= 0 && n.Y < size {
			out[dir] = n
		}
	}
	return out
}

// RenderGrid draws a snapshot's grid rows as text
func RenderGrid(s *Snapshot) string {
	b, err := board.FromTiles(s.Size, s.Tiles)
	if err != nil {
		return ""
	}
	return b.String()
}
