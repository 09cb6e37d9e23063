package engine

import "github.com/wricardo/tile-merge-game/game/board"

// Move slides every tile as far as possible in direction, merging equal
// neighbours at most once per tile. If any tile changed cell a new tile is
// spawned and a snapshot is emitted. Moves are refused while the game is
// terminated.
func (e *GameEngine) Move(direction Direction) bool {
	if e.IsTerminated() || !direction.Valid() {
		return false
	}

	vector := direction.Vector()
	traversalX, traversalY := e.buildTraversals(vector)
	summary := &MoveSummary{Direction: direction}
	moved := false

	before := e.board.Clone()
	e.prepareTiles()

	for _, x := range traversalX {
		for _, y := range traversalY {
			cell := board.Position{X: x, Y: y}
			tile, ok := e.board.CellContent(cell)
			if !ok {
				continue
			}

			farthest, next := e.findFarthestPosition(cell, vector)
			other, hasNext := e.board.CellContent(next)

			if hasNext && other.Value == tile.Value && !other.Merged() {
				mover := tile.Clone()
				mover.UpdatePosition(next)

				merged := board.NewTile(e.newTileID(), next, tile.Value*2)
				merged.MergedFrom = []board.Tile{mover, other.Clone()}

				e.board.Insert(merged)
				e.board.Remove(tile)
				tile = mover

				e.score += merged.Value
				summary.ScoreGained += merged.Value
				summary.Merges = append(summary.Merges, merged.Clone())

				if merged.Value == e.config.WinValue {
					e.won = true
				}
			} else {
				tile = e.board.MoveTile(tile, farthest)
			}

			if tile.Position() != cell {
				moved = true
			}
		}
	}

	summary.Moved = moved
	e.lastMove = summary

	if !moved {
		e.board = before
		return false
	}

	if spawned, ok := e.AddRandomTile(); ok {
		summary.Spawned = &spawned
	}
	e.totalMoves++

	if !e.movesAvailable() {
		e.over = true
	}

	switch {
	case e.over:
		e.message = e.config.Messages.GameOver
	case e.won && !e.keepPlaying:
		e.message = e.config.Messages.Victory
	default:
		e.message = ""
	}

	summary.Won = e.won
	summary.Over = e.over

	e.actuate()
	return true
}

// prepareTiles clears merge info and records current positions
func (e *GameEngine) prepareTiles() {
	e.board.EachCell(func(_ board.Position, tile board.Tile, ok bool) {
		if !ok {
			return
		}
		tile.MergedFrom = nil
		tile.SavePosition()
		e.board.Insert(tile)
	})
}

// buildTraversals lists coordinates so that tiles nearest the destination
// edge are visited first
func (e *GameEngine) buildTraversals(vector board.Position) ([]int, []int) {
	size := e.board.Size()
	xs := make([]int, size)
	ys := make([]int, size)
	for i := 0; i < size; i++ {
		xs[i] = i
		ys[i] = i
	}

	if vector.X == 1 {
		reverse(xs)
	}
	if vector.Y == 1 {
		reverse(ys)
	}
	return xs, ys
}

// findFarthestPosition walks from cell along vector until the next cell is
// off the board or occupied. It returns the last free cell and the blocking
// one.
func (e *GameEngine) findFarthestPosition(cell, vector board.Position) (farthest, next board.Position) {
	previous := cell
	for {
		next = previous.Add(vector)
		if !e.board.WithinBounds(next) || !e.board.CellAvailable(next) {
			return previous, next
		}
		previous = next
	}
}

func (e *GameEngine) movesAvailable() bool {
	return e.board.CellsAvailable() || e.tileMatchesAvailable()
}

// tileMatchesAvailable reports whether two orthogonal neighbours hold equal values
func (e *GameEngine) tileMatchesAvailable() bool {
	found := false
	e.board.EachCell(func(pos board.Position, tile board.Tile, ok bool) {
		if found || !ok {
			return
		}
		for _, dir := range AllDirections {
			other, occupied := e.board.CellContent(pos.Add(dir.Vector()))
			if occupied && other.Value == tile.Value {
				found = true
				return
			}
		}
	})
	return found
}
