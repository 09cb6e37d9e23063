package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedIntner always returns the same index, clamped to n
type fixedIntner int

func (f fixedIntner) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func TestNew(t *testing.T) {
	b := New(4)

	require.Equal(t, 4, b.Size())
	assert.Len(t, b.AvailableCells(), 16)
	assert.True(t, b.CellsAvailable())
	assert.Empty(t, b.Tiles())
}

func TestNew_InvalidSize(t *testing.T) {
	assert.Panics(t, func() { New(0) })
}

func TestWithinBounds(t *testing.T) {
	b := New(3)

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"origin", Position{0, 0}, true},
		{"far corner", Position{2, 2}, true},
		{"negative x", Position{-1, 0}, false},
		{"negative y", Position{0, -1}, false},
		{"x too large", Position{3, 0}, false},
		{"y too large", Position{0, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.WithinBounds(tt.pos))
		})
	}
}

func TestCellContent(t *testing.T) {
	b := New(4)
	b.Insert(NewTile(1, Position{X: 1, Y: 2}, 8))

	t.Run("occupied", func(t *testing.T) {
		tile, ok := b.CellContent(Position{X: 1, Y: 2})
		require.True(t, ok)
		assert.Equal(t, 8, tile.Value)
		assert.Equal(t, Position{X: 1, Y: 2}, tile.Position())
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := b.CellContent(Position{X: 2, Y: 1})
		assert.False(t, ok)
	})

	t.Run("out of bounds is silently empty", func(t *testing.T) {
		_, ok := b.CellContent(Position{X: -1, Y: 9})
		assert.False(t, ok)
	})
}

func TestInsertRemove(t *testing.T) {
	b := New(2)
	tile := NewTile(7, Position{X: 1, Y: 0}, 2)

	b.Insert(tile)
	assert.True(t, b.CellOccupied(Position{X: 1, Y: 0}))
	assert.Len(t, b.AvailableCells(), 3)

	b.Remove(tile)
	assert.True(t, b.CellAvailable(Position{X: 1, Y: 0}))
	assert.Len(t, b.AvailableCells(), 4)

	// out-of-bounds insert is ignored
	b.Insert(NewTile(8, Position{X: 5, Y: 5}, 2))
	assert.Len(t, b.AvailableCells(), 4)
}

func TestMoveTile(t *testing.T) {
	b := New(4)
	tile := NewTile(1, Position{X: 3, Y: 0}, 4)
	b.Insert(tile)

	moved := b.MoveTile(tile, Position{X: 0, Y: 0})

	assert.Equal(t, Position{X: 0, Y: 0}, moved.Position())
	assert.False(t, b.CellOccupied(Position{X: 3, Y: 0}))

	got, ok := b.CellContent(Position{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, got.Position(), Position{X: 0, Y: 0})
}

func TestEachCell_Order(t *testing.T) {
	b := New(3)
	var visited []Position
	b.EachCell(func(pos Position, _ Tile, _ bool) {
		visited = append(visited, pos)
	})

	require.Len(t, visited, 9)
	assert.Equal(t, Position{0, 0}, visited[0])
	assert.Equal(t, Position{0, 1}, visited[1])
	assert.Equal(t, Position{1, 0}, visited[3])
	assert.Equal(t, Position{2, 2}, visited[8])

	seen := map[Position]bool{}
	for _, p := range visited {
		assert.False(t, seen[p], "cell %v visited twice", p)
		seen[p] = true
	}
}

func TestAvailableCells_Deterministic(t *testing.T) {
	b, err := FromRows([][]int{
		{2, 0},
		{0, 4},
	})
	require.NoError(t, err)

	assert.Equal(t, []Position{{X: 0, Y: 1}, {X: 1, Y: 0}}, b.AvailableCells())
	assert.Equal(t, b.AvailableCells(), b.AvailableCells())
}

func TestRandomAvailableCell(t *testing.T) {
	t.Run("picks from empty cells", func(t *testing.T) {
		b, err := FromRows([][]int{
			{2, 0},
			{0, 4},
		})
		require.NoError(t, err)

		pos, ok := b.RandomAvailableCell(fixedIntner(1))
		require.True(t, ok)
		assert.Equal(t, Position{X: 1, Y: 0}, pos)
		assert.True(t, b.CellAvailable(pos))
	})

	t.Run("full board returns none", func(t *testing.T) {
		b, err := FromRows([][]int{
			{2, 4},
			{8, 16},
		})
		require.NoError(t, err)

		_, ok := b.RandomAvailableCell(fixedIntner(0))
		assert.False(t, ok)
		assert.False(t, b.CellsAvailable())
	})
}

func TestFromRows(t *testing.T) {
	b, err := FromRows([][]int{
		{2, 0, 0},
		{0, 4, 0},
		{0, 0, 8},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, b.Size())
	assert.Equal(t, 14, b.Sum())
	assert.Equal(t, 8, b.MaxValue())
	assert.Equal(t, [][]int{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}}, b.Values())

	tile, ok := b.CellContent(Position{X: 2, Y: 2})
	require.True(t, ok)
	assert.Equal(t, 8, tile.Value)
}

func TestFromRows_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
	}{
		{"ragged", [][]int{{2, 0}, {0}}},
		{"not a power of two", [][]int{{3, 0}, {0, 0}}},
		{"value one", [][]int{{1, 0}, {0, 0}}},
		{"empty", [][]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows)
			assert.Error(t, err)
		})
	}
}

func TestFromTiles_RejectsInconsistentTiles(t *testing.T) {
	t.Run("shared cell", func(t *testing.T) {
		_, err := FromTiles(2, []Tile{
			NewTile(1, Position{0, 0}, 2),
			NewTile(2, Position{0, 0}, 4),
		})
		assert.Error(t, err)
	})

	t.Run("outside board", func(t *testing.T) {
		_, err := FromTiles(2, []Tile{NewTile(1, Position{2, 0}, 2)})
		assert.Error(t, err)
	})
}

func TestClone_IsIndependent(t *testing.T) {
	b := New(2)
	tile := NewTile(1, Position{0, 0}, 2)
	tile.SavePosition()
	b.Insert(tile)

	c := b.Clone()
	c.Remove(tile)

	assert.True(t, b.CellOccupied(Position{0, 0}))
	assert.False(t, c.CellOccupied(Position{0, 0}))

	orig, _ := b.CellContent(Position{0, 0})
	copied := orig.Clone()
	copied.PreviousPosition.X = 1
	assert.Equal(t, 0, orig.PreviousPosition.X)
}

func TestTilesAgreeWithCells(t *testing.T) {
	b, err := FromRows([][]int{
		{2, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 0},
		{16, 0, 0, 2},
	})
	require.NoError(t, err)

	for _, tile := range b.Tiles() {
		got, ok := b.CellContent(tile.Position())
		require.True(t, ok)
		assert.Equal(t, tile.ID, got.ID)
	}
}

func TestString(t *testing.T) {
	b, err := FromRows([][]int{
		{2, 0},
		{0, 2048},
	})
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, "    2 |")
	assert.Contains(t, out, " 2048 |")
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestValidValue(t *testing.T) {
	for _, v := range []int{2, 4, 8, 2048, 65536} {
		assert.True(t, ValidValue(v), "%d should be valid", v)
	}
	for _, v := range []int{-2, 0, 1, 3, 6, 100} {
		assert.False(t, ValidValue(v), "%d should be invalid", v)
	}
}
