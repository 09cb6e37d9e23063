package board

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by the vector v
func (p Position) Add(v Position) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// Tile is a numbered piece occupying one cell
type Tile struct {
	ID    int `json:"id"`
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`

	// PreviousPosition is where the tile sat before the current move
	PreviousPosition *Position `json:"previous_position,omitempty"`

	// MergedFrom holds the two tiles consumed to create this one, set only in
	// the move that created it
	MergedFrom []Tile `json:"merged_from,omitempty"`
}

// NewTile creates a tile at pos
func NewTile(id int, pos Position, value int) Tile {
	return Tile{ID: id, X: pos.X, Y: pos.Y, Value: value}
}

// Position returns the tile's coordinates
func (t Tile) Position() Position {
	return Position{X: t.X, Y: t.Y}
}

// SavePosition records the current coordinates as the previous position
func (t *Tile) SavePosition() {
	t.PreviousPosition = &Position{X: t.X, Y: t.Y}
}

// UpdatePosition moves the tile's coordinates to pos
func (t *Tile) UpdatePosition(pos Position) {
	t.X = pos.X
	t.Y = pos.Y
}

// Merged reports whether the tile was produced by a merge this move
func (t Tile) Merged() bool {
	return len(t.MergedFrom) > 0
}

// Clone returns a copy that shares no pointers with t
func (t Tile) Clone() Tile {
	c := t
	if t.PreviousPosition != nil {
		p := *t.PreviousPosition
		c.PreviousPosition = &p
	}
	if t.MergedFrom != nil {
		c.MergedFrom = make([]Tile, len(t.MergedFrom))
		for i, m := range t.MergedFrom {
			c.MergedFrom[i] = m.Clone()
		}
	}
	return c
}

func (t Tile) empty() bool {
	return t.Value == 0
}

// ValidValue reports whether v is a legal tile value: a power of two, at least 2
func ValidValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
