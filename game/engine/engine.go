package engine

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/wricardo/tile-merge-game/game/board"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Lifecycle
	Setup()
	Restart()
	ContinuePlaying()
	IsTerminated() bool

	// Movement operations
	Move(direction Direction) bool
	CanMove(direction Direction) bool
	GetPossibleMoves() []Direction
	BulkMove(moves []Direction) []bool

	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Snapshot() *Snapshot
	Score() int
	BestScore() int
	IsOver() bool
	IsWon() bool

	// Configuration
	GetConfig() *GameConfig
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access.
type GameEngine struct {
	config *GameConfig
	board  *board.Board

	score       int
	over        bool
	won         bool
	keepPlaying bool

	nextID     int
	totalMoves int
	message    string
	lastMove   *MoveSummary

	rng      *rand.Rand
	actuator Actuator
	scores   ScoreStore
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithActuator sets the renderer that receives snapshots
func WithActuator(a Actuator) Option {
	return func(e *GameEngine) {
		if a != nil {
			e.actuator = a
		}
	}
}

// WithScoreStore sets the best score store
func WithScoreStore(s ScoreStore) Option {
	return func(e *GameEngine) {
		if s != nil {
			e.scores = s
		}
	}
}

// WithRand uses src for every random decision
func WithRand(src rand.Source) Option {
	return func(e *GameEngine) {
		e.rng = rand.New(src)
	}
}

// WithSeed makes tile spawning reproducible
func WithSeed(seed uint64) Option {
	return WithRand(rand.NewSource(seed))
}

// NewEngine creates a new game engine with the provided configuration and
// starts the first game.
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:   config,
		nextID:   1,
		actuator: NopActuator{},
		scores:   &MemoryScoreStore{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	e.Setup()
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the classic configuration
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	e, err := NewEngine(DefaultConfig(), opts...)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return e
}

// SetActuator replaces the renderer. It does not emit a snapshot.
func (e *GameEngine) SetActuator(a Actuator) {
	if a == nil {
		a = NopActuator{}
	}
	e.actuator = a
}

// SetScoreStore replaces the best score store
func (e *GameEngine) SetScoreStore(s ScoreStore) {
	if s == nil {
		s = &MemoryScoreStore{}
	}
	e.scores = s
}

// Setup starts a fresh game: empty board, zeroed state, start tiles spawned
func (e *GameEngine) Setup() {
	e.board = board.New(e.config.GridSize)
	e.score = 0
	e.over = false
	e.won = false
	e.keepPlaying = false
	e.message = e.config.Messages.Welcome
	e.lastMove = nil

	for i := 0; i < e.config.StartTiles; i++ {
		e.AddRandomTile()
	}

	e.actuate()
}

// Restart clears the renderer overlay and starts a new game
func (e *GameEngine) Restart() {
	e.actuator.Continue()
	e.Setup()
}

// ContinuePlaying lets the player keep going after reaching the win value
func (e *GameEngine) ContinuePlaying() {
	e.keepPlaying = true
	if e.config.Messages.KeepPlaying != "" {
		e.message = e.config.Messages.KeepPlaying
	}
	e.actuator.Continue()
}

// IsTerminated reports whether moves are currently refused
func (e *GameEngine) IsTerminated() bool {
	return e.over || (e.won && !e.keepPlaying)
}

// AddRandomTile spawns a 2 (or a 4, with the configured probability) on a
// random empty cell. It does nothing on a full board.
func (e *GameEngine) AddRandomTile() (board.Tile, bool) {
	if !e.board.CellsAvailable() {
		return board.Tile{}, false
	}

	value := 2
	if e.rng.Float64() < e.config.FourProbability {
		value = 4
	}

	pos, ok := e.board.RandomAvailableCell(e.rng)
	if !ok {
		return board.Tile{}, false
	}

	tile := board.NewTile(e.newTileID(), pos, value)
	e.board.Insert(tile)
	return tile, true
}

func (e *GameEngine) newTileID() int {
	id := e.nextID
	e.nextID++
	return id
}

// actuate records the best score and hands the renderer a snapshot
func (e *GameEngine) actuate() {
	if e.score > e.scores.Get() {
		e.scores.Set(e.score)
	}
	e.actuator.Actuate(e.Snapshot())
}

// Snapshot returns the renderer's view of the current game
func (e *GameEngine) Snapshot() *Snapshot {
	return &Snapshot{
		Size:  e.board.Size(),
		Tiles: e.board.Tiles(),
		Grid:  e.board.Values(),
		Metadata: Metadata{
			Score:      e.score,
			Over:       e.over,
			Won:        e.won,
			BestScore:  e.scores.Get(),
			Terminated: e.IsTerminated(),
		},
		Message:    e.message,
		TotalMoves: e.totalMoves,
		ConfigName: e.config.Name,
	}
}

// GetState returns the serializable game state
func (e *GameEngine) GetState() *GameState {
	return &GameState{
		Size:        e.board.Size(),
		Tiles:       e.board.Tiles(),
		Score:       e.score,
		Over:        e.over,
		Won:         e.won,
		KeepPlaying: e.keepPlaying,
		NextTileID:  e.nextID,
		TotalMoves:  e.totalMoves,
		ConfigName:  e.config.Name,
		Message:     e.message,
	}
}

// SetState restores a persisted game. The board is rebuilt from the tile list
// and rejected if it is inconsistent with the engine's configuration.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("%w: state cannot be nil", ErrInvalidState)
	}
	if state.Size != e.config.GridSize {
		return fmt.Errorf("%w: size %d does not match config grid size %d", ErrInvalidState, state.Size, e.config.GridSize)
	}
	if state.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidState, state.Score)
	}

	tiles := make([]board.Tile, len(state.Tiles))
	maxID := 0
	for i, t := range state.Tiles {
		tiles[i] = t.Clone()
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	b, err := board.FromTiles(state.Size, tiles)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	e.board = b
	e.score = state.Score
	e.over = state.Over
	e.won = state.Won
	e.keepPlaying = state.KeepPlaying
	e.totalMoves = state.TotalMoves
	e.message = state.Message
	e.lastMove = nil
	e.nextID = state.NextTileID
	if e.nextID <= maxID {
		e.nextID = maxID + 1
	}
	return nil
}

// Score returns the current score
func (e *GameEngine) Score() int {
	return e.score
}

// BestScore returns the best score known to the score store
func (e *GameEngine) BestScore() int {
	return e.scores.Get()
}

// IsOver reports whether no moves remain
func (e *GameEngine) IsOver() bool {
	return e.over
}

// IsWon reports whether the win value has been reached in this game
func (e *GameEngine) IsWon() bool {
	return e.won
}

// KeepPlaying reports whether the player chose to continue after winning
func (e *GameEngine) KeepPlaying() bool {
	return e.keepPlaying
}

// Size returns the board size
func (e *GameEngine) Size() int {
	return e.board.Size()
}

// Board returns a copy of the board
func (e *GameEngine) Board() *board.Board {
	return e.board.Clone()
}

// TotalMoves returns the number of accepted moves across restarts
func (e *GameEngine) TotalMoves() int {
	return e.totalMoves
}

// LastMove returns a summary of the most recent Move call, or nil if none
func (e *GameEngine) LastMove() *MoveSummary {
	return e.lastMove
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// CanMove reports whether moving in direction would change the board
func (e *GameEngine) CanMove(direction Direction) bool {
	if e.IsTerminated() || !direction.Valid() {
		return false
	}

	vector := direction.Vector()
	can := false
	e.board.EachCell(func(pos board.Position, tile board.Tile, ok bool) {
		if can || !ok {
			return
		}
		next := pos.Add(vector)
		if !e.board.WithinBounds(next) {
			return
		}
		other, occupied := e.board.CellContent(next)
		if !occupied || other.Value == tile.Value {
			can = true
		}
	})
	return can
}

// GetPossibleMoves returns all directions that would change the board
func (e *GameEngine) GetPossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range AllDirections {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// BulkMove executes multiple moves in sequence, returning whether each one
// changed the board. It stops once the game is terminated.
func (e *GameEngine) BulkMove(moves []Direction) []bool {
	results := make([]bool, 0, len(moves))

	for _, direction := range moves {
		if e.IsTerminated() {
			break
		}
		results = append(results, e.Move(direction))
	}

	return results
}
