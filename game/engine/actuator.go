package engine

// Actuator receives the board after every state-changing command
type Actuator interface {
	Actuate(snapshot *Snapshot)
	// Continue clears any win/lose overlay, called on restart and continue
	Continue()
}

// ScoreStore persists the best score
type ScoreStore interface {
	Get() int
	Set(score int)
}

// NopActuator discards everything
type NopActuator struct{}

func (NopActuator) Actuate(*Snapshot) {}
func (NopActuator) Continue()          {}

// MemoryScoreStore keeps the best score for the life of the process
type MemoryScoreStore struct {
	best int
}

// Get returns the stored best score
func (m *MemoryScoreStore) Get() int {
	return m.best
}

// Set stores score as the best score
func (m *MemoryScoreStore) Set(score int) {
	m.best = score
}

// ActuatorFunc adapts a function into an Actuator with a no-op Continue
type ActuatorFunc func(snapshot *Snapshot)

func (f ActuatorFunc) Actuate(snapshot *Snapshot) { f(snapshot) }
func (f ActuatorFunc) Continue()                  {}
