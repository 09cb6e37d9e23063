package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/tile-merge-game/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       sess.Engine.Snapshot(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if isNotFound(err) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Prefer the input configName if provided, otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().Str("session", session.ID).Str("config", configID).Msg("session created")

	return s.sessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if reset {
		sess.Engine.Restart()
		events = append(events, GameEvent{
			Type:      EventRestart,
			Message:   "Game restarted",
			Timestamp: time.Now(),
		})
	}

	wasWon := sess.Engine.IsWon()
	wasTerminated := sess.Engine.IsTerminated()
	success := sess.Engine.Move(dir)
	snap := sess.Engine.Snapshot()

	result := &MoveResult{
		Success:   success,
		Direction: dir.String(),
		Snapshot:  snap,
		Message:   snap.Message,
		Events:    events,
	}

	if success {
		summary := sess.Engine.LastMove()
		result.Events = append(result.Events, extractMoveEvents(summary, wasWon, snap)...)
		result.ScoreGained = summary.ScoreGained
		result.Merges = len(summary.Merges)
		result.Spawned = summary.Spawned
	} else {
		reason := noMoveReason(dir, wasTerminated, sess.Engine)
		result.Events = append(result.Events, GameEvent{
			Type:      EventNoMove,
			Message:   reason,
			Timestamp: time.Now(),
		})
		if result.Message == "" {
			result.Message = reason
		}
	}

	log.Debug().
		Str("session", sessionID).
		Str("dir", dir.String()).
		Bool("moved", success).
		Int("score", snap.Metadata.Score).
		Int("max_tile", snap.MaxTile()).
		Bool("won", snap.Metadata.Won).
		Bool("over", snap.Metadata.Over).
		Msg("move")

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist session after move")
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Restart()
		result.Events = append(result.Events, GameEvent{
			Type:      EventRestart,
			Message:   "Game restarted",
			Timestamp: time.Now(),
		})
	}

	result.StartScore = sess.Engine.Score()

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsTerminated() {
			result.StopReasonCode = terminationCode(sess.Engine)
			result.StoppedReason = fmt.Sprintf("stopped before move %d: %s", i+1, result.StopReasonCode)
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Success = false
			result.StopReasonCode = StopInvalid
			result.StoppedReason = fmt.Sprintf("move %d: %v", i+1, err)
			result.StoppedOnMove = i + 1
			break
		}

		wasWon := sess.Engine.IsWon()
		scoreBefore := sess.Engine.Score()
		moved := sess.Engine.Move(dir)
		result.MovesExecuted++

		step := StepInfo{
			Idx:         i + 1,
			Dir:         dir.String(),
			Moved:       moved,
			ScoreBefore: scoreBefore,
			ScoreAfter:  sess.Engine.Score(),
		}

		if moved {
			result.MovesApplied++
			summary := sess.Engine.LastMove()
			snap := sess.Engine.Snapshot()
			result.Events = append(result.Events, extractMoveEvents(summary, wasWon, snap)...)
			step.Merges = len(summary.Merges)
			step.MaxTile = snap.MaxTile()
			step.Won = summary.Won
			step.Over = summary.Over
		} else {
			step.MaxTile = sess.Engine.Board().MaxValue()
		}

		result.Steps = append(result.Steps, step)
	}

	snap := sess.Engine.Snapshot()
	result.Snapshot = snap
	result.EndScore = snap.Metadata.Score
	result.ScoreDelta = result.EndScore - result.StartScore
	result.Message = snap.Message

	if snap.Metadata.Terminated && result.StopReasonCode == "" {
		result.StopReasonCode = terminationCode(sess.Engine)
	}

	for _, dir := range sess.Engine.GetPossibleMoves() {
		result.PossibleMoves = append(result.PossibleMoves, dir.String())
	}

	log.Debug().
		Str("session", sessionID).
		Int("requested", result.RequestedMoves).
		Int("executed", result.MovesExecuted).
		Int("applied", result.MovesApplied).
		Int("score_delta", result.ScoreDelta).
		Str("stop", result.StopReasonCode).
		Msg("bulk move")

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist session after bulk moves")
	}

	return result, nil
}

// Restart starts a new game in the session
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Restart()

	// Auto-save session after restart
	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist session after restart")
	}

	return sess.Engine.Snapshot(), nil
}

// ContinuePlaying lets a session keep moving after reaching the win value
func (s *gameServiceImpl) ContinuePlaying(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.ContinuePlaying()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to persist session after continue")
	}

	return sess.Engine.Snapshot(), nil
}

// GetGameState retrieves the current game snapshot
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Snapshot(), nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractMoveEvents generates events from an accepted move
func extractMoveEvents(summary *engine.MoveSummary, wasWon bool, snap *engine.Snapshot) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("Moved %s, score %d (+%d)", summary.Direction, snap.Metadata.Score, summary.ScoreGained),
		Timestamp: now,
	}}

	for _, m := range summary.Merges {
		pos := m.Position()
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("Merged two %d tiles into %d at (%d,%d)", m.Value/2, m.Value, pos.X, pos.Y),
			Timestamp: now,
			Position:  &pos,
			Value:     m.Value,
		})
	}

	if summary.Spawned != nil {
		pos := summary.Spawned.Position()
		events = append(events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("New %d tile at (%d,%d)", summary.Spawned.Value, pos.X, pos.Y),
			Timestamp: now,
			Position:  &pos,
			Value:     summary.Spawned.Value,
		})
	}

	if summary.Won && !wasWon {
		events = append(events, GameEvent{
			Type:      EventWon,
			Message:   fmt.Sprintf("Reached %d!", snap.MaxTile()),
			Timestamp: now,
			Value:     snap.MaxTile(),
		})
	}

	if summary.Over {
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   fmt.Sprintf("No moves left. Final score %d", snap.Metadata.Score),
			Timestamp: now,
		})
	}

	return events
}

func noMoveReason(dir engine.Direction, wasTerminated bool, e *engine.GameEngine) string {
	if !wasTerminated {
		return fmt.Sprintf("Nothing can move %s", dir)
	}
	if e.IsOver() {
		return "Game over: restart to play again"
	}
	return "You won: continue playing or restart"
}

func terminationCode(e *engine.GameEngine) string {
	switch {
	case e.IsOver():
		return StopGameOver
	case e.IsWon() && !e.KeepPlaying():
		return StopWon
	default:
		return StopTerminated
	}
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "configuration not found")
}
