package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/tile-merge-game/game/board"
	"github.com/wricardo/tile-merge-game/game/engine"
	"github.com/wricardo/tile-merge-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tile Merge Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Merge Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide numbered tiles on a square board. Two tiles with the same number merge
into one with their sum. Reach the win tile (2048 on the classic board).

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current board
- move: Single move (up/down/left/right) - requires intent explanation
- bulk_move: Multiple moves at once - requires intent explanation
- restart_game: Start a new game in the session (best score is kept)
- continue_playing: Keep playing after reaching the win tile
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules
- describe_cell: Get detailed info about a specific cell and its neighbours

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use, e.g. classic, mini, big (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, score and status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide every tile in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Restart before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute multiple moves in sequence (at most %d)", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Restart before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_game",
		Description: "Start a new game in the session. The best score is kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "continue_playing",
		Description: "Keep playing after reaching the win tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleContinue)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about one cell: its tile value, its neighbours, and which of them it could merge with.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatSnapshot(session.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score, maxTile := 0, 0
		if s.Snapshot != nil {
			score = s.Snapshot.Metadata.Score
			maxTile = s.Snapshot.MaxTile()
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Score: %d, Max tile: %d, Created: %s)\n",
			s.ID, s.ConfigName, score, maxTile, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var snapshot engine.Snapshot
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snapshot); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSnapshot(&snapshot)
	if pm := computePossibleMoves(&snapshot); len(pm) > 0 {
		result += "\nPossible moves: " + strings.Join(pm, ",")
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	reset, _ := args["reset"].(bool)

	// intent is accepted and ignored

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	reset, _ := args["reset"].(bool)

	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message  string           `json:"message"`
		Snapshot *engine.Snapshot `json:"snapshot"`
	}

	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/restart", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.Snapshot))), nil
}

func (c *Client) handleContinue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message  string           `json:"message"`
		Snapshot *engine.Snapshot `json:"snapshot"`
	}

	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/continue", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := "Continuing past the win tile"
	if response.Snapshot != nil && !response.Snapshot.Metadata.Won {
		header = "Nothing to continue: the game has not been won"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", header, formatSnapshot(response.Snapshot))), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d, Win tile: %d\n\n",
			config.Name, config.ConfigID, config.Description, config.GridSize, config.GridSize, config.WinValue)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Tile Merge Game - Complete Instructions

GAME OBJECTIVE:
Slide numbered tiles around a square board. When two tiles with the same
number touch during a slide they merge into one tile with their sum. Create
the win tile (2048 on the classic 4x4 board) to win.

GAME MECHANICS:
• Every move slides ALL tiles as far as possible in one direction
• Two equal tiles that meet merge into one; a tile merges at most once per move
• Merges resolve from the leading edge: [2,2,2,_] moved left becomes [4,2,_,_]
• Each merge adds the new tile's value to your score
• After every move that changes the board a new tile (usually 2, sometimes 4) appears in a random empty cell
• A move that changes nothing is ignored: no new tile, no score, no move counted

WIN AND GAME OVER:
• Win: a tile reaches the configured win value. The game pauses; use continue_playing to keep going
• Game over: the board is full and no two neighbouring tiles are equal
• restart_game starts fresh; your best score for the configuration is kept

READING THE BOARD:
• Row 0 is the top row, column 0 is the left column
• Coordinates are (x, y) = (column, row)
• Empty cells are blank in the grid drawing and 0 in the grid array

🤖 STRATEGY FOR AI AGENTS:

🧱 CORNER STRATEGY:
- Pick one corner for your largest tile and keep it there
- Favour two directions (for example left and down); use a third sparingly
- Avoid the direction that pulls the largest tile out of its corner

📈 MONOTONIC ROWS:
- Keep values decreasing away from the corner along the edge row
- This chains merges: 64 next to 32 next to 16 collapses quickly

🔍 BEFORE EACH MOVE:
- Check which directions are possible (game_state lists them)
- Use describe_cell on your largest tile to see its neighbours
- Prefer moves that merge without opening the corner

🎮 API USAGE BEST PRACTICES:
- Use bulk_move for short planned sequences; it stops early on game over or a win
- Moves that change nothing do not stop a bulk move; check moves_applied
- A bulk move accepts at most 50 directions

MOVEMENT COMMANDS:
- up, down, left, right
- reset parameter restarts the game before moving

Good luck reaching 2048! 🧩`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required integers"), nil
	}

	var snapshot engine.Snapshot
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snapshot); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeCell(&snapshot, x, y)), nil
}

// describeCell reports a cell's tile and what each neighbour means for it
func describeCell(snapshot *engine.Snapshot, x, y int) string {
	size := snapshot.Size
	if x < 0 || x >= size || y < 0 || y >= size {
		return fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Grid size is %dx%d (0-%d for both x and y)",
			x, y, size, size, size-1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cell at position (%d, %d):\n━━━━━━━━━━━━━━━━━━━━━━━━\n", x, y)

	tile, occupied := snapshot.TileAt(x, y)
	if occupied {
		fmt.Fprintf(&b, "Tile: %d (id %d)\n", tile.Value, tile.ID)
		if tile.Value == snapshot.MaxTile() {
			b.WriteString("This is your largest tile.\n")
		}
	} else {
		b.WriteString("Tile: empty\n")
	}

	b.WriteString("\nNeighbours:\n")
	neighbours := engine.Neighbors(board.Position{X: x, Y: y}, size)
	for _, dir := range engine.AllDirections {
		pos, ok := neighbours[dir]
		if !ok {
			fmt.Fprintf(&b, "- %-5s edge of the board\n", dir)
			continue
		}

		n, nOccupied := snapshot.TileAt(pos.X, pos.Y)
		switch {
		case !nOccupied:
			fmt.Fprintf(&b, "- %-5s (%d,%d) empty\n", dir, pos.X, pos.Y)
		case occupied && n.Value == tile.Value:
			fmt.Fprintf(&b, "- %-5s (%d,%d) %d ✅ can merge into %d\n", dir, pos.X, pos.Y, n.Value, n.Value*2)
		default:
			fmt.Fprintf(&b, "- %-5s (%d,%d) %d\n", dir, pos.X, pos.Y, n.Value)
		}
	}

	return b.String()
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(session.Snapshot))
}

func formatSnapshot(snapshot *engine.Snapshot) string {
	if snapshot == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Score: %d | Best: %d | Moves: %d | Max tile: %d | Empty: %d\n\n",
		snapshot.Metadata.Score, snapshot.Metadata.BestScore, snapshot.TotalMoves,
		snapshot.MaxTile(), snapshot.EmptyCells()))

	result.WriteString(engine.RenderGrid(snapshot))

	switch {
	case snapshot.Metadata.Over:
		result.WriteString("\n💀 GAME OVER")
	case snapshot.Metadata.Won && snapshot.Metadata.Terminated:
		result.WriteString("\n🎉 YOU WIN! (continue_playing to keep going)")
	case snapshot.Metadata.Won:
		result.WriteString("\n🎉 Won, still playing")
	}

	if snapshot.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", snapshot.Message))
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = fmt.Sprintf("✓ Moved %s (+%d)\n", result.Direction, result.ScoreGained)
	} else {
		response = "✗ Nothing moved\n"
	}

	if result.Merges > 0 {
		response += fmt.Sprintf("Merges: %d\n", result.Merges)
	}
	if result.Spawned != nil {
		response += fmt.Sprintf("New tile: %d at (%d,%d)\n", result.Spawned.Value, result.Spawned.X, result.Spawned.Y)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatSnapshot(result.Snapshot)
	return response
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	size := 0
	configName := ""
	if result.Snapshot != nil {
		size = result.Snapshot.Size
		configName = result.Snapshot.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s • Grid: %dx%d\n",
		sessionID, configName, size, size))

	b.WriteString(fmt.Sprintf("Executed %d/%d moves (%d changed the board)\n",
		result.MovesExecuted, result.RequestedMoves, result.MovesApplied))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to the first %d moves\n", result.Limit))
	}
	b.WriteString(fmt.Sprintf("Score: %d → %d (+%d)\n", result.StartScore, result.EndScore, result.ScoreDelta))
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range result.Steps {
			b.WriteString(formatStepLine(s))
		}
	}

	if len(result.PossibleMoves) > 0 {
		b.WriteString("\nPossible moves: ")
		b.WriteString(strings.Join(result.PossibleMoves, ","))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatSnapshot(result.Snapshot))
	return b.String()
}

// formatStepLine renders a single compact step line
func formatStepLine(s service.StepInfo) string {
	status := "✗"
	if s.Moved {
		status = "✓"
	}
	line := fmt.Sprintf("%d. %s %s score=%d→%d max=%d", s.Idx, s.Dir, status, s.ScoreBefore, s.ScoreAfter, s.MaxTile)
	if s.Merges > 0 {
		line += fmt.Sprintf(" merges=%d", s.Merges)
	}
	if s.Won {
		line += " 🎉"
	}
	if s.Over {
		line += " 💀"
	}
	return line + "\n"
}

// computePossibleMoves lists the directions that would change the board
func computePossibleMoves(snapshot *engine.Snapshot) []string {
	if snapshot == nil || snapshot.Metadata.Terminated {
		return []string{}
	}

	var res []string
	for _, dir := range engine.AllDirections {
		if canSlide(snapshot, dir) {
			res = append(res, dir.String())
		}
	}
	return res
}

// canSlide reports whether any tile has an empty or equal neighbour in dir
func canSlide(snapshot *engine.Snapshot, dir engine.Direction) bool {
	for _, t := range snapshot.Tiles {
		next, ok := engine.Neighbors(t.Position(), snapshot.Size)[dir]
		if !ok {
			continue
		}
		n, occupied := snapshot.TileAt(next.X, next.Y)
		if !occupied || n.Value == t.Value {
			return true
		}
	}
	return false
}
