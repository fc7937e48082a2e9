package game

import (
	"crypto/rand"
	"log"
	"strings"
	"sync"

	"tricks/internal/database"
	"tricks/internal/model"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const codeLength = 6

// Manager is the session/room registry: it owns the table of live games,
// keyed by uppercase room code, and the reverse index from player id to
// room. The table lock guards only the maps; each game carries its own
// mutex for state mutations.
type Manager struct {
	mu          sync.Mutex
	games       map[string]*Game
	playerRooms map[string]string
	store       *database.Store
}

func NewManager(store *database.Store) *Manager {
	return &Manager{
		games:       make(map[string]*Game),
		playerRooms: make(map[string]string),
		store:       store,
	}
}

// JoinResult reports a successful join: the new player plus the full
// roster for the playerJoined broadcast.
type JoinResult struct {
	Code    string
	Player  model.Player
	Players []model.Player
}

// StartResult carries the room-wide state and the per-player private
// views produced by a successful start or restart.
type StartResult struct {
	State PublicState
	Views map[string]PlayerView
}

// PlayOutcome bundles an accepted play with the snapshots the adapter
// broadcasts: current scores, the resolved trick if one closed, and the
// roster for addressing.
type PlayOutcome struct {
	Result    *PlayResult
	Scores    map[string]int
	LastTrick *model.TrickSummary
	Players   []model.Player
}

// RemoveResult reports a player removal and who is left to notify.
type RemoveResult struct {
	Code        string
	Players     []model.Player
	GameDeleted bool
}

// CreateGame builds a new game, adds the creator as its first player and
// indexes them. The room code is a short shareable uppercase string.
func (m *Manager) CreateGame(playerName, connID string, targetScore int) (string, model.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.generateCode()
	g := NewGame(code, targetScore)

	g.Mutex.Lock()
	player := g.AddPlayer(playerName, connID)
	snapshot := *player
	g.Mutex.Unlock()

	m.games[code] = g
	m.playerRooms[player.ID] = code
	return code, snapshot
}

// JoinGame adds a player to an existing waiting game. Lookup is
// case-insensitive; joining after start is a policy failure here, not in
// the engine.
func (m *Manager) JoinGame(code, playerName, connID string) (*JoinResult, error) {
	g, actualCode, ok := m.lookup(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	g.Mutex.Lock()
	if g.Status() != model.StatusWaiting {
		g.Mutex.Unlock()
		return nil, ErrGameAlreadyStarted
	}
	player := g.AddPlayer(playerName, connID)
	result := &JoinResult{
		Code:    actualCode,
		Player:  *player,
		Players: g.Players(),
	}
	g.Mutex.Unlock()

	m.mu.Lock()
	m.playerRooms[player.ID] = actualCode
	m.mu.Unlock()
	return result, nil
}

// StartGame deals and opens play in the named room.
func (m *Manager) StartGame(code string) (*StartResult, error) {
	g, _, ok := m.lookup(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	g.Mutex.Lock()
	defer g.Mutex.Unlock()

	if err := g.Start(); err != nil {
		return nil, err
	}
	return startSnapshot(g), nil
}

// RestartGame resets a finished room to a fresh round with the same
// roster.
func (m *Manager) RestartGame(code string) (*StartResult, error) {
	g, _, ok := m.lookup(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	g.Mutex.Lock()
	defer g.Mutex.Unlock()

	if err := g.Restart(); err != nil {
		return nil, err
	}
	return startSnapshot(g), nil
}

func startSnapshot(g *Game) *StartResult {
	state := g.PublicState()
	views := make(map[string]PlayerView, len(state.Players))
	for _, p := range state.Players {
		views[p.ID] = g.StateFor(p.ID)
	}
	return &StartResult{State: state, Views: views}
}

// PlayCard delegates a play to the room's engine. When the play ends the
// game, the final result is recorded in the history store.
func (m *Manager) PlayCard(code, playerID string, card model.Card) (*PlayOutcome, error) {
	g, actualCode, ok := m.lookup(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	g.Mutex.Lock()
	result, err := g.PlayCard(playerID, card)
	if err != nil {
		g.Mutex.Unlock()
		return nil, err
	}
	outcome := &PlayOutcome{
		Result:  result,
		Scores:  g.Scores(),
		Players: g.Players(),
	}
	if result.TrickComplete {
		last := model.TrickSummary{WinnerID: result.TrickWinnerID, Points: result.TrickPoints}
		outcome.LastTrick = &last
	}
	g.Mutex.Unlock()

	if result.GameOver {
		m.recordResult(actualCode, outcome)
	}
	return outcome, nil
}

// RemovePlayer detaches a player from whatever room they are in, via the
// reverse index. Safe to call again for an already-removed player; the
// second call reports ErrPlayerNotInGame. The last player out destroys
// the room.
func (m *Manager) RemovePlayer(playerID string) (*RemoveResult, error) {
	m.mu.Lock()
	code, ok := m.playerRooms[playerID]
	if !ok {
		m.mu.Unlock()
		return nil, ErrPlayerNotInGame
	}
	g, exists := m.games[code]
	if !exists {
		delete(m.playerRooms, playerID)
		m.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	delete(m.playerRooms, playerID)

	g.Mutex.Lock()
	err := g.RemovePlayer(playerID)
	result := &RemoveResult{Code: code, Players: g.Players()}
	if g.PlayerCount() == 0 {
		delete(m.games, code)
		result.GameDeleted = true
	}
	g.Mutex.Unlock()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindPlayerByConnection resolves a raw connection id to its player and
// room; used for disconnect events and connection-scoped actions.
func (m *Manager) FindPlayerByConnection(connID string) (playerID, code string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for roomCode, g := range m.games {
		g.Mutex.Lock()
		for _, p := range g.Players() {
			if p.ConnID == connID {
				g.Mutex.Unlock()
				return p.ID, roomCode, true
			}
		}
		g.Mutex.Unlock()
	}
	return "", "", false
}

// RoomOf returns the room code a player is currently bound to.
func (m *Manager) RoomOf(playerID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.playerRooms[playerID]
	return code, ok
}

// RoomExists reports whether a room code resolves, case-insensitively.
func (m *Manager) RoomExists(code string) bool {
	_, _, ok := m.lookup(code)
	return ok
}

// Players returns the roster of a room, or nil if the code is unknown.
func (m *Manager) Players(code string) []model.Player {
	g, _, ok := m.lookup(code)
	if !ok {
		return nil
	}
	g.Mutex.Lock()
	defer g.Mutex.Unlock()
	return g.Players()
}

func (m *Manager) lookup(code string) (*Game, string, bool) {
	upper := strings.ToUpper(code)
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[upper]
	return g, upper, ok
}

func (m *Manager) recordResult(code string, outcome *PlayOutcome) {
	if m.store == nil {
		return
	}
	if err := m.store.RecordGameResult(code, outcome.Players, outcome.Scores, outcome.Result.WinnerID); err != nil {
		log.Printf("Failed to record result for room %s: %v", code, err)
	}
}

func (m *Manager) generateCode() string {
	for {
		buf := make([]byte, codeLength)
		rand.Read(buf)
		code := make([]byte, codeLength)
		for i, b := range buf {
			code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
		}
		if _, taken := m.games[string(code)]; !taken {
			return string(code)
		}
	}
}
