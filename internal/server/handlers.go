package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tricks/internal/database"
	"tricks/internal/game"
	"tricks/internal/model"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// client wraps one websocket connection. Writes are serialized through mu
// because broadcasts originate from other connections' read loops.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg model.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Printf("Failed to write to client: %v", err)
	}
}

// Handler is the protocol adapter: it translates websocket events into
// registry calls and fans results back out as unicast responses and room
// broadcasts.
type Handler struct {
	Manager     *game.Manager
	Store       *database.Store
	TargetScore int

	clientsMu sync.Mutex
	clients   map[string]*client
}

func NewHandler(m *game.Manager, s *database.Store, targetScore int) *Handler {
	return &Handler{
		Manager:     m,
		Store:       s,
		TargetScore: targetScore,
		clients:     make(map[string]*client),
	}
}

// CheckRoom reports whether a room code resolves to a live game.
func (h *Handler) CheckRoom(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exists": h.Manager.RoomExists(c.Param("code"))})
}

// RoomStats serves the all-time results recorded for a room code.
func (h *Handler) RoomStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.Store.GetRoomStats(c.Param("code"))})
}

// HandleGameWS upgrades the connection and runs its read loop. Each
// connection gets an opaque id; that id is the only link between the
// transport and the engine's player records.
func (h *Handler) HandleGameWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	connID := uuid.NewString()
	cl := &client{conn: ws}

	h.clientsMu.Lock()
	h.clients[connID] = cl
	h.clientsMu.Unlock()

	log.Printf("Client connected: %s", connID)

	defer func() {
		h.clientsMu.Lock()
		delete(h.clients, connID)
		h.clientsMu.Unlock()
		ws.Close()
		h.handleDisconnect(connID)
	}()

	for {
		var action model.Action
		if err := ws.ReadJSON(&action); err != nil {
			break
		}
		h.dispatch(cl, connID, action)
	}
}

// dispatch routes one inbound action. A panic anywhere below must not
// take down the read loop or other rooms, so it is converted into a
// generic failure response.
func (h *Handler) dispatch(cl *client, connID string, action model.Action) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic handling %s from %s: %v", action.Type, connID, r)
			cl.send(fail(action.Type, "internal server error"))
		}
	}()

	switch action.Type {
	case "game:create":
		h.handleCreate(cl, connID, action)
	case "game:join":
		h.handleJoin(cl, connID, action)
	case "game:start":
		h.handleStart(cl, connID, action)
	case "game:playCard":
		h.handlePlayCard(cl, action)
	case "game:rematch":
		h.handleRematch(cl, connID, action)
	default:
		cl.send(fail(action.Type, "unknown event"))
	}
}

func (h *Handler) handleCreate(cl *client, connID string, action model.Action) {
	code, player := h.Manager.CreateGame(action.PlayerName, connID, h.TargetScore)
	log.Printf("Game %s created by %s (%s)", code, player.Name, player.ID)

	cl.send(model.Message{Type: action.Type, Payload: gin.H{
		"success":  true,
		"roomCode": code,
		"player":   player,
		"message":  "Game created successfully",
	}})
}

func (h *Handler) handleJoin(cl *client, connID string, action model.Action) {
	result, err := h.Manager.JoinGame(action.RoomCode, action.PlayerName, connID)
	if err != nil {
		cl.send(fail(action.Type, err.Error()))
		return
	}
	log.Printf("Player %s (%s) joined game %s", result.Player.Name, result.Player.ID, result.Code)

	cl.send(model.Message{Type: action.Type, Payload: gin.H{
		"success":  true,
		"roomCode": result.Code,
		"player":   result.Player,
		"players":  result.Players,
		"message":  "Joined game successfully",
	}})

	h.broadcast(result.Players, connID, model.Message{Type: "game:playerJoined", Payload: gin.H{
		"roomCode": result.Code,
		"player":   result.Player,
		"players":  result.Players,
	}})
}

func (h *Handler) handleStart(cl *client, connID string, action model.Action) {
	_, code, ok := h.Manager.FindPlayerByConnection(connID)
	if !ok {
		cl.send(fail(action.Type, game.ErrPlayerNotInGame.Error()))
		return
	}

	result, err := h.Manager.StartGame(code)
	if err != nil {
		cl.send(fail(action.Type, err.Error()))
		return
	}
	log.Printf("Game %s started, first player %s", code, result.State.CurrentPlayerID)

	cl.send(model.Message{Type: action.Type, Payload: gin.H{"success": true}})
	h.announceDeal(result, "game:started")
}

func (h *Handler) handleRematch(cl *client, connID string, action model.Action) {
	_, code, ok := h.Manager.FindPlayerByConnection(connID)
	if !ok {
		cl.send(fail(action.Type, game.ErrPlayerNotInGame.Error()))
		return
	}

	result, err := h.Manager.RestartGame(code)
	if err != nil {
		cl.send(fail(action.Type, err.Error()))
		return
	}
	log.Printf("Game %s restarted", code)

	cl.send(model.Message{Type: action.Type, Payload: gin.H{"success": true}})
	h.announceDeal(result, "game:restarted")
}

// announceDeal broadcasts the shared state of a fresh deal, then unicasts
// each player their private hand.
func (h *Handler) announceDeal(result *game.StartResult, event string) {
	h.broadcast(result.State.Players, "", model.Message{Type: event, Payload: gin.H{
		"success":   true,
		"gameState": result.State,
	}})

	for _, p := range result.State.Players {
		view, ok := result.Views[p.ID]
		if !ok {
			continue
		}
		h.unicast(p.ConnID, model.Message{Type: "game:playerState", Payload: view})
	}
}

func (h *Handler) handlePlayCard(cl *client, action model.Action) {
	if action.Card == nil {
		cl.send(fail(action.Type, "missing card"))
		return
	}

	code, ok := h.Manager.RoomOf(action.PlayerID)
	if !ok {
		cl.send(fail(action.Type, game.ErrRoomNotFound.Error()))
		return
	}

	outcome, err := h.Manager.PlayCard(code, action.PlayerID, *action.Card)
	if err != nil {
		cl.send(fail(action.Type, err.Error()))
		return
	}

	result := outcome.Result
	payload := gin.H{
		"success":       true,
		"play":          result.Play,
		"nextPlayer":    result.NextPlayerID,
		"trickComplete": result.TrickComplete,
		"scores":        outcome.Scores,
		"gameOver":      result.GameOver,
		"message":       "Card played successfully",
	}
	if result.TrickComplete {
		payload["trickWinner"] = result.TrickWinnerID
		payload["trickPoints"] = result.TrickPoints
	}
	if result.GameOver {
		payload["winner"] = result.WinnerID
	}

	cl.send(model.Message{Type: action.Type, Payload: payload})
	h.broadcast(outcome.Players, "", model.Message{Type: "game:cardPlayed", Payload: payload})

	if result.TrickComplete {
		log.Printf("Trick won by %s in game %s for %d points", result.TrickWinnerID, code, result.TrickPoints)
		h.broadcast(outcome.Players, "", model.Message{Type: "game:trickComplete", Payload: gin.H{
			"winner":    result.TrickWinnerID,
			"points":    result.TrickPoints,
			"scores":    outcome.Scores,
			"lastTrick": outcome.LastTrick,
		}})
	}

	if result.GameOver {
		log.Printf("Game %s over, winner %s", code, result.WinnerID)
		h.broadcast(outcome.Players, "", model.Message{Type: "game:over", Payload: gin.H{
			"winner":   result.WinnerID,
			"scores":   outcome.Scores,
			"gameOver": true,
		}})
	}
}

// handleDisconnect is best-effort cleanup: the connection is already
// gone, so failures are logged and swallowed.
func (h *Handler) handleDisconnect(connID string) {
	playerID, code, ok := h.Manager.FindPlayerByConnection(connID)
	if !ok {
		log.Printf("Client disconnected: %s (not in a game)", connID)
		return
	}

	result, err := h.Manager.RemovePlayer(playerID)
	if err != nil {
		log.Printf("Failed to remove player %s from game %s: %v", playerID, code, err)
		return
	}

	log.Printf("Player %s removed from game %s after disconnect", playerID, code)
	if len(result.Players) > 0 {
		h.broadcast(result.Players, "", model.Message{Type: "game:playerLeft", Payload: gin.H{
			"playerId": playerID,
			"players":  result.Players,
		}})
	}
}

// broadcast sends msg to every roster member except the connection named
// by exclude; empty exclude means everyone.
func (h *Handler) broadcast(players []model.Player, exclude string, msg model.Message) {
	for _, p := range players {
		if p.ConnID == exclude {
			continue
		}
		h.unicast(p.ConnID, msg)
	}
}

func (h *Handler) unicast(connID string, msg model.Message) {
	h.clientsMu.Lock()
	cl, ok := h.clients[connID]
	h.clientsMu.Unlock()
	if ok {
		cl.send(msg)
	}
}

func fail(event, message string) model.Message {
	return model.Message{Type: event, Payload: gin.H{
		"success": false,
		"message": message,
	}}
}
