package game

import (
	"sync"

	"github.com/google/uuid"

	"tricks/internal/model"
)

const DefaultTargetScore = 75

// Game is the authoritative state machine for a single room. It owns the
// roster, hands, trick state and scores; callers serialize access through
// Mutex, one lock per room.
type Game struct {
	Mutex sync.Mutex

	code            string
	status          model.Status
	players         []*model.Player
	hands           map[string][]model.Card
	currentTrick    []model.Play
	trickHistory    []model.Trick
	trickNumber     int
	currentPlayerID string
	scores          map[string]int
	targetScore     int
	gameOver        bool
	winnerID        string
	lastTrick       *model.TrickSummary
}

// PlayResult describes an accepted card play. Rejections are reported as
// errors instead.
type PlayResult struct {
	Play          model.Play `json:"play"`
	NextPlayerID  string     `json:"nextPlayer"`
	TrickComplete bool       `json:"trickComplete"`
	TrickWinnerID string     `json:"trickWinner,omitempty"`
	TrickPoints   int        `json:"trickPoints,omitempty"`
	GameOver      bool       `json:"gameOver"`
	WinnerID      string     `json:"winner,omitempty"`
}

// PublicState is the room-wide view of a game: everything except hands.
type PublicState struct {
	Code            string              `json:"code"`
	Status          model.Status        `json:"status"`
	Players         []model.Player      `json:"players"`
	CurrentTrick    []model.Play        `json:"currentTrick"`
	TrickNumber     int                 `json:"trickNumber"`
	CurrentPlayerID string              `json:"currentPlayer"`
	Scores          map[string]int      `json:"scores"`
	TargetScore     int                 `json:"targetScore"`
	GameOver        bool                `json:"gameOver"`
	WinnerID        string              `json:"winner"`
	LastTrick       *model.TrickSummary `json:"lastTrick"`
}

// PlayerView is the private per-player projection: only the recipient's
// own hand is ever exposed.
type PlayerView struct {
	Hand     []model.Card `json:"hand"`
	PlayerID string       `json:"currentPlayerId"`
}

func NewGame(code string, targetScore int) *Game {
	if targetScore <= 0 {
		targetScore = DefaultTargetScore
	}
	return &Game{
		code:        code,
		status:      model.StatusWaiting,
		players:     make([]*model.Player, 0),
		hands:       make(map[string][]model.Card),
		scores:      make(map[string]int),
		targetScore: targetScore,
	}
}

func (g *Game) Code() string { return g.code }

func (g *Game) Status() model.Status { return g.status }

func (g *Game) PlayerCount() int { return len(g.players) }

func (g *Game) CurrentPlayerID() string { return g.currentPlayerID }

func (g *Game) GameOver() bool { return g.gameOver }

func (g *Game) WinnerID() string { return g.winnerID }

// AddPlayer appends a player to the roster with an empty hand and a zero
// score. Join-phase policy (rejecting joins after start) is enforced by the
// registry, not here.
func (g *Game) AddPlayer(name, connID string) *model.Player {
	player := &model.Player{
		ID:     uuid.NewString(),
		Name:   name,
		ConnID: connID,
	}
	g.players = append(g.players, player)
	g.hands[player.ID] = make([]model.Card, 0)
	g.scores[player.ID] = 0
	return player
}

// RemovePlayer drops a player and their hand/score entries. If they were
// the current player mid-game, the turn advances to whoever followed them
// in the pre-removal order, so the seat is skipped exactly once. Removing
// an unknown id reports ErrPlayerNotInGame and changes nothing.
func (g *Game) RemovePlayer(playerID string) error {
	previous := g.players
	found := false
	remaining := make([]*model.Player, 0, len(g.players))
	for _, p := range g.players {
		if p.ID == playerID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return ErrPlayerNotInGame
	}

	g.players = remaining
	delete(g.hands, playerID)
	delete(g.scores, playerID)

	if len(g.players) == 0 {
		g.status = model.StatusWaiting
		g.currentPlayerID = ""
		return nil
	}

	if g.status == model.StatusPlaying && g.currentPlayerID == playerID {
		next := nextPlayerID(playerID, previous)
		if _, stillHere := g.hands[next]; !stillHere {
			next = g.players[0].ID
		}
		g.currentPlayerID = next
	}
	return nil
}

// Start deals a fresh shuffled deck and opens play with the first player
// in join order.
func (g *Game) Start() error {
	if len(g.players) < 2 {
		return ErrInsufficientPlayers
	}

	g.dealCards()
	g.status = model.StatusPlaying
	g.currentPlayerID = g.players[0].ID
	g.trickNumber = 1
	return nil
}

// Restart re-enters playing with the same roster and target score: scores
// zeroed, trick state cleared, fresh deal. The same two-player minimum as
// Start applies.
func (g *Game) Restart() error {
	if len(g.players) < 2 {
		return ErrInsufficientPlayers
	}

	for _, p := range g.players {
		g.scores[p.ID] = 0
	}
	g.currentTrick = nil
	g.trickHistory = nil
	g.gameOver = false
	g.winnerID = ""
	g.lastTrick = nil

	g.dealCards()
	g.status = model.StatusPlaying
	g.currentPlayerID = g.players[0].ID
	g.trickNumber = 1
	return nil
}

func (g *Game) dealCards() {
	deck := Shuffle(StandardDeck())
	hands := Deal(deck, len(g.players))
	for i, p := range g.players {
		g.hands[p.ID] = hands[i]
		p.HandSize = len(hands[i])
	}
}

// PlayCard validates and applies one card play: the player must be on
// turn, hold the card, and follow the lead suit when able. Completing a
// trick resolves it, credits the winner, and hands them the lead.
func (g *Game) PlayCard(playerID string, card model.Card) (*PlayResult, error) {
	if g.currentPlayerID != playerID {
		return nil, ErrNotYourTurn
	}

	hand := g.hands[playerID]
	cardIndex := -1
	for i, c := range hand {
		if c.Equal(card) {
			cardIndex = i
			break
		}
	}
	if cardIndex == -1 {
		return nil, ErrCardNotInHand
	}

	if len(g.currentTrick) > 0 {
		leadSuit := g.currentTrick[0].Card.Suit
		if card.Suit != leadSuit {
			for _, c := range hand {
				if c.Suit == leadSuit {
					return nil, ErrMustFollowSuit
				}
			}
		}
	}

	g.hands[playerID] = append(hand[:cardIndex], hand[cardIndex+1:]...)
	for _, p := range g.players {
		if p.ID == playerID {
			p.HandSize--
			break
		}
	}

	play := model.Play{PlayerID: playerID, Card: card}
	g.currentTrick = append(g.currentTrick, play)

	result := &PlayResult{
		Play:         play,
		NextPlayerID: nextPlayerID(playerID, g.players),
	}

	if len(g.currentTrick) == len(g.players) {
		summary := g.resolveTrick()
		result.TrickComplete = true
		result.TrickWinnerID = summary.WinnerID
		result.TrickPoints = summary.Points
		result.NextPlayerID = summary.WinnerID

		g.checkGameOver()
		result.GameOver = g.gameOver
		result.WinnerID = g.winnerID
	}

	g.currentPlayerID = result.NextPlayerID
	return result, nil
}

// resolveTrick scores the completed current trick, appends it to the
// history and clears it for the next lead.
func (g *Game) resolveTrick() model.TrickSummary {
	summary := ResolveTrick(g.currentTrick)
	g.scores[summary.WinnerID] += summary.Points

	plays := make([]model.Play, len(g.currentTrick))
	copy(plays, g.currentTrick)
	g.trickHistory = append(g.trickHistory, model.Trick{
		Plays:    plays,
		WinnerID: summary.WinnerID,
		Points:   summary.Points,
	})
	g.lastTrick = &model.TrickSummary{WinnerID: summary.WinnerID, Points: summary.Points}

	g.currentTrick = nil
	g.trickNumber++
	return summary
}

// checkGameOver ends the game when a player reaches the target score, or
// when every hand is empty. Ties break deterministically: highest score
// first, then earliest in turn order.
func (g *Game) checkGameOver() {
	best := ""
	bestScore := -1
	for _, p := range g.players {
		score := g.scores[p.ID]
		if score >= g.targetScore && score > bestScore {
			best = p.ID
			bestScore = score
		}
	}
	if best != "" {
		g.gameOver = true
		g.winnerID = best
		g.status = model.StatusFinished
		return
	}

	for _, hand := range g.hands {
		if len(hand) > 0 {
			return
		}
	}

	for _, p := range g.players {
		if score := g.scores[p.ID]; score > bestScore {
			best = p.ID
			bestScore = score
		}
	}
	g.gameOver = true
	g.winnerID = best
	g.status = model.StatusFinished
}

// nextPlayerID returns the id after current in rotation over roster. If
// current is missing from roster the first player is returned; that
// fallback is deliberate, it keeps a live game pointed at a real seat.
func nextPlayerID(current string, roster []*model.Player) string {
	if len(roster) == 0 {
		return ""
	}
	for i, p := range roster {
		if p.ID == current {
			return roster[(i+1)%len(roster)].ID
		}
	}
	return roster[0].ID
}

// Players returns a snapshot of the roster in turn order.
func (g *Game) Players() []model.Player {
	players := make([]model.Player, len(g.players))
	for i, p := range g.players {
		players[i] = *p
	}
	return players
}

// Scores returns a copy of the score table.
func (g *Game) Scores() map[string]int {
	scores := make(map[string]int, len(g.scores))
	for id, s := range g.scores {
		scores[id] = s
	}
	return scores
}

// PublicState projects the room-wide view: full state minus hands.
func (g *Game) PublicState() PublicState {
	trick := make([]model.Play, len(g.currentTrick))
	copy(trick, g.currentTrick)

	var last *model.TrickSummary
	if g.lastTrick != nil {
		l := *g.lastTrick
		last = &l
	}

	return PublicState{
		Code:            g.code,
		Status:          g.status,
		Players:         g.Players(),
		CurrentTrick:    trick,
		TrickNumber:     g.trickNumber,
		CurrentPlayerID: g.currentPlayerID,
		Scores:          g.Scores(),
		TargetScore:     g.targetScore,
		GameOver:        g.gameOver,
		WinnerID:        g.winnerID,
		LastTrick:       last,
	}
}

// StateFor projects the private view for one player: their own hand only,
// never anyone else's.
func (g *Game) StateFor(playerID string) PlayerView {
	hand := make([]model.Card, len(g.hands[playerID]))
	copy(hand, g.hands[playerID])
	return PlayerView{Hand: hand, PlayerID: playerID}
}

// FindPlayer returns the roster entry for id, or nil.
func (g *Game) FindPlayer(playerID string) *model.Player {
	for _, p := range g.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}
