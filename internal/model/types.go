package model

type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// rankOrder maps ranks to comparable values: 2 is lowest, Ace is highest.
var rankOrder = map[Rank]int{
	Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8,
	Nine: 9, Ten: 10, Jack: 11, Queen: 12, King: 13, Ace: 14,
}

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Equal compares cards by (suit, rank).
func (c Card) Equal(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// Outranks reports whether c beats other when both are of the same suit.
func (c Card) Outranks(other Card) bool {
	return rankOrder[c.Rank] > rankOrder[other.Rank]
}

type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ConnID   string `json:"-"`
	HandSize int    `json:"handSize"`
}

// Play is one card played by one player during the current trick.
type Play struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
}

// Trick is a completed round of plays, immutable once resolved.
type Trick struct {
	Plays    []Play `json:"plays"`
	WinnerID string `json:"winnerId"`
	Points   int    `json:"points"`
}

// TrickSummary is the winner/points snapshot kept for notifications.
type TrickSummary struct {
	WinnerID string `json:"winnerId"`
	Points   int    `json:"points"`
}

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Message is the outbound websocket envelope.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Action is the inbound websocket envelope. Fields are populated per event
// type; unused ones stay empty.
type Action struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName,omitempty"`
	RoomCode   string `json:"roomCode,omitempty"`
	PlayerID   string `json:"playerId,omitempty"`
	Card       *Card  `json:"card,omitempty"`
}

type PlayerStat struct {
	Name       string `json:"name"`
	TotalGames int    `json:"totalGames"`
	TotalScore int    `json:"totalScore"`
	Wins       int    `json:"wins"`
}
