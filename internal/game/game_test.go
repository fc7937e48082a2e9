package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tricks/internal/model"
)

// newPlayingGame builds a game already in the playing state with fixed
// hands, one per player, turn on the first player.
func newPlayingGame(targetScore int, hands ...[]model.Card) (*Game, []*model.Player) {
	g := NewGame("TEST42", targetScore)
	players := make([]*model.Player, len(hands))
	for i, hand := range hands {
		players[i] = g.AddPlayer("player", "conn")
		g.hands[players[i].ID] = hand
		players[i].HandSize = len(hand)
	}
	g.status = model.StatusPlaying
	g.currentPlayerID = players[0].ID
	g.trickNumber = 1
	return g, players
}

func TestStartRequiresTwoPlayers(t *testing.T) {
	assert := assert.New(t)

	g := NewGame("ABCDEF", 75)
	g.AddPlayer("Alice", "c1")

	assert.ErrorIs(g.Start(), ErrInsufficientPlayers)
	assert.Equal(model.StatusWaiting, g.Status())
}

func TestStartDealsAndFixesTurnOrder(t *testing.T) {
	assert := assert.New(t)

	g := NewGame("ABCDEF", 75)
	alice := g.AddPlayer("Alice", "c1")
	bob := g.AddPlayer("Bob", "c2")

	assert.NoError(g.Start())
	assert.Equal(model.StatusPlaying, g.Status())
	assert.Equal(alice.ID, g.CurrentPlayerID())
	assert.Equal(1, g.trickNumber)
	assert.Len(g.hands[alice.ID], 26)
	assert.Len(g.hands[bob.ID], 26)
	assert.Equal(26, alice.HandSize)
	assert.Equal(26, bob.HandSize)
}

func TestPlayCardRejectsOutOfTurn(t *testing.T) {
	assert := assert.New(t)

	g, players := newPlayingGame(75,
		[]model.Card{card(model.Hearts, model.Five)},
		[]model.Card{card(model.Hearts, model.Ace)},
	)

	_, err := g.PlayCard(players[1].ID, card(model.Hearts, model.Ace))
	assert.ErrorIs(err, ErrNotYourTurn)
}

func TestPlayCardRejectsCardNotInHand(t *testing.T) {
	assert := assert.New(t)

	g, players := newPlayingGame(75,
		[]model.Card{card(model.Hearts, model.Five)},
		[]model.Card{card(model.Hearts, model.Ace)},
	)

	_, err := g.PlayCard(players[0].ID, card(model.Clubs, model.Nine))
	assert.ErrorIs(err, ErrCardNotInHand)
}

func TestPlayCardMustFollowSuit(t *testing.T) {
	assert := assert.New(t)

	g, players := newPlayingGame(75,
		[]model.Card{card(model.Hearts, model.Five)},
		[]model.Card{card(model.Hearts, model.Ace), card(model.Spades, model.Queen)},
	)

	result, err := g.PlayCard(players[0].ID, card(model.Hearts, model.Five))
	assert.NoError(err)
	assert.False(result.TrickComplete)
	assert.Equal(players[1].ID, result.NextPlayerID)

	// Holding a heart, the queen of spades is not a legal follow.
	_, err = g.PlayCard(players[1].ID, card(model.Spades, model.Queen))
	assert.ErrorIs(err, ErrMustFollowSuit)

	result, err = g.PlayCard(players[1].ID, card(model.Hearts, model.Ace))
	assert.NoError(err)
	assert.True(result.TrickComplete)
	assert.Equal(players[1].ID, result.TrickWinnerID)
	assert.Equal(20, result.TrickPoints)
	assert.Equal(20, g.Scores()[players[1].ID])
}

func TestOffSuitAllowedWhenVoidInLeadSuit(t *testing.T) {
	assert := assert.New(t)

	g, players := newPlayingGame(75,
		[]model.Card{card(model.Hearts, model.Five), card(model.Hearts, model.Two)},
		[]model.Card{card(model.Spades, model.Queen), card(model.Clubs, model.Three)},
	)

	_, err := g.PlayCard(players[0].ID, card(model.Hearts, model.Five))
	assert.NoError(err)

	result, err := g.PlayCard(players[1].ID, card(model.Spades, model.Queen))
	assert.NoError(err)
	assert.True(result.TrickComplete)
	assert.Equal(players[0].ID, result.TrickWinnerID)
	assert.Equal(35, result.TrickPoints)
}

func TestWinnerLeadsNextTrick(t *testing.T) {
	assert := assert.New(t)

	g, players := newPlayingGame(75,
		[]model.Card{card(model.Hearts, model.Two), card(model.Clubs, model.Four)},
		[]model.Card{card(model.Hearts, model.King), card(model.Clubs, model.Six)},
	)

	g.PlayCard(players[0].ID, card(model.Hearts, model.Two))
	result, err := g.PlayCard(players[1].ID, card(model.Hearts, model.King))
	assert.NoError(err)
	assert.True(result.TrickComplete)
	assert.Equal(players[1].ID, result.TrickWinnerID)
	assert.Equal(players[1].ID, g.CurrentPlayerID())
	assert.Equal(2, g.trickNumber)
	assert.Len(g.trickHistory, 1)
}

func TestGameOverByTargetScore(t *testing.T) {
	assert := assert.New(t)

	g, players := newPlayingGame(20,
		[]model.Card{card(model.Hearts, model.Five), card(model.Hearts, model.Two)},
		[]model.Card{card(model.Spades, model.Queen), card(model.Clubs, model.Three)},
	)

	g.PlayCard(players[0].ID, card(model.Hearts, model.Five))
	result, err := g.PlayCard(players[1].ID, card(model.Spades, model.Queen))
	assert.NoError(err)

	// 35 points crosses the 20-point target immediately, with cards still
	// in hand.
	assert.True(result.GameOver)
	assert.Equal(players[0].ID, result.WinnerID)
	assert.True(g.GameOver())
	assert.Equal(players[0].ID, g.WinnerID())
	assert.Equal(model.StatusFinished, g.Status())
}

func TestGameOverWhenHandsEmpty(t *testing.T) {
	assert := assert.New(t)

	g, players := newPlayingGame(75,
		[]model.Card{card(model.Hearts, model.Five)},
		[]model.Card{card(model.Hearts, model.Ace)},
	)

	g.PlayCard(players[0].ID, card(model.Hearts, model.Five))
	result, err := g.PlayCard(players[1].ID, card(model.Hearts, model.Ace))
	assert.NoError(err)

	assert.True(result.GameOver)
	assert.Equal(players[1].ID, result.WinnerID)
	assert.Equal(model.StatusFinished, g.Status())
}

func TestGameOverTieBreaksOnTurnOrder(t *testing.T) {
	assert := assert.New(t)

	// Neither card scores, so the round ends 0-0 and the earliest player
	// in turn order takes the tie.
	g, players := newPlayingGame(75,
		[]model.Card{card(model.Hearts, model.Two)},
		[]model.Card{card(model.Hearts, model.Three)},
	)

	g.PlayCard(players[0].ID, card(model.Hearts, model.Two))
	result, err := g.PlayCard(players[1].ID, card(model.Hearts, model.Three))
	assert.NoError(err)

	assert.True(result.GameOver)
	assert.Equal(players[0].ID, result.WinnerID)
}

func TestRemoveCurrentPlayerAdvancesInPreRemovalOrder(t *testing.T) {
	assert := assert.New(t)

	g, players := newPlayingGame(75,
		[]model.Card{card(model.Hearts, model.Two)},
		[]model.Card{card(model.Hearts, model.Three)},
		[]model.Card{card(model.Hearts, model.Four)},
	)
	g.currentPlayerID = players[1].ID

	assert.NoError(g.RemovePlayer(players[1].ID))

	// The seat after the removed player gets the turn, not the first
	// player.
	assert.Equal(players[2].ID, g.CurrentPlayerID())
	assert.Equal(2, g.PlayerCount())
	assert.NotContains(g.hands, players[1].ID)
	assert.NotContains(g.scores, players[1].ID)
}

func TestRemoveLastPlayerResetsToWaiting(t *testing.T) {
	assert := assert.New(t)

	g := NewGame("ABCDEF", 75)
	p := g.AddPlayer("Alice", "c1")

	assert.NoError(g.RemovePlayer(p.ID))
	assert.Equal(model.StatusWaiting, g.Status())
	assert.Empty(g.CurrentPlayerID())
	assert.Zero(g.PlayerCount())
}

func TestRemoveUnknownPlayerIsNoOp(t *testing.T) {
	assert := assert.New(t)

	g := NewGame("ABCDEF", 75)
	g.AddPlayer("Alice", "c1")

	assert.ErrorIs(g.RemovePlayer("nobody"), ErrPlayerNotInGame)
	assert.Equal(1, g.PlayerCount())
}

func TestRestartPreservesRosterAndResetsScores(t *testing.T) {
	assert := assert.New(t)

	g := NewGame("ABCDEF", 75)
	alice := g.AddPlayer("Alice", "c1")
	bob := g.AddPlayer("Bob", "c2")
	assert.NoError(g.Start())

	g.scores[alice.ID] = 40
	g.scores[bob.ID] = 10
	g.gameOver = true
	g.winnerID = alice.ID
	g.status = model.StatusFinished

	assert.NoError(g.Restart())

	assert.Equal(model.StatusPlaying, g.Status())
	assert.Equal(alice.ID, g.CurrentPlayerID())
	assert.Equal(1, g.trickNumber)
	assert.False(g.GameOver())
	assert.Empty(g.WinnerID())
	assert.Zero(g.Scores()[alice.ID])
	assert.Zero(g.Scores()[bob.ID])
	assert.NotEmpty(g.hands[alice.ID])
	assert.NotEmpty(g.hands[bob.ID])

	ids := []string{g.Players()[0].ID, g.Players()[1].ID}
	assert.Equal([]string{alice.ID, bob.ID}, ids)
}

func TestStateForExposesOnlyOwnHand(t *testing.T) {
	assert := assert.New(t)

	g := NewGame("ABCDEF", 75)
	alice := g.AddPlayer("Alice", "c1")
	bob := g.AddPlayer("Bob", "c2")
	assert.NoError(g.Start())

	view := g.StateFor(alice.ID)
	assert.Equal(alice.ID, view.PlayerID)
	assert.Equal(g.hands[alice.ID], view.Hand)
	for _, c := range view.Hand {
		assert.NotContains(g.hands[bob.ID], c)
	}

	public := g.PublicState()
	assert.Len(public.Players, 2)
	assert.Equal(alice.ID, public.CurrentPlayerID)
}
