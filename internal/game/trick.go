package game

import "tricks/internal/model"

// CardPoints returns the point value of a single card: fives are worth 5,
// tens 10, aces 15 and the queen of spades 30. Everything else is worth
// nothing.
func CardPoints(c model.Card) int {
	switch {
	case c.Rank == model.Five:
		return 5
	case c.Rank == model.Ten:
		return 10
	case c.Rank == model.Ace:
		return 15
	case c.Rank == model.Queen && c.Suit == model.Spades:
		return 30
	}
	return 0
}

// ResolveTrick determines the winner and point value of a completed trick.
// The suit of the first play leads; only plays of the lead suit can win,
// highest rank among them taking the trick. Points are summed over every
// card in the trick regardless of suit. Pure function, plays is not mutated.
func ResolveTrick(plays []model.Play) model.TrickSummary {
	if len(plays) == 0 {
		return model.TrickSummary{}
	}

	leadSuit := plays[0].Card.Suit
	winner := plays[0]
	points := 0

	for _, play := range plays {
		points += CardPoints(play.Card)
	}
	for _, play := range plays[1:] {
		if play.Card.Suit == leadSuit && play.Card.Outranks(winner.Card) {
			winner = play
		}
	}

	return model.TrickSummary{WinnerID: winner.PlayerID, Points: points}
}
