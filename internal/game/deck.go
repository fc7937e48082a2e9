package game

import (
	"math/rand"

	"tricks/internal/model"
)

// StandardDeck returns the 52 canonical (suit, rank) pairs in a fixed order.
func StandardDeck() []model.Card {
	deck := make([]model.Card, 0, 52)
	for _, suit := range model.Suits {
		for _, rank := range model.Ranks {
			deck = append(deck, model.Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle returns a Fisher-Yates permutation of deck without mutating it.
func Shuffle(deck []model.Card) []model.Card {
	shuffled := make([]model.Card, len(deck))
	copy(shuffled, deck)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal splits deck into playerCount contiguous hands. Every player gets
// floor(len/playerCount) cards; the last player also takes the remainder,
// so hand sizes differ when the deck does not divide evenly. That uneven
// split is the dealing policy, not an accident.
func Deal(deck []model.Card, playerCount int) [][]model.Card {
	if playerCount <= 0 {
		return nil
	}
	perPlayer := len(deck) / playerCount
	hands := make([][]model.Card, playerCount)
	for i := 0; i < playerCount; i++ {
		start := i * perPlayer
		end := start + perPlayer
		if i == playerCount-1 {
			end = len(deck)
		}
		hand := make([]model.Card, end-start)
		copy(hand, deck[start:end])
		hands[i] = hand
	}
	return hands
}
