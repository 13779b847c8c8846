package setgame

import (
	"math/rand"

	game_constants "Setler/constants/game"
)

// Deck holds the cards a game has not dealt yet.
type Deck struct {
	cards []Card
}

// NewDeck builds the full 81-card universe, one card per attribute
// combination, in canonical order.
func NewDeck() *Deck {
	cards := make([]Card, 0, game_constants.DeckSize)
	for s := 0; s < game_constants.AttributeDomain; s++ {
		for c := 0; c < game_constants.AttributeDomain; c++ {
			for n := 0; n < game_constants.AttributeDomain; n++ {
				for f := 0; f < game_constants.AttributeDomain; f++ {
					cards = append(cards, Card{Shape: s, Color: c, Number: n, Fill: f})
				}
			}
		}
	}
	return &Deck{cards: cards}
}

// Shuffle permutes the remaining cards in place (Fisher-Yates).
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. The second return value is false
// once the deck is exhausted.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, true
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
