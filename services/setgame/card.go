package setgame

import (
	"fmt"

	game_constants "Setler/constants/game"
)

// Card is one of the 81 Set cards. Every attribute takes a value in {0,1,2}.
// Plain struct equality is structural equality, which is what board lookups
// and duplicate checks rely on.
type Card struct {
	Shape  int
	Color  int
	Number int
	Fill   int
}

// ParseCard decodes the wire descriptor of a card: a 4-digit string, one
// digit per attribute in shape/color/number/fill order (e.g. "0212").
func ParseCard(descriptor string) (Card, error) {
	if len(descriptor) != game_constants.CardAttributes {
		return Card{}, fmt.Errorf("card descriptor %q must have %d digits", descriptor, game_constants.CardAttributes)
	}
	var attrs [game_constants.CardAttributes]int
	for i := 0; i < game_constants.CardAttributes; i++ {
		d := int(descriptor[i] - '0')
		if d < 0 || d >= game_constants.AttributeDomain {
			return Card{}, fmt.Errorf("card descriptor %q has invalid digit at position %d", descriptor, i)
		}
		attrs[i] = d
	}
	return Card{Shape: attrs[0], Color: attrs[1], Number: attrs[2], Fill: attrs[3]}, nil
}

// String returns the wire descriptor of the card.
func (c Card) String() string {
	return fmt.Sprintf("%d%d%d%d", c.Shape, c.Color, c.Number, c.Fill)
}

func (c Card) attributes() [game_constants.CardAttributes]int {
	return [game_constants.CardAttributes]int{c.Shape, c.Color, c.Number, c.Fill}
}

// IsMatch reports whether the three cards form a legal match: for each of
// the four attributes, the three values are either all identical or all
// different. Identical cards never match (two equal values fail every
// attribute that differs on the third, and three equal cards are not three
// distinct cards on any board).
func IsMatch(a, b, c Card) bool {
	if a == b || b == c || a == c {
		return false
	}
	av, bv, cv := a.attributes(), b.attributes(), c.attributes()
	for i := 0; i < game_constants.CardAttributes; i++ {
		allEqual := av[i] == bv[i] && bv[i] == cv[i]
		allDistinct := av[i] != bv[i] && bv[i] != cv[i] && av[i] != cv[i]
		if !allEqual && !allDistinct {
			return false
		}
	}
	return true
}

// ThirdCard returns the unique card that completes a match with the two
// given cards: per attribute, the shared value when both agree, otherwise
// the remaining value of the domain.
func ThirdCard(a, b Card) Card {
	av, bv := a.attributes(), b.attributes()
	var tv [game_constants.CardAttributes]int
	for i := 0; i < game_constants.CardAttributes; i++ {
		if av[i] == bv[i] {
			tv[i] = av[i]
		} else {
			tv[i] = game_constants.AttributeDomain - av[i] - bv[i]
		}
	}
	return Card{Shape: tv[0], Color: tv[1], Number: tv[2], Fill: tv[3]}
}
