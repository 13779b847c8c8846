package setgame

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStartedGame(t *testing.T, memberCount int) *Game {
	t.Helper()
	g := NewGame("game1", "test game")
	for i := 0; i < memberCount; i++ {
		p := NewPlayer(fmt.Sprintf("conn%d", i), fmt.Sprintf("player%d", i))
		err := g.AddMember(p, i == 0)
		assert.NoError(t, err)
	}
	assert.NoError(t, g.Start())
	return g
}

// findMatch returns the descriptors of some legal match on the board. Start
// guarantees one exists.
func findMatch(t *testing.T, g *Game) []string {
	t.Helper()
	board := g.Board
	for i := 0; i < len(board); i++ {
		for j := i + 1; j < len(board); j++ {
			for k := j + 1; k < len(board); k++ {
				if IsMatch(board[i], board[j], board[k]) {
					return []string{board[i].String(), board[j].String(), board[k].String()}
				}
			}
		}
	}
	t.Fatal("board has no match")
	return nil
}

// findNonMatch returns the descriptors of three board cards that do not
// form a match. Any board of four or more distinct cards has one.
func findNonMatch(t *testing.T, g *Game) []string {
	t.Helper()
	board := g.Board
	for i := 0; i < len(board); i++ {
		for j := i + 1; j < len(board); j++ {
			for k := j + 1; k < len(board); k++ {
				if !IsMatch(board[i], board[j], board[k]) {
					return []string{board[i].String(), board[j].String(), board[k].String()}
				}
			}
		}
	}
	t.Fatal("board has no non-matching triple")
	return nil
}

func assertCardIntegrity(t *testing.T, g *Game, matchedAway int) {
	t.Helper()
	seen := make(map[Card]bool)
	for _, card := range g.Board {
		assert.False(t, seen[card], "duplicate card %s on board", card)
		seen[card] = true
	}
	for _, card := range g.deck.cards {
		assert.False(t, seen[card], "card %s on board and in deck", card)
		seen[card] = true
	}
	assert.Equal(t, 81-matchedAway, len(seen))
}

func TestStartDealsBoard(t *testing.T) {
	g := newStartedGame(t, 2)

	assert.Equal(t, InProgress, g.Status())
	assert.GreaterOrEqual(t, len(g.Board), 12)
	assert.Equal(t, 0, (len(g.Board)-12)%3, "board extends in threes")
	assert.True(t, g.HasMatch(), "dealt board must contain a match")
	assert.Equal(t, 81, len(g.Board)+g.DeckRemaining())
	assertCardIntegrity(t, g, 0)

	for _, m := range g.Members {
		assert.Equal(t, 0, m.Score)
	}
}

func TestStartTwiceFails(t *testing.T) {
	g := newStartedGame(t, 1)
	boardBefore := append([]Card(nil), g.Board...)

	assert.ErrorIs(t, g.Start(), ErrAlreadyStarted)
	assert.Equal(t, boardBefore, g.Board, "restart must not reshuffle")
}

func TestStartFinishedGameFails(t *testing.T) {
	g := NewGame("game1", "test game")
	g.Finish()
	assert.ErrorIs(t, g.Start(), ErrGameFinished)
}

func TestSubmitMatchLegal(t *testing.T) {
	g := newStartedGame(t, 2)
	cards := findMatch(t, g)

	result := g.SubmitMatch("conn0", cards)
	assert.Contains(t, []MatchResult{Matched, MatchedGameOver}, result)

	assert.Equal(t, 1, g.Members[0].Score)
	assert.Equal(t, 0, g.Members[1].Score)
	assertCardIntegrity(t, g, 3)

	// The matched cards left the game for good.
	for _, d := range cards {
		card, err := ParseCard(d)
		assert.NoError(t, err)
		assert.Negative(t, g.boardIndex(card))
	}
}

func TestSubmitMatchInvalidTriple(t *testing.T) {
	g := newStartedGame(t, 2)
	boardBefore := append([]Card(nil), g.Board...)
	cards := findNonMatch(t, g)

	assert.Equal(t, MatchInvalid, g.SubmitMatch("conn0", cards))
	assert.Equal(t, boardBefore, g.Board)
	assert.Equal(t, 0, g.Members[0].Score, "scores never decrease")
}

func TestSubmitMatchMalformed(t *testing.T) {
	g := newStartedGame(t, 1)
	boardBefore := append([]Card(nil), g.Board...)

	assert.Equal(t, MatchMalformed, g.SubmitMatch("conn0", []string{"0000", "11", "2222"}))
	assert.Equal(t, MatchMalformed, g.SubmitMatch("conn0", []string{"0000", "1111"}))
	assert.Equal(t, boardBefore, g.Board)
}

func TestSubmitMatchNotOnBoard(t *testing.T) {
	g := newStartedGame(t, 1)
	boardBefore := append([]Card(nil), g.Board...)

	onBoard := make(map[Card]bool)
	for _, card := range g.Board {
		onBoard[card] = true
	}
	var absent []string
	for _, card := range NewDeck().cards {
		if !onBoard[card] {
			absent = append(absent, card.String())
			if len(absent) == 3 {
				break
			}
		}
	}

	assert.Equal(t, MatchNotOnBoard, g.SubmitMatch("conn0", absent))
	assert.Equal(t, boardBefore, g.Board)
	assert.Equal(t, 0, g.Members[0].Score)
}

func TestSubmitMatchDuplicateDescriptors(t *testing.T) {
	g := newStartedGame(t, 1)
	d := g.Board[0].String()
	assert.Equal(t, MatchNotOnBoard, g.SubmitMatch("conn0", []string{d, d, d}))
}

// Playing matches until the deck runs out must eventually report
// MatchedGameOver, with every intermediate state keeping card integrity.
func TestPlayToExhaustion(t *testing.T) {
	g := newStartedGame(t, 2)

	matched := 0
	for {
		cards := findMatch(t, g)
		result := g.SubmitMatch("conn0", cards)
		matched += 3
		assertCardIntegrity(t, g, matched)

		if result == MatchedGameOver {
			break
		}
		assert.Equal(t, Matched, result)
		assert.True(t, g.HasMatch(), "game continues only while a match exists")
	}

	assert.Equal(t, 0, g.DeckRemaining())
	assert.False(t, g.HasMatch())
	assert.Equal(t, matched/3, g.Members[0].Score)
}

func TestRemoveMemberMatchesBothIdentifiers(t *testing.T) {
	g := NewGame("game1", "test game")
	p := NewPlayer("conn0", "alice")
	assert.NoError(t, g.AddMember(p, true))

	remaining, removed := g.RemoveMember("conn0", "bob")
	assert.False(t, removed)
	assert.Equal(t, 1, remaining)

	remaining, removed = g.RemoveMember("conn1", "alice")
	assert.False(t, removed)
	assert.Equal(t, 1, remaining)

	remaining, removed = g.RemoveMember("conn0", "alice")
	assert.True(t, removed)
	assert.Equal(t, 0, remaining)
	assert.Empty(t, p.GameID)
}

func TestFinishPicksStrictlyHighestScore(t *testing.T) {
	g := NewGame("game1", "test game")
	a := NewPlayer("conn0", "alice")
	b := NewPlayer("conn1", "bob")
	assert.NoError(t, g.AddMember(a, true))
	assert.NoError(t, g.AddMember(b, false))

	a.Score = 3
	b.Score = 1
	winner := g.Finish()
	assert.Same(t, a, winner)
	assert.Equal(t, Finished, g.Status())
}

func TestFinishTieHasNoWinner(t *testing.T) {
	g := NewGame("game1", "test game")
	a := NewPlayer("conn0", "alice")
	b := NewPlayer("conn1", "bob")
	assert.NoError(t, g.AddMember(a, true))
	assert.NoError(t, g.AddMember(b, false))

	a.Score = 2
	b.Score = 2
	assert.Nil(t, g.Finish())
}

func TestFinishEmptyRosterHasNoWinner(t *testing.T) {
	g := NewGame("game1", "test game")
	assert.Nil(t, g.Finish())
	assert.Equal(t, Finished, g.Status())
}

func TestFinishIsIdempotent(t *testing.T) {
	g := NewGame("game1", "test game")
	a := NewPlayer("conn0", "alice")
	b := NewPlayer("conn1", "bob")
	assert.NoError(t, g.AddMember(a, true))
	assert.NoError(t, g.AddMember(b, false))

	a.Score = 5
	first := g.Finish()
	assert.Same(t, a, first)

	// A score change after the game ended must not flip the result.
	b.Score = 10
	assert.Same(t, first, g.Finish())
}

func TestAddMemberToFinishedGameFails(t *testing.T) {
	g := NewGame("game1", "test game")
	g.Finish()
	assert.ErrorIs(t, g.AddMember(NewPlayer("conn0", "alice"), false), ErrGameFinished)
}

func TestAddMemberResetsScore(t *testing.T) {
	g := NewGame("game1", "test game")
	p := NewPlayer("conn0", "alice")
	p.Score = 7
	assert.NoError(t, g.AddMember(p, true))
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, "game1", p.GameID)
}
