package setgame

import (
	"errors"
	"fmt"

	game_constants "Setler/constants/game"
)

// Status is the lifecycle state of a game. Transitions are monotonic:
// Waiting -> InProgress -> Finished, never backwards.
type Status int

const (
	Waiting Status = iota
	InProgress
	Finished
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "WAITING"
	case InProgress:
		return "IN_PROGRESS"
	case Finished:
		return "FINISHED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MatchResult is the outcome of a match submission.
type MatchResult int

const (
	// MatchMalformed means at least one descriptor failed to parse.
	MatchMalformed MatchResult = iota
	// MatchNotOnBoard means the descriptors parsed but are not three
	// distinct cards currently on the board.
	MatchNotOnBoard
	// MatchInvalid means the three board cards do not form a legal match.
	MatchInvalid
	// Matched means the match was certified and the board was refilled.
	Matched
	// MatchedGameOver means the match was certified and no further match
	// is possible: the deck is empty and the remaining board has no match.
	MatchedGameOver
)

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrAlreadyStarted = errors.New("game has already started")
	ErrNotStarted     = errors.New("game has not started")
)

// Game is one play session: owner, ordered roster, board, undealt deck and
// lifecycle status. All methods are plain synchronous mutations; the
// session directory serializes access.
type Game struct {
	ID      string
	Name    string
	Owner   *Player
	Members []*Player
	Board   []Card

	deck   *Deck
	status Status

	// winner recorded on the first Finish call so repeated finishes
	// report the same result.
	winner   *Player
	finished bool
}

func NewGame(id, name string) *Game {
	return &Game{ID: id, Name: name, status: Waiting}
}

func (g *Game) Status() Status {
	return g.status
}

// AddMember appends a player to the roster. Joining a finished game is an
// error. The player's score is reset: scores are scoped to one game.
func (g *Game) AddMember(p *Player, isOwner bool) error {
	if g.status == Finished {
		return ErrGameFinished
	}
	p.Score = 0
	p.GameID = g.ID
	g.Members = append(g.Members, p)
	if isOwner {
		g.Owner = p
	}
	return nil
}

// RemoveMember removes the roster entry matching both the connection id and
// the username. It returns the remaining member count and whether a member
// was actually removed, so the caller can decide to finish an empty game.
func (g *Game) RemoveMember(connectionID, username string) (int, bool) {
	for i, m := range g.Members {
		if m.ConnectionID == connectionID && m.Username == username {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			m.GameID = ""
			return len(g.Members), true
		}
	}
	return len(g.Members), false
}

// MemberByConnection returns the roster entry for a connection id, or nil.
func (g *Game) MemberByConnection(connectionID string) *Player {
	for _, m := range g.Members {
		if m.ConnectionID == connectionID {
			return m
		}
	}
	return nil
}

// Start deals the opening board from a freshly shuffled deck and moves the
// game to InProgress. Only a Waiting game can be started; an in-progress
// game is never reshuffled.
func (g *Game) Start() error {
	switch g.status {
	case InProgress:
		return ErrAlreadyStarted
	case Finished:
		return ErrGameFinished
	}

	g.deck = NewDeck()
	g.deck.Shuffle()
	g.Board = g.Board[:0]
	for _, m := range g.Members {
		m.Score = 0
	}

	g.dealTo(game_constants.BoardTargetSize)
	// A dealt board can still be matchless; keep extending by threes until
	// a match exists or the deck runs dry.
	for !g.HasMatch() && g.deck.Remaining() > 0 {
		g.dealTo(len(g.Board) + 3)
	}

	g.status = InProgress
	return nil
}

// SubmitMatch evaluates three card descriptors nominated by the player on
// the given connection. On a certified match the three cards leave the
// board permanently, the player scores one point and the board is refilled
// from the deck.
func (g *Game) SubmitMatch(connectionID string, descriptors []string) MatchResult {
	if len(descriptors) != 3 {
		return MatchMalformed
	}

	var picked [3]Card
	for i, d := range descriptors {
		card, err := ParseCard(d)
		if err != nil {
			return MatchMalformed
		}
		picked[i] = card
	}

	if picked[0] == picked[1] || picked[1] == picked[2] || picked[0] == picked[2] {
		return MatchNotOnBoard
	}
	var indices [3]int
	for i, card := range picked {
		idx := g.boardIndex(card)
		if idx < 0 {
			return MatchNotOnBoard
		}
		indices[i] = idx
	}

	if !IsMatch(picked[0], picked[1], picked[2]) {
		return MatchInvalid
	}

	// Remove highest index first so the lower indices stay valid.
	if indices[0] < indices[1] {
		indices[0], indices[1] = indices[1], indices[0]
	}
	if indices[0] < indices[2] {
		indices[0], indices[2] = indices[2], indices[0]
	}
	if indices[1] < indices[2] {
		indices[1], indices[2] = indices[2], indices[1]
	}
	for _, idx := range indices {
		g.Board = append(g.Board[:idx], g.Board[idx+1:]...)
	}

	if m := g.MemberByConnection(connectionID); m != nil {
		m.Score += game_constants.MatchReward
	}

	g.dealTo(game_constants.BoardTargetSize)
	for !g.HasMatch() {
		if g.deck.Remaining() == 0 {
			return MatchedGameOver
		}
		g.dealTo(len(g.Board) + 3)
	}
	return Matched
}

// Finish moves the game to Finished and reports the winner: the member with
// the strictly highest score. A tie or an empty roster yields no winner.
// Finishing an already finished game returns the recorded winner unchanged.
func (g *Game) Finish() *Player {
	if g.finished {
		return g.winner
	}
	g.finished = true
	g.status = Finished

	var best *Player
	tied := false
	for _, m := range g.Members {
		switch {
		case best == nil || m.Score > best.Score:
			best = m
			tied = false
		case m.Score == best.Score:
			tied = true
		}
	}
	if best != nil && !tied {
		g.winner = best
	}
	return g.winner
}

// HasMatch reports whether any three cards on the board form a legal match.
// For every ordered pair the completing third card is unique, so a map
// lookup replaces the inner loop.
func (g *Game) HasMatch() bool {
	onBoard := make(map[Card]int, len(g.Board))
	for i, card := range g.Board {
		onBoard[card] = i
	}
	for i := 0; i < len(g.Board); i++ {
		for j := i + 1; j < len(g.Board); j++ {
			third := ThirdCard(g.Board[i], g.Board[j])
			if k, ok := onBoard[third]; ok && k != i && k != j {
				return true
			}
		}
	}
	return false
}

// DeckRemaining returns the number of undealt cards, 0 before Start.
func (g *Game) DeckRemaining() int {
	if g.deck == nil {
		return 0
	}
	return g.deck.Remaining()
}

// Scores returns the current username -> score table.
func (g *Game) Scores() map[string]int {
	scores := make(map[string]int, len(g.Members))
	for _, m := range g.Members {
		scores[m.Username] = m.Score
	}
	return scores
}

// BoardDescriptors returns the board as wire descriptors, in board order.
func (g *Game) BoardDescriptors() []string {
	out := make([]string, len(g.Board))
	for i, card := range g.Board {
		out[i] = card.String()
	}
	return out
}

// dealTo draws from the deck until the board holds target cards or the deck
// is exhausted.
func (g *Game) dealTo(target int) {
	for len(g.Board) < target {
		card, ok := g.deck.Draw()
		if !ok {
			return
		}
		g.Board = append(g.Board, card)
	}
}

func (g *Game) boardIndex(card Card) int {
	for i, c := range g.Board {
		if c == card {
			return i
		}
	}
	return -1
}
