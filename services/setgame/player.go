package setgame

// Player is a logged-in participant. A player belongs to at most one game
// at a time; GameID is empty while the player sits in the lobby waiting set.
type Player struct {
	ConnectionID string
	Username     string
	Score        int
	GameID       string
}

func NewPlayer(connectionID, username string) *Player {
	return &Player{ConnectionID: connectionID, Username: username}
}
