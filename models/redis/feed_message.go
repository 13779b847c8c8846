package redis

import "time"

// FeedMessage is one entry in a game's event feed (chat and system
// notices). Feeds live in Redis for the lifetime of the game only.
type FeedMessage struct {
	ID       string    `json:"id"`
	GameID   string    `json:"game_id"`
	Username string    `json:"username"`
	Type     string    `json:"type"` // "chat", "join", "leave", "start"
	Message  string    `json:"message"`
	SentAt   time.Time `json:"sent_at"`
}
