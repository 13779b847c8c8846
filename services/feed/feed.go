package feed

import (
	"log"
	"time"

	redis_models "Setler/models/redis"
	"Setler/services/redis"

	"github.com/google/uuid"
)

// Service writes game event entries (join, leave, start, set, fail,
// create) to the per-game Redis feed. The directory calls AppendEvent
// under its command lock, so the write happens on a goroutine and
// failures are logged rather than propagated.
type Service struct {
	Redis *redis.RedisClient
}

func NewService(redisClient *redis.RedisClient) *Service {
	return &Service{Redis: redisClient}
}

func (s *Service) AppendEvent(gameID, username, kind, message string) {
	msg := &redis_models.FeedMessage{
		ID:       uuid.NewString(),
		GameID:   gameID,
		Username: username,
		Type:     kind,
		Message:  message,
		SentAt:   time.Now(),
	}
	go func() {
		if err := s.Redis.AppendFeedMessage(msg); err != nil {
			log.Printf("[FEED-ERROR] could not append %s entry for game %s: %v", kind, gameID, err)
		}
	}()
}
