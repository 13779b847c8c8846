package records

import (
	"encoding/json"
	"log"

	models "Setler/models/postgres"
	"Setler/services/directory"
	"Setler/services/redis"

	"gorm.io/gorm"
)

// Service persists finished-game summaries and cleans up the game's Redis
// feed. It implements the directory's ResultSink interface.
type Service struct {
	DB    *gorm.DB
	Redis *redis.RedisClient
}

func NewService(db *gorm.DB, redisClient *redis.RedisClient) *Service {
	return &Service{DB: db, Redis: redisClient}
}

// RecordResult runs asynchronously: the directory calls it while holding
// its command lock, and neither the database write nor the feed cleanup
// should ever stall command processing.
func (s *Service) RecordResult(summary directory.GameSummary) {
	go func() {
		scores, err := json.Marshal(summary.Scores)
		if err != nil {
			log.Printf("[RECORDS-ERROR] marshaling scores for game %s: %v", summary.GameID, err)
			return
		}
		record := models.GameRecord{
			GameID:         summary.GameID,
			Name:           summary.Name,
			WinnerUsername: summary.Winner,
			Scores:         scores,
		}
		if s.DB != nil {
			if err := s.DB.Create(&record).Error; err != nil {
				log.Printf("[RECORDS-ERROR] persisting game %s: %v", summary.GameID, err)
			}
		}
		if s.Redis != nil {
			if err := s.Redis.DeleteFeed(summary.GameID); err != nil {
				log.Printf("[RECORDS-ERROR] %v", err)
			}
		}
	}()
}
