package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	redis_models "Setler/models/redis"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the go-redis client for the operations the server
// actually needs: per-game event feeds.
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// AppendFeedMessage pushes a feed entry onto the tail of a game's feed.
func (rc *RedisClient) AppendFeedMessage(msg *redis_models.FeedMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal feed message: %v", err)
	}
	if err := rc.Client.RPush(rc.Ctx, FormatFeedKey(msg.GameID), raw).Err(); err != nil {
		return fmt.Errorf("failed to append feed message for game %s: %v", msg.GameID, err)
	}
	return nil
}

// GetFeed returns a game's full feed in insertion order.
func (rc *RedisClient) GetFeed(gameID string) ([]redis_models.FeedMessage, error) {
	raws, err := rc.Client.LRange(rc.Ctx, FormatFeedKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed for game %s: %v", gameID, err)
	}
	feed := make([]redis_models.FeedMessage, 0, len(raws))
	for _, raw := range raws {
		var msg redis_models.FeedMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("corrupt feed entry for game %s: %v", gameID, err)
		}
		feed = append(feed, msg)
	}
	return feed, nil
}

// DeleteFeed drops a game's feed. Called once the game finishes.
func (rc *RedisClient) DeleteFeed(gameID string) error {
	if err := rc.Client.Del(rc.Ctx, FormatFeedKey(gameID)).Err(); err != nil {
		return fmt.Errorf("failed to delete feed for game %s: %v", gameID, err)
	}
	return nil
}
