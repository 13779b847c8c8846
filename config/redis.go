package config

import (
	"log"
	"os"

	"Setler/services/redis"
)

// Connect to Redis
func Connect_redis() (*redis.RedisClient, error) {
	redisURI := os.Getenv("REDIS_URL")
	redisClient, err := redis.InitRedis(redisURI, 0)
	if err != nil {
		log.Printf("Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Println("Redis connection established")
	return redisClient, nil
}
