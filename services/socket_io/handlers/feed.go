package handlers

import (
	"log"
	"time"

	redis_models "Setler/models/redis"
	"Setler/services/directory"
	"Setler/services/redis"
	socketio_types "Setler/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleChat appends a chat line to the sender's game feed and pushes a
// feed-update to that game's members only. Players outside a game have no
// feed to write to.
func HandleChat(dir *directory.Directory, redisClient *redis.RedisClient, client *socket.Socket,
	sio *socketio_types.SocketServer, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			client.Emit("error", gin.H{"error": "missing message"})
			return
		}
		message := stringField(m, "message")
		if message == "" {
			client.Emit("error", gin.H{"error": "missing message"})
			return
		}

		gameID, username, ok := dir.PlayerGame(connectionID)
		if !ok {
			client.Emit("error", gin.H{"error": "you are not in a game"})
			return
		}

		msg := &redis_models.FeedMessage{
			ID:       uuid.NewString(),
			GameID:   gameID,
			Username: username,
			Type:     "chat",
			Message:  message,
			SentAt:   time.Now(),
		}
		if err := redisClient.AppendFeedMessage(msg); err != nil {
			log.Printf("[CHAT-ERROR] %v", err)
			client.Emit("error", gin.H{"error": "could not store message"})
			return
		}

		for _, memberConn := range dir.GameMemberConnections(gameID) {
			sio.SendTo(memberConn, "feed-update", gin.H{
				"gameId":  gameID,
				"message": msg,
			})
		}
	}
}

// HandleGetFeed returns a game's feed to the requester.
func HandleGetFeed(redisClient *redis.RedisClient, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			client.Emit("error", gin.H{"error": "missing game id"})
			return
		}
		gameID := stringField(m, "gameId")
		feed, err := redisClient.GetFeed(gameID)
		if err != nil {
			log.Printf("[FEED-ERROR] %v", err)
			client.Emit("error", gin.H{"error": "could not read feed"})
			return
		}
		client.Emit("feed-snapshot", gin.H{"gameId": gameID, "feed": feed})
	}
}
