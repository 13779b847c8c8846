package handlers

import (
	"log"

	"Setler/services/directory"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

func HandleStartGame(dir *directory.Directory, client *socket.Socket, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			log.Printf("[START-ERROR] malformed payload from %s", connectionID)
			client.Emit("start-fail", gin.H{"reason": "missing game id"})
			return
		}
		dir.HandleCommand(directory.CmdStartGame, directory.Payload{
			ConnectionID: connectionID,
			GameID:       stringField(m, "gameId"),
		})
	}
}

// HandleSubmitMatch forwards a three-card nomination. The directory answers
// with match-success, match-invalid or match-fail depending on how far the
// submission got.
func HandleSubmitMatch(dir *directory.Directory, client *socket.Socket, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			log.Printf("[MATCH-ERROR] malformed payload from %s", connectionID)
			client.Emit("match-fail", gin.H{"reason": "missing cards"})
			return
		}
		dir.HandleCommand(directory.CmdSubmitMatch, directory.Payload{
			ConnectionID: connectionID,
			GameID:       stringField(m, "gameId"),
			Cards:        stringSliceField(m, "cards"),
		})
	}
}

func HandleDeleteGame(dir *directory.Directory, client *socket.Socket, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			log.Printf("[DELETE-ERROR] malformed payload from %s", connectionID)
			client.Emit("delete-fail", gin.H{"reason": "missing game id"})
			return
		}
		dir.HandleCommand(directory.CmdDeleteGame, directory.Payload{
			ConnectionID: connectionID,
			GameID:       stringField(m, "gameId"),
		})
	}
}
