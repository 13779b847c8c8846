package handlers

import (
	"log"

	"Setler/services/directory"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleList broadcasts the full lobby snapshot: waiting players plus every
// live game with its roster.
func HandleList(dir *directory.Directory) func(args ...interface{}) {
	return func(args ...interface{}) {
		dir.HandleCommand(directory.CmdList, directory.Payload{})
	}
}

func HandleCreateGame(dir *directory.Directory, client *socket.Socket, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			log.Printf("[CREATE-ERROR] malformed payload from %s", connectionID)
			client.Emit("create-fail", gin.H{"reason": "missing game name"})
			return
		}
		dir.HandleCommand(directory.CmdCreateGame, directory.Payload{
			ConnectionID: connectionID,
			GameName:     stringField(m, "name"),
		})
	}
}

func HandleJoinGame(dir *directory.Directory, client *socket.Socket, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			log.Printf("[JOIN-ERROR] malformed payload from %s", connectionID)
			client.Emit("join-fail", gin.H{"reason": "missing game id"})
			return
		}
		dir.HandleCommand(directory.CmdJoinGame, directory.Payload{
			ConnectionID: connectionID,
			GameID:       stringField(m, "gameId"),
		})
	}
}

func HandleLeaveGame(dir *directory.Directory, client *socket.Socket, connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		m, ok := payloadMap(args)
		if !ok {
			log.Printf("[LEAVE-ERROR] malformed payload from %s", connectionID)
			client.Emit("leave-fail", gin.H{"reason": "missing game id"})
			return
		}
		dir.HandleCommand(directory.CmdLeaveGame, directory.Payload{
			ConnectionID: connectionID,
			GameID:       stringField(m, "gameId"),
		})
	}
}
