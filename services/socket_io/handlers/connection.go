package handlers

import (
	"log"

	"Setler/services/directory"
	socketio_types "Setler/services/socket_io/types"
)

// HandleDisconnecting tears a connection down: the directory detaches the
// player from its game and the waiting set, then the socket leaves the
// connection map.
func HandleDisconnecting(dir *directory.Directory, sio *socketio_types.SocketServer,
	connectionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] connection %s going away", connectionID)
		dir.HandleCommand(directory.CmdDisconnect, directory.Payload{ConnectionID: connectionID})
		sio.RemoveConnection(connectionID)
		log.Printf("[DISCONNECT-DONE] connection %s removed", connectionID)
	}
}
