package directory

import (
	"Setler/services/setgame"

	"github.com/gin-gonic/gin"
)

// Broadcast payload builders. Every helper copies what it needs out of the
// live collections before handing the payload to the transport, so a slow
// or asynchronous transport never observes a map or slice mid-mutation.

func (d *Directory) lobbySnapshot() gin.H {
	clients := make([]string, 0, len(d.waiting))
	for connectionID := range d.waiting {
		clients = append(clients, connectionID)
	}

	games := make([]gin.H, 0, len(d.games))
	for _, g := range d.games {
		games = append(games, gin.H{
			"gameId":  g.ID,
			"name":    g.Name,
			"status":  g.Status().String(),
			"members": memberList(g),
		})
	}
	return gin.H{"clients": clients, "games": games}
}

func (d *Directory) sendLobbySnapshot() {
	d.transport.Broadcast("lobby-snapshot", d.lobbySnapshot())
}

func (d *Directory) sendBoardUpdate(g *setgame.Game) {
	d.transport.Broadcast("board-update", gin.H{
		"gameId":  g.ID,
		"clients": memberConnections(g),
		"cards":   g.BoardDescriptors(),
	})
}

func (d *Directory) sendScoreUpdate(g *setgame.Game) {
	d.transport.Broadcast("score-update", gin.H{
		"gameId":  g.ID,
		"clients": memberConnections(g),
		"scores":  g.Scores(),
	})
}

func (d *Directory) sendMembershipUpdate(g *setgame.Game) {
	d.transport.Broadcast("game-membership-update", gin.H{
		"gameId":  g.ID,
		"members": memberList(g),
	})
}

// memberList is the one wire representation of a roster: join-success,
// start-success and game-membership-update all carry the same shape.
func memberList(g *setgame.Game) []gin.H {
	members := make([]gin.H, len(g.Members))
	for i, m := range g.Members {
		members[i] = gin.H{"clientId": m.ConnectionID, "username": m.Username}
	}
	return members
}

func memberConnections(g *setgame.Game) []string {
	conns := make([]string, len(g.Members))
	for i, m := range g.Members {
		conns[i] = m.ConnectionID
	}
	return conns
}
