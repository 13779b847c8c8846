package directory

import (
	"fmt"
	"log"
	"sync"

	"Setler/services/setgame"

	"github.com/gin-gonic/gin"
)

// Transport is the outbound side of the wire protocol. The directory never
// talks to sockets directly; the socket.io layer implements this.
type Transport interface {
	Broadcast(event string, data any)
	SendTo(connectionID string, event string, data any)
}

// CredentialStore is the external account collaborator. Both calls are
// synchronous and must complete before the directory touches its own state.
type CredentialStore interface {
	RegisterUser(username, password string) (bool, string)
	AuthenticateUser(username, password string) (bool, string)
}

// GameSummary describes a finished game with a non-empty roster.
type GameSummary struct {
	GameID string
	Name   string
	Winner string // empty when the game ended with no single winner
	Scores map[string]int
}

// ResultSink receives summaries of finished games, e.g. to persist them.
type ResultSink interface {
	RecordResult(summary GameSummary)
}

// FeedSink receives game event feed entries (join, leave, start, set and so
// on). Called under the directory lock, so implementations must not block.
type FeedSink interface {
	AppendEvent(gameID, username, kind, message string)
}

// Directory is the process-wide session registry: connection -> player,
// game id -> game, and the lobby waiting set (logged-in players without a
// game). Commands arrive concurrently from the socket layer, so every
// command runs to completion under one mutex; broadcasts always emit
// snapshot copies, never live collections.
type Directory struct {
	mu          sync.Mutex
	transport   Transport
	credentials CredentialStore
	results     ResultSink
	feed        FeedSink

	// nil value means the connection exists but nobody is logged in on it.
	connections map[string]*setgame.Player
	games       map[string]*setgame.Game
	waiting     map[string]*setgame.Player

	// Monotonic, never reused: deriving ids from len(games) collides once
	// games get deleted.
	nextGameID int
}

func New(transport Transport, credentials CredentialStore, results ResultSink, feed FeedSink) *Directory {
	return &Directory{
		transport:   transport,
		credentials: credentials,
		results:     results,
		feed:        feed,
		connections: make(map[string]*setgame.Player),
		games:       make(map[string]*setgame.Game),
		waiting:     make(map[string]*setgame.Player),
		nextGameID:  1,
	}
}

// HandleCommand is the single inbound entry point. Validation always
// precedes mutation; failures become targeted messages to the originating
// connection and never partial state.
func (d *Directory) HandleCommand(cmd Command, p Payload) {
	d.mu.Lock()
	defer d.mu.Unlock()

	log.Printf("[DIRECTORY] executing %s (conn=%s)", cmd, p.ConnectionID)

	switch cmd {
	case CmdConnect:
		d.connect(p)
	case CmdDisconnect:
		d.disconnect(p)
	case CmdRegister:
		d.register(p)
	case CmdLogin:
		d.login(p)
	case CmdLogout:
		d.logout(p)
	case CmdList:
		d.list()
	case CmdCreateGame:
		d.createGame(p)
	case CmdJoinGame:
		d.joinGame(p)
	case CmdLeaveGame:
		d.leaveGame(p)
	case CmdStartGame:
		d.startGame(p)
	case CmdSubmitMatch:
		d.submitMatch(p)
	case CmdDeleteGame:
		d.deleteGame(p)
	default:
		log.Printf("[DIRECTORY-ERROR] unknown command %v", cmd)
	}
}

// PlayerGame reports the game id and username bound to a connection. Used
// by the socket layer for game-scoped extras (chat feed) without exposing
// the directory maps.
func (d *Directory) PlayerGame(connectionID string) (gameID, username string, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	player := d.connections[connectionID]
	if player == nil || player.GameID == "" {
		return "", "", false
	}
	return player.GameID, player.Username, true
}

// GameMemberConnections returns the connection ids of a game's roster.
func (d *Directory) GameMemberConnections(gameID string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	g, ok := d.games[gameID]
	if !ok {
		return nil
	}
	conns := make([]string, len(g.Members))
	for i, m := range g.Members {
		conns[i] = m.ConnectionID
	}
	return conns
}

func (d *Directory) connect(p Payload) {
	if p.ConnectionID == "" {
		d.transport.SendTo(p.ConnectionID, "connect-error", gin.H{"error": "missing connection id"})
		return
	}
	// A duplicate connect re-initializes the binding: whoever was logged in
	// on this connection is detached first.
	if player := d.connections[p.ConnectionID]; player != nil {
		d.detachFromGame(player)
		delete(d.waiting, p.ConnectionID)
	}
	d.connections[p.ConnectionID] = nil
}

func (d *Directory) disconnect(p Payload) {
	player, known := d.connections[p.ConnectionID]
	if !known {
		return
	}
	if player != nil {
		d.detachFromGame(player)
		delete(d.waiting, p.ConnectionID)
	}
	delete(d.connections, p.ConnectionID)
	d.sendLobbySnapshot()
}

func (d *Directory) register(p Payload) {
	if p.Username == "" || p.Password == "" {
		d.transport.SendTo(p.ConnectionID, "register-fail", gin.H{"reason": "username and password are required"})
		return
	}
	ok, reason := d.credentials.RegisterUser(p.Username, p.Password)
	if !ok {
		d.transport.SendTo(p.ConnectionID, "register-fail", gin.H{"reason": reason})
		return
	}
	d.transport.SendTo(p.ConnectionID, "register-success", gin.H{"username": p.Username})
}

func (d *Directory) login(p Payload) {
	if p.Username == "" || p.Password == "" {
		d.transport.SendTo(p.ConnectionID, "login-fail", gin.H{"reason": "username and password are required"})
		return
	}
	if _, known := d.connections[p.ConnectionID]; !known {
		d.transport.SendTo(p.ConnectionID, "login-fail", gin.H{"reason": "client was not connected"})
		return
	}
	// External call first: a rejected login must leave the maps untouched.
	ok, reason := d.credentials.AuthenticateUser(p.Username, p.Password)
	if !ok {
		d.transport.SendTo(p.ConnectionID, "login-fail", gin.H{"reason": reason})
		return
	}
	if prev := d.connections[p.ConnectionID]; prev != nil {
		d.detachFromGame(prev)
		delete(d.waiting, p.ConnectionID)
	}
	player := setgame.NewPlayer(p.ConnectionID, p.Username)
	d.connections[p.ConnectionID] = player
	d.waiting[p.ConnectionID] = player
	d.sendLobbySnapshot()
	d.transport.SendTo(p.ConnectionID, "login-success", gin.H{"username": p.Username})
}

func (d *Directory) logout(p Payload) {
	player := d.connections[p.ConnectionID]
	if player == nil {
		d.transport.SendTo(p.ConnectionID, "logout-fail", gin.H{"reason": "user not currently logged in"})
		return
	}
	d.detachFromGame(player)
	d.connections[p.ConnectionID] = nil
	delete(d.waiting, p.ConnectionID)
	d.sendLobbySnapshot()
	d.transport.SendTo(p.ConnectionID, "logout-success", gin.H{})
}

func (d *Directory) list() {
	d.transport.Broadcast("lobby-snapshot", d.lobbySnapshot())
}

func (d *Directory) createGame(p Payload) {
	player := d.connections[p.ConnectionID]
	if player == nil {
		d.transport.SendTo(p.ConnectionID, "create-fail", gin.H{"reason": "user not logged in"})
		return
	}
	if p.GameName == "" {
		d.transport.SendTo(p.ConnectionID, "create-fail", gin.H{"reason": "game name is required"})
		return
	}
	if player.GameID != "" {
		d.transport.SendTo(p.ConnectionID, "create-fail", gin.H{"reason": "user is already in a game"})
		return
	}

	gameID := fmt.Sprintf("game%d", d.nextGameID)
	d.nextGameID++

	g := setgame.NewGame(gameID, p.GameName)
	if err := g.AddMember(player, true); err != nil {
		d.transport.SendTo(p.ConnectionID, "create-fail", gin.H{"reason": err.Error()})
		return
	}
	d.games[gameID] = g
	delete(d.waiting, p.ConnectionID)

	d.appendFeed(gameID, player.Username, "create", player.Username+" created the game")
	d.sendLobbySnapshot()
	d.transport.SendTo(p.ConnectionID, "create-success", gin.H{"gameId": gameID})
}

func (d *Directory) joinGame(p Payload) {
	g, ok := d.games[p.GameID]
	if !ok {
		d.transport.SendTo(p.ConnectionID, "join-fail", gin.H{"reason": "invalid game id"})
		return
	}
	player := d.connections[p.ConnectionID]
	if player == nil {
		d.transport.SendTo(p.ConnectionID, "join-fail", gin.H{"reason": "user not logged in"})
		return
	}
	if player.GameID != "" {
		d.transport.SendTo(p.ConnectionID, "join-fail", gin.H{"reason": "user is already in a game"})
		return
	}
	if err := g.AddMember(player, false); err != nil {
		d.transport.SendTo(p.ConnectionID, "join-fail", gin.H{"reason": err.Error()})
		return
	}
	delete(d.waiting, p.ConnectionID)

	d.appendFeed(g.ID, player.Username, "join", player.Username+" joined the game")
	d.sendMembershipUpdate(g)
	d.sendLobbySnapshot()
	d.transport.SendTo(p.ConnectionID, "join-success", gin.H{"gameId": g.ID, "members": memberList(g)})
}

func (d *Directory) leaveGame(p Payload) {
	g, ok := d.games[p.GameID]
	if !ok {
		d.transport.SendTo(p.ConnectionID, "leave-fail", gin.H{"reason": "invalid game id"})
		return
	}
	player := d.connections[p.ConnectionID]
	if player == nil {
		d.transport.SendTo(p.ConnectionID, "leave-fail", gin.H{"reason": "user not logged in"})
		return
	}
	remaining, removed := g.RemoveMember(p.ConnectionID, player.Username)
	if !removed {
		d.transport.SendTo(p.ConnectionID, "leave-fail", gin.H{"reason": "user not in game"})
		return
	}
	d.waiting[p.ConnectionID] = player
	if remaining == 0 {
		d.finishGame(g)
	} else {
		d.appendFeed(g.ID, player.Username, "leave", player.Username+" left the game")
		d.sendMembershipUpdate(g)
		d.sendLobbySnapshot()
	}
	d.transport.SendTo(p.ConnectionID, "leave-success", gin.H{})
}

func (d *Directory) startGame(p Payload) {
	g, ok := d.games[p.GameID]
	if !ok {
		d.transport.SendTo(p.ConnectionID, "start-fail", gin.H{"reason": "invalid game id"})
		return
	}
	if err := g.Start(); err != nil {
		d.transport.SendTo(p.ConnectionID, "start-fail", gin.H{"reason": err.Error()})
		return
	}

	d.appendFeed(g.ID, "", "start", "the game started")
	d.sendBoardUpdate(g)
	d.sendScoreUpdate(g)
	d.sendLobbySnapshot()

	d.transport.SendTo(p.ConnectionID, "start-success", gin.H{
		"gameId":  g.ID,
		"members": memberList(g),
		"scores":  g.Scores(),
	})
}

func (d *Directory) submitMatch(p Payload) {
	g, ok := d.games[p.GameID]
	if !ok {
		d.transport.SendTo(p.ConnectionID, "match-fail", gin.H{"reason": "invalid game id"})
		return
	}
	if len(p.Cards) != 3 {
		d.transport.SendTo(p.ConnectionID, "match-fail", gin.H{"reason": "invalid number of cards"})
		return
	}
	player := d.connections[p.ConnectionID]
	if player == nil || player.GameID != g.ID {
		d.transport.SendTo(p.ConnectionID, "match-fail", gin.H{"reason": "user not in game"})
		return
	}

	switch g.SubmitMatch(p.ConnectionID, p.Cards) {
	case setgame.MatchMalformed:
		d.transport.SendTo(p.ConnectionID, "match-fail", gin.H{"reason": "cards are formatted wrong"})
	case setgame.MatchNotOnBoard:
		d.transport.SendTo(p.ConnectionID, "match-fail", gin.H{"reason": "cards are not on the board"})
	case setgame.MatchInvalid:
		// Not a hard failure: everyone sees the (unchanged) scores, the
		// submitter gets the invalid notice.
		d.appendFeed(g.ID, player.Username, "fail", player.Username+" claimed an invalid set")
		d.sendScoreUpdate(g)
		d.transport.SendTo(p.ConnectionID, "match-invalid", gin.H{"gameId": g.ID})
	case setgame.Matched:
		d.appendFeed(g.ID, player.Username, "set", player.Username+" found a set")
		d.sendBoardUpdate(g)
		d.sendScoreUpdate(g)
		d.transport.SendTo(p.ConnectionID, "match-success", gin.H{"gameId": g.ID})
	case setgame.MatchedGameOver:
		d.appendFeed(g.ID, player.Username, "set", player.Username+" found a set")
		d.sendBoardUpdate(g)
		d.sendScoreUpdate(g)
		d.finishGame(g)
		d.transport.SendTo(p.ConnectionID, "match-success", gin.H{"gameId": g.ID})
	}
}

func (d *Directory) deleteGame(p Payload) {
	g, ok := d.games[p.GameID]
	if !ok {
		d.transport.SendTo(p.ConnectionID, "delete-fail", gin.H{"reason": "invalid game id"})
		return
	}
	player := d.connections[p.ConnectionID]
	if player == nil {
		d.transport.SendTo(p.ConnectionID, "delete-fail", gin.H{"reason": "user not logged in"})
		return
	}
	if g.Owner == nil || g.Owner.Username != player.Username {
		d.transport.SendTo(p.ConnectionID, "delete-fail", gin.H{"reason": "user lacks permission to delete"})
		return
	}

	evicted := make([]string, len(g.Members))
	for i, m := range g.Members {
		evicted[i] = m.ConnectionID
	}
	d.finishGame(g)
	d.transport.Broadcast("delete-success", gin.H{"gameId": p.GameID, "evictedMembers": evicted})
}

// appendFeed records a game event in the feed, when a sink is wired.
func (d *Directory) appendFeed(gameID, username, kind, message string) {
	if d.feed == nil {
		return
	}
	d.feed.AppendEvent(gameID, username, kind, message)
}

// detachFromGame removes a player from whatever game it occupies, finishing
// the game when the roster empties. No-op for players not in a game.
func (d *Directory) detachFromGame(player *setgame.Player) {
	if player.GameID == "" {
		return
	}
	g, ok := d.games[player.GameID]
	if !ok {
		// Inconsistent lookup; repair the back-reference and move on
		// without touching any other game's state.
		log.Printf("[DIRECTORY-ERROR] player %s references unknown game %s", player.Username, player.GameID)
		player.GameID = ""
		return
	}
	remaining, removed := g.RemoveMember(player.ConnectionID, player.Username)
	if !removed {
		log.Printf("[DIRECTORY-ERROR] player %s missing from roster of game %s", player.Username, g.ID)
		player.GameID = ""
		return
	}
	if remaining == 0 {
		d.finishGame(g)
	} else {
		d.sendMembershipUpdate(g)
		d.sendLobbySnapshot()
	}
}

// finishGame finishes a game, announces the winner, returns every member to
// the waiting set and drops the game from the registry.
func (d *Directory) finishGame(g *setgame.Game) {
	winner := g.Finish()

	// Snapshot the roster before the members move back to the lobby.
	members := make([]*setgame.Player, len(g.Members))
	copy(members, g.Members)

	winnerID, winnerName, winnerScore := "", "", 0
	if winner != nil {
		winnerID = winner.ConnectionID
		winnerName = winner.Username
		winnerScore = winner.Score
	}
	clients := make([]string, len(members))
	for i, m := range members {
		clients[i] = m.ConnectionID
	}
	d.transport.Broadcast("game-finished", gin.H{
		"gameId":      g.ID,
		"clients":     clients,
		"winnerId":    winnerID,
		"winnerName":  winnerName,
		"winnerScore": winnerScore,
	})

	if d.results != nil && len(members) > 0 {
		d.results.RecordResult(GameSummary{
			GameID: g.ID,
			Name:   g.Name,
			Winner: winnerName,
			Scores: g.Scores(),
		})
	}

	for _, m := range members {
		m.GameID = ""
		d.waiting[m.ConnectionID] = m
	}
	delete(d.games, g.ID)
	d.sendLobbySnapshot()
}
