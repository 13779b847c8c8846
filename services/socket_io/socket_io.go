package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Setler/services/credentials"
	"Setler/services/directory"
	"Setler/services/feed"
	"Setler/services/records"
	"Setler/services/redis"
	"Setler/services/socket_io/handlers"
	socketio_types "Setler/services/socket_io/types"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start wires the session directory to socket.io and mounts the handler on
// the gin router. Every socket event maps to exactly one directory command;
// the directory serializes them internally.
func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Connections = make(map[string]*socket.Socket)

	wrapper := (*socketio_types.SocketServer)(sio)
	dir := directory.New(wrapper, credentials.NewStore(db), records.NewService(db, redisClient),
		feed.NewService(redisClient))

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		connectionID := string(client.Id())

		wrapper.AddConnection(connectionID, client)
		dir.HandleCommand(directory.CmdConnect, directory.Payload{ConnectionID: connectionID})

		// Account commands. Login binds an identity to this connection and
		// drops the player into the lobby waiting set.
		client.On("register", handlers.HandleRegister(dir, connectionID))
		client.On("login", handlers.HandleLogin(dir, connectionID))
		client.On("logout", handlers.HandleLogout(dir, connectionID))

		// Lobby commands
		client.On("list", handlers.HandleList(dir))
		client.On("createGame", handlers.HandleCreateGame(dir, client, connectionID))
		client.On("joinGame", handlers.HandleJoinGame(dir, client, connectionID))
		client.On("leaveGame", handlers.HandleLeaveGame(dir, client, connectionID))

		// In-game commands
		client.On("startGame", handlers.HandleStartGame(dir, client, connectionID))
		client.On("submitMatch", handlers.HandleSubmitMatch(dir, client, connectionID))
		client.On("deleteGame", handlers.HandleDeleteGame(dir, client, connectionID))

		// Game feed (chat + read-back), stored in Redis per game
		client.On("chat", handlers.HandleChat(dir, redisClient, client, wrapper, connectionID))
		client.On("getFeed", handlers.HandleGetFeed(redisClient, client))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(dir, wrapper, connectionID))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
