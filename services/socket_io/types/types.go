package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer holds the socket.io server and the live connection map. It
// doubles as the directory's outbound Transport: Broadcast and SendTo are
// the only ways state updates reach clients.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track connection id -> socket
	Connections map[string]*socket.Socket
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Connections: make(map[string]*socket.Socket),
	}
}

func (s *SocketServer) AddConnection(connectionID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Connections[connectionID] = client
}

func (s *SocketServer) RemoveConnection(connectionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Connections, connectionID)
}

func (s *SocketServer) GetConnection(connectionID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.Connections[connectionID]
	return client, exists
}

// Broadcast emits an event to every connected client. The connection map is
// copied under the read lock first; emitting happens outside it so a slow
// client can never stall (or race) map mutation.
func (s *SocketServer) Broadcast(event string, data any) {
	s.mutex.RLock()
	clients := make([]*socket.Socket, 0, len(s.Connections))
	for _, client := range s.Connections {
		clients = append(clients, client)
	}
	s.mutex.RUnlock()

	for _, client := range clients {
		client.Emit(event, data)
	}
}

// SendTo emits an event to one connection. Unknown ids are dropped
// silently: the client may have disconnected between command and reply.
func (s *SocketServer) SendTo(connectionID string, event string, data any) {
	client, exists := s.GetConnection(connectionID)
	if !exists {
		return
	}
	client.Emit(event, data)
}
