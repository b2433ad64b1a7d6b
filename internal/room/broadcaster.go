package room

// Broadcaster pushes room events to connected clients.
type Broadcaster interface {
	Broadcast(roomCode string, action string, data interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, interface{}) {}
