package room

// Transport is what the session logic needs from the realtime layer: addressed sends
// and per-room broadcast groups. Implementations must not block on slow peers.
type Transport interface {
	Send(connID string, action string, data interface{})
	Broadcast(roomCode string, action string, data interface{})
	JoinGroup(connID, roomCode string)
	LeaveGroup(connID, roomCode string)
}

const (
	EventConnected       = "connected"
	EventGameHosted      = "gameHosted"
	EventJoinedGame      = "joinedGame"
	EventPlayerJoined    = "playerJoined"
	EventSpectatorJoined = "spectatorJoined"
	EventUpdateBoard     = "updateBoard"
	EventGameOver        = "gameOver"
	EventGameRestarted   = "gameRestarted"
	EventHostLeft        = "hostLeft"
	EventOpponentLeft    = "opponentLeft"
	EventSpectatorLeft   = "spectatorLeft"
	EventError           = "error"
)
