package interfaces

import (
	"context"
	"donosync/internal/models"
)

// Conn is a single established websocket connection.
type Conn interface {
	ReadMessage() (messageType int, payload []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type DialerInterface interface {
	Dial(ctx context.Context, address string) (Conn, error)
}

// FrameHandler receives every inbound data frame. Returned errors are
// reported by the handler's owner and never close the connection.
type FrameHandler func(messageType int, payload []byte) error

type ConnectionInterface interface {
	Connect(address string, handler FrameHandler) error
	Close()
	State() models.ConnectionState
	Status() models.ConnectionStatus
	Subscribe(fn func(models.ConnectionState)) (unsubscribe func())
	Done() <-chan struct{}
}
