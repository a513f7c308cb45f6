package stream

import "errors"

var (
	ErrHeartbeatTimeout = errors.New("heartbeat timeout")
	ErrAlreadyConnected = errors.New("stream: connect already called")
	ErrManagerClosed    = errors.New("stream: manager closed")
)

// TransportError wraps a failure of the underlying connection. Op is one of
// dial, read or write.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "stream " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
