package models

type ConnectionPhase int

const (
	PhaseConnecting ConnectionPhase = iota
	PhaseOpen
	PhaseReconnecting
	PhaseClosed
)

func (p ConnectionPhase) String() string {
	switch p {
	case PhaseConnecting:
		return "connecting"
	case PhaseOpen:
		return "open"
	case PhaseReconnecting:
		return "reconnecting"
	default:
		return "closed"
	}
}

// ConnectionStatus is the coarse status exposed to the rendering side.
type ConnectionStatus string

const (
	StatusConnecting ConnectionStatus = "connecting"
	StatusOpen       ConnectionStatus = "open"
	StatusClosed     ConnectionStatus = "closed"
)

type ConnectionState struct {
	Phase ConnectionPhase
	// Attempt is the reconnect attempt number, only set while reconnecting.
	Attempt int
	// Err is the error that caused the last transition, if any.
	Err string
}

func (s ConnectionState) Status() ConnectionStatus {
	switch s.Phase {
	case PhaseOpen:
		return StatusOpen
	case PhaseClosed:
		return StatusClosed
	default:
		return StatusConnecting
	}
}

func (s ConnectionState) Terminal() bool {
	return s.Phase == PhaseClosed
}
