// Package stream keeps a single websocket subscription alive. It redials a
// bounded number of times after transport failures and probes liveness with
// an application level heartbeat.
package stream

import (
	"context"
	"donosync/internal/models"
	"donosync/internal/observer"
	"donosync/internal/providers"
	"donosync/internal/stream/interfaces"
	"donosync/internal/structures"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

type frame struct {
	messageType int
	payload     []byte
}

type Manager struct {
	conf    structures.StreamConfig
	dialer  interfaces.DialerInterface
	clock   clockwork.Clock
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	state   models.ConnectionState
	conn    interfaces.Conn
	started bool
	closed  bool

	observers observer.List[models.ConnectionState]
}

func NewManager(conf *structures.Config, dialer interfaces.DialerInterface, clock clockwork.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.ConnectionInterface {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		conf:    conf.Stream,
		dialer:  dialer,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		state:   models.ConnectionState{Phase: models.PhaseConnecting},
	}
}

// Connect starts the subscription to address and returns at once. Frames
// are passed to handler one at a time, in arrival order.
func (m *Manager) Connect(address string, handler interfaces.FrameHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrManagerClosed
	}
	if m.started {
		return ErrAlreadyConnected
	}
	m.started = true
	m.metrics.SetConnectionStatus(string(models.StatusConnecting))
	go m.supervise(address, handler)
	return nil
}

// Close stops the subscription, cancelling any pending reconnect or
// heartbeat wait, and blocks until the supervisor has exited.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.done
		return
	}
	m.closed = true
	started := m.started
	conn := m.conn
	m.mu.Unlock()

	m.cancel()
	if conn != nil {
		_ = conn.Close()
	}
	if !started {
		m.setState(models.ConnectionState{Phase: models.PhaseClosed})
		close(m.done)
		return
	}
	<-m.done
}

func (m *Manager) State() models.ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Status() models.ConnectionStatus {
	return m.State().Status()
}

// Subscribe registers fn for every state transition.
func (m *Manager) Subscribe(fn func(models.ConnectionState)) (unsubscribe func()) {
	return m.observers.Subscribe(fn)
}

// Done is closed once the manager has reached the closed state for good.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

func (m *Manager) supervise(address string, handler interfaces.FrameHandler) {
	defer close(m.done)

	attempt := 0
	for {
		opened, err := m.runOnce(address, handler)
		if m.ctx.Err() != nil {
			m.logger.Infof(providers.TypeStream, "Stream to %s closed", address)
			m.setState(models.ConnectionState{Phase: models.PhaseClosed})
			return
		}
		if opened {
			attempt = 0
		}
		if attempt >= m.conf.Retries {
			m.logger.Errorf(providers.TypeStream, "Giving up on %s after %d retries: %s", address, attempt, err)
			m.setState(models.ConnectionState{Phase: models.PhaseClosed, Err: err.Error()})
			return
		}

		attempt++
		m.metrics.IncReconnectAttempts()
		m.logger.Warnf(providers.TypeStream, "Reconnecting to %s in %s (attempt %d/%d): %s",
			address, m.conf.ReconnectDelay, attempt, m.conf.Retries, err)
		m.setState(models.ConnectionState{Phase: models.PhaseReconnecting, Attempt: attempt, Err: err.Error()})

		if !m.sleep(m.conf.ReconnectDelay) {
			m.setState(models.ConnectionState{Phase: models.PhaseClosed})
			return
		}
	}
}

// runOnce dials address and serves the connection until it fails. opened
// reports whether the connection was established at all.
func (m *Manager) runOnce(address string, handler interfaces.FrameHandler) (opened bool, err error) {
	ctx := m.ctx
	if m.conf.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(m.ctx, m.conf.DialTimeout)
		defer cancel()
	}
	conn, err := m.dialer.Dial(ctx, address)
	if err != nil {
		return false, &TransportError{Op: "dial", Err: err}
	}
	if !m.attach(conn) {
		_ = conn.Close()
		return false, ErrManagerClosed
	}
	defer m.detach(conn)

	id := uuid.NewString()
	m.logger.Infof(providers.TypeStream, "Connection %s open to %s", id, address)
	m.setState(models.ConnectionState{Phase: models.PhaseOpen})

	err = m.serve(conn, handler)
	if m.ctx.Err() == nil {
		m.logger.Warnf(providers.TypeStream, "Connection %s lost: %s", id, err)
	}
	return true, err
}

func (m *Manager) serve(conn interfaces.Conn, handler interfaces.FrameHandler) error {
	frames := make(chan frame)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			messageType, payload, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- frame{messageType: messageType, payload: payload}:
			case <-stop:
				return
			}
		}
	}()

	hb := m.conf.Heartbeat
	var heartbeat <-chan time.Time
	if hb.Enabled {
		ticker := m.clock.NewTicker(hb.Interval)
		defer ticker.Stop()
		heartbeat = ticker.Chan()
	}

	var (
		pongTimer clockwork.Timer
		pongWait  <-chan time.Time
		pingSent  time.Time
	)
	stopPongWait := func() {
		if pongTimer != nil {
			pongTimer.Stop()
			pongTimer, pongWait = nil, nil
		}
	}
	defer stopPongWait()

	for {
		select {
		case <-m.ctx.Done():
			return m.ctx.Err()

		case err := <-readErr:
			return &TransportError{Op: "read", Err: err}

		case f := <-frames:
			// any inbound frame proves the peer is alive
			if pongWait != nil {
				m.metrics.ObserveHeartbeatRTT(m.clock.Since(pingSent))
				stopPongWait()
			}
			if f.messageType == websocket.TextMessage && hb.Response != "" && string(f.payload) == hb.Response {
				m.metrics.IncFramesTotal("heartbeat")
				continue
			}
			if err := handler(f.messageType, f.payload); err != nil {
				m.logger.Debugf(providers.TypeStream, "Frame rejected by handler: %s", err)
			}

		case <-heartbeat:
			if pongWait != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(hb.Message)); err != nil {
				return &TransportError{Op: "write", Err: err}
			}
			pingSent = m.clock.Now()
			pongTimer = m.clock.NewTimer(hb.Timeout)
			pongWait = pongTimer.Chan()

		case <-pongWait:
			return ErrHeartbeatTimeout
		}
	}
}

// sleep waits for d and reports false if the manager was closed meanwhile.
func (m *Manager) sleep(d time.Duration) bool {
	timer := m.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.Chan():
		return true
	case <-m.ctx.Done():
		return false
	}
}

func (m *Manager) attach(conn interfaces.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.conn = conn
	return true
}

func (m *Manager) detach(conn interfaces.Conn) {
	m.mu.Lock()
	m.conn = nil
	m.mu.Unlock()
	if err := conn.Close(); err != nil {
		m.logger.Debugf(providers.TypeStream, "Close connection: %s", err)
	}
}

func (m *Manager) setState(state models.ConnectionState) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()

	m.metrics.SetConnectionStatus(string(state.Status()))
	m.observers.Notify(state)
}
