package stream

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// State is the connection lifecycle state.
type State int

const (
	// Disconnected is the initial state, before Start.
	Disconnected State = iota
	// Connecting means a dial is in flight.
	Connecting
	// Open means the socket is established and the read loop is running.
	Open
	// Reconnecting means a retry timer is pending after a failure.
	Reconnecting
	// Stopped is terminal; no further dials happen.
	Stopped
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Reconnecting:
		return "reconnecting"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Manager owns one websocket subscription. Every received text or binary
// message is handed to the frame callback as raw bytes; parse errors are
// the callback's concern. All state transitions happen under one mutex, and
// the done channel lets a pending retry timer lose the race against Stop
// without ever dialing.
type Manager struct {
	url     string
	dialer  *websocket.Dialer
	backoff Backoff
	onFrame func([]byte)
	log     logrus.FieldLogger

	mu      sync.Mutex
	state   State
	attempt int
	conn    *websocket.Conn
	retry   *time.Timer
	done    chan struct{}
	stopped bool
}

// NewManager creates a manager for a ws:// or wss:// URL. The frame
// callback runs on the manager's read goroutine and must not block for
// long; it is never called after Stop returns observable effect.
func NewManager(url string, backoff Backoff, onFrame func([]byte), log logrus.FieldLogger) *Manager {
	return &Manager{
		url:     url,
		dialer:  websocket.DefaultDialer,
		backoff: backoff,
		onFrame: onFrame,
		log:     log,
		done:    make(chan struct{}),
	}
}

// Start begins connecting. It returns immediately; connection progress is
// observable through State.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.stopped || m.state != Disconnected {
		m.mu.Unlock()
		return
	}
	m.state = Connecting
	m.mu.Unlock()

	go m.connect()
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Attempt reports the current reconnect attempt counter. It resets to zero
// when a connection opens, not when one is merely scheduled.
func (m *Manager) Attempt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempt
}

// Stop tears the subscription down: any pending retry is cancelled, any
// open socket is closed, and no further dial will ever start. Stop is
// idempotent.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.state = Stopped
	close(m.done)
	if m.retry != nil {
		m.retry.Stop()
		m.retry = nil
	}
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

func (m *Manager) connect() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.state = Connecting
	attempt := m.attempt
	m.mu.Unlock()

	conn, _, err := m.dialer.Dial(m.url, nil)
	if err != nil {
		m.log.WithError(err).WithField("attempt", attempt).Warn("stream dial failed")
		m.scheduleRetry()
		return
	}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		_ = conn.Close()
		return
	}
	m.conn = conn
	m.state = Open
	m.attempt = 0
	m.mu.Unlock()

	m.log.WithField("url", m.url).Info("stream open")
	m.readLoop(conn)
}

func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			m.mu.Lock()
			stopped := m.stopped
			if m.conn == conn {
				m.conn = nil
			}
			m.mu.Unlock()
			_ = conn.Close()
			if stopped {
				return
			}
			m.log.WithError(err).Warn("stream read failed")
			m.scheduleRetry()
			return
		}
		m.onFrame(data)
	}
}

func (m *Manager) scheduleRetry() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.state = Reconnecting
	delay := m.backoff.Delay(m.attempt)
	m.attempt++
	m.retry = time.NewTimer(delay)
	timer := m.retry
	m.mu.Unlock()

	m.log.WithField("delay", delay).Info("stream reconnect scheduled")

	go func() {
		select {
		case <-timer.C:
			m.connect()
		case <-m.done:
			timer.Stop()
		}
	}()
}
