package embed

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrUnknownStream indicates a stream ID with no registered scheduler.
var ErrUnknownStream = errors.New("unknown stream")

// Manager is a registry of independent watermarked streams. Each stream
// owns its scheduler; streams advance fully in parallel and never share
// schedule state.
type Manager struct {
	mu      sync.RWMutex
	streams map[uuid.UUID]*Scheduler
}

// NewManager creates an empty stream registry.
func NewManager() *Manager {
	return &Manager{
		streams: make(map[uuid.UUID]*Scheduler),
	}
}

// Register creates a scheduler for the parameters and returns the ID the
// stream is addressed by from now on.
func (m *Manager) Register(params StreamParameters) (uuid.UUID, error) {
	s, err := NewScheduler(params)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to register stream: %w", err)
	}

	id := uuid.New()
	m.mu.Lock()
	m.streams[id] = s
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Register",
		"stream":   id,
	}).Info("Stream registered")
	return id, nil
}

// Stream returns the scheduler registered under the ID.
func (m *Manager) Stream(id uuid.UUID) (*Scheduler, error) {
	m.mu.RLock()
	s, ok := m.streams[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStream, id)
	}
	return s, nil
}

// Unregister removes a stream from the registry. Removing an unknown
// stream is an error so double releases surface.
func (m *Manager) Unregister(id uuid.UUID) error {
	m.mu.Lock()
	_, ok := m.streams[id]
	if ok {
		delete(m.streams, id)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStream, id)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Unregister",
		"stream":   id,
	}).Info("Stream unregistered")
	return nil
}

// Len returns the number of registered streams.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.streams)
}
