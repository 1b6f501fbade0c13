package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Registry keeps live shells in memory. Nothing survives a restart.
type Registry struct {
	opts   Options
	logger *zap.Logger

	mu     sync.RWMutex
	shells map[string]*Shell
}

// NewRegistry builds an empty registry whose shells share opts.
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{opts: opts, logger: logger, shells: make(map[string]*Shell)}
}

// Create starts a new guest session on the home page.
func (r *Registry) Create() *Shell {
	shell := newShell(uuid.NewString(), r.opts)
	r.mu.Lock()
	r.shells[shell.ID()] = shell
	r.mu.Unlock()
	r.logger.Debug("session created", zap.String("session_id", shell.ID()))
	return shell
}

// Get returns a live shell.
func (r *Registry) Get(id string) (*Shell, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shell, ok := r.shells[id]
	if !ok {
		return nil, ErrNotFound
	}
	return shell, nil
}

// Close removes a shell and tears down its auth flow.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	shell, ok := r.shells[id]
	delete(r.shells, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	shell.Close()
	r.logger.Debug("session closed", zap.String("session_id", id))
	return nil
}

// CloseAll tears down every shell, used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	shells := r.shells
	r.shells = make(map[string]*Shell)
	r.mu.Unlock()
	for _, s := range shells {
		s.Close()
	}
}

// Len returns the number of live shells.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shells)
}
