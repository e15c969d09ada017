package service

import (
	"sync"

	"quiz-solver/internal/domain/entity"
)

// SessionRegistry tracks running sessions and stores their final results.
// It is the only state shared between front-door requests.
type SessionRegistry struct {
	mu       sync.RWMutex
	running  map[string]struct{}
	finished map[string]*entity.SolveResult
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		running:  make(map[string]struct{}),
		finished: make(map[string]*entity.SolveResult),
	}
}

func (r *SessionRegistry) Start(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running[id] = struct{}{}
}

func (r *SessionRegistry) Complete(id string, result *entity.SolveResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, id)
	r.finished[id] = result
}

// Lookup reports the session's result if it finished, and whether the id is
// known at all. A known id with a nil result is still running.
func (r *SessionRegistry) Lookup(id string) (*entity.SolveResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if result, ok := r.finished[id]; ok {
		return result, true
	}
	_, ok := r.running[id]
	return nil, ok
}
