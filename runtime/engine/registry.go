package engine

import (
	"sync"

	"github.com/satishbabariya/migrate-go/internal/debug"
)

// Registry owns the live engines of a process, keyed by logical profile name.
// Two configs with the same Key share one engine; a changed key rotates the
// profile to a fresh engine, closing the old pool best-effort. The registry
// replaces module-global connection state: the composition root constructs
// one and passes it down.
type Registry struct {
	mu      sync.Mutex
	engines map[string]registryEntry
}

type registryEntry struct {
	key    string
	engine Engine
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]registryEntry)}
}

// Open returns the engine for the profile, creating it on first use and
// rotating it when the configuration identity changed since the last call.
// Rotation is not atomic with respect to in-flight queries on the old pool.
func (r *Registry) Open(profile string, cfg Config) (Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cfg.Key()
	if entry, ok := r.engines[profile]; ok {
		if entry.key == key {
			return entry.engine, nil
		}
		debug.Info("rotating engine", "profile", profile, "driver", cfg.Driver)
		if err := entry.engine.Close(); err != nil {
			debug.Warn("closing rotated engine", "profile", profile, "error", err)
		}
		delete(r.engines, profile)
	}

	eng, err := New(cfg)
	if err != nil {
		return nil, err
	}
	r.engines[profile] = registryEntry{key: key, engine: eng}
	return eng, nil
}

// RotateIfConfigChanged closes and forgets the profile's engine when cfg no
// longer matches it. The next Open rebuilds the pool.
func (r *Registry) RotateIfConfigChanged(profile string, cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.engines[profile]
	if !ok || entry.key == cfg.Key() {
		return
	}
	if err := entry.engine.Close(); err != nil {
		debug.Warn("closing rotated engine", "profile", profile, "error", err)
	}
	delete(r.engines, profile)
}

// CloseAll closes every engine. The first error is returned; the rest of the
// engines are still closed.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first error
	for profile, entry := range r.engines {
		if err := entry.engine.Close(); err != nil && first == nil {
			first = err
		}
		delete(r.engines, profile)
	}
	return first
}
