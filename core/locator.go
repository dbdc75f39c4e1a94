package core

import (
	"fmt"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// BackendFactory constructs a backend from application configuration.
type BackendFactory func(cfg AppConfig) (Backend, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]BackendFactory)
)

// RegisterBackendFactory makes a backend constructor resolvable by the
// name used in configuration.
func RegisterBackendFactory(name string, factory BackendFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = factory
}

func init() {
	RegisterBackendFactory("memory", func(AppConfig) (Backend, error) {
		return NewMemoryBackend(), nil
	})
	RegisterBackendFactory("jsonfile", func(cfg AppConfig) (Backend, error) {
		return NewJSONFileBackend(filepath.Join(cfg.DataPath, "db"))
	})
	RegisterBackendFactory("sqlite", func(cfg AppConfig) (Backend, error) {
		return NewSQLiteBackend(filepath.Join(cfg.DataPath, "objects.db"))
	})
}

func resolveBackend(cfg AppConfig) (Backend, error) {
	factoriesMu.RLock()
	factory, ok := factories[cfg.Backend]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	return factory(cfg)
}

var (
	backendLocator     *BackendLocator
	backendLocatorOnce sync.Once
)

// BackendLocator resolves the configured backend once per process and
// hands out a stable DynamicBackend handle that survives swaps.
type BackendLocator struct {
	mu     sync.Mutex
	config AppConfig
	handle *DynamicBackend
}

// initBackendLocator initializes the global backendLocator singleton.
func initBackendLocator() {
	backendLocatorOnce.Do(func() {
		cfg := GetConfig()
		backendLocator = &BackendLocator{config: cfg}
		if err := backendLocator.reinitialize(); err != nil {
			log.Fatalf("Failed to initialize storage backend: %v", err)
		}
	})
}

// reinitialize builds a backend from the current configuration and swaps
// it into the shared handle, closing the previous one. Caller holds the
// lock except during once-initialization.
func (l *BackendLocator) reinitialize() error {
	next, err := resolveBackend(l.config)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"backend":   l.config.Backend,
		"data_path": l.config.DataPath,
	}).Info("storage backend ready")

	if l.handle == nil {
		l.handle = NewDynamicBackend(next)
		return nil
	}
	prev := l.handle.Swap(next)
	if prev != nil {
		if err := prev.Close(); err != nil {
			log.Warnf("Failed to close previous backend: %v", err)
		}
	}
	return nil
}

// GetBackend returns the shared backend handle. Two calls within one
// process always refer to the same underlying store.
func GetBackend() Backend {
	initBackendLocator() // Ensure initialized
	backendLocator.mu.Lock()
	defer backendLocator.mu.Unlock()
	return backendLocator.handle
}

// UpdateBackend persists newConfig and rebuilds the live backend from it.
// Handles obtained earlier from GetBackend observe the swap.
func UpdateBackend(newConfig AppConfig) error {
	initBackendLocator() // Ensure initialized
	backendLocator.mu.Lock()
	defer backendLocator.mu.Unlock()

	if err := UpdateConfig(newConfig); err != nil {
		return err
	}
	backendLocator.config = newConfig
	return backendLocator.reinitialize()
}
