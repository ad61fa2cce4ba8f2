package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.WatchableConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.WatchableConfigStore.
// Save stands in for a file write: it notifies every active watcher.
type ConfigStore struct {
	mu       sync.RWMutex
	values   map[string]any
	watchers map[int]func()
	nextID   int
}

// NewConfigStore creates a new in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		values:   make(map[string]any),
		watchers: make(map[int]func()),
	}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	str, _ := lookup[string](s, key)
	return str
}

// GetInt retrieves an integer configuration value.
// Floats are truncated.
func (s *ConfigStore) GetInt(key string) int {
	if f, ok := s.number(key); ok {
		return int(f)
	}
	return 0
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := lookup[bool](s, key)
	return b
}

// GetFloat retrieves a numeric configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	f, _ := s.number(key)
	return f
}

// GetStringMap retrieves a table of string values as a copy.
// Non-string entries of a map[string]any are dropped.
func (s *ConfigStore) GetStringMap(key string) map[string]string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}
	out := make(map[string]string)
	switch v := val.(type) {
	case map[string]string:
		for k, item := range v {
			out[k] = item
		}
	case map[string]any:
		for k, item := range v {
			if str, ok := item.(string); ok {
				out[k] = str
			}
		}
	default:
		return nil
	}
	return out
}

func (s *ConfigStore) number(key string) (float64, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func lookup[T any](s *ConfigStore, key string) (T, bool) {
	val, ok := s.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := val.(T)
	return t, ok
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save notifies watchers; values are already held in memory.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	callbacks := make([]func(), 0, len(s.watchers))
	for _, fn := range s.watchers {
		callbacks = append(callbacks, fn)
	}
	s.mu.RUnlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// Load is a no-op for the memory store.
func (s *ConfigStore) Load() error {
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}

// Watch calls onChange after every Save until ctx is done.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = onChange
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}()
	return nil
}
