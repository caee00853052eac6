package kernel

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/korulabs/koru/core"
	"github.com/korulabs/koru/kernel/provider"
)

// ErrNoActiveModel is returned when generation is requested but no model
// is loaded and active. This is a configuration error and is never
// swallowed.
var ErrNoActiveModel = errors.New("kernel: no active model configured")

// LLMManager holds named provider instances and an active selection, so
// callers can swap vendors without touching Kernel consumers.
type LLMManager struct {
	mu     sync.RWMutex
	models map[string]provider.Provider
	active string
}

// NewLLMManager creates an empty manager.
func NewLLMManager() *LLMManager {
	return &LLMManager{models: map[string]provider.Provider{}}
}

// LoadModel registers a provider under name. The first loaded model
// becomes active; re-registering a name replaces the previous provider.
func (m *LLMManager) LoadModel(name string, p provider.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.models[name] = p
	if m.active == "" {
		m.active = name
	}
}

// UnloadModel removes a provider, reporting whether it existed. Unloading
// the active model clears the active selection.
func (m *LLMManager) UnloadModel(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.models[name]; !ok {
		return false
	}
	delete(m.models, name)
	if m.active == name {
		m.active = ""
	}
	return true
}

// SetActiveModel selects the model used for generation, reporting whether
// the name is loaded.
func (m *LLMManager) SetActiveModel(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.models[name]; !ok {
		return false
	}
	m.active = name
	return true
}

// ListModels returns the loaded model names, sorted.
func (m *LLMManager) ListModels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.models))
	for name := range m.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate calls the active model. Fails with ErrNoActiveModel when no
// model is selected; provider errors are surfaced unmodified.
func (m *LLMManager) Generate(ctx context.Context, messages []core.ChatMessage, opts core.GenerateOptions) (*core.GenerateResult, error) {
	m.mu.RLock()
	p, ok := m.models[m.active]
	m.mu.RUnlock()

	if m.active == "" || !ok {
		return nil, ErrNoActiveModel
	}
	return p.Generate(ctx, messages, opts)
}
