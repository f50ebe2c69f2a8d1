package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Manager keeps named asset filters (presets) next to the compiler that
// builds ad-hoc ones.
type Manager struct {
	compiler Compiler
	filters  map[string]*AssetFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewCompiler(WithCache(100)),
		filters:  make(map[string]*AssetFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers multiple filters at once. Nothing is registered
// if any expression fails to compile.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]*AssetFilter, len(filters))

	for name, expr := range filters {
		filter, err := m.compiler.Compile(expr)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (*AssetFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Preset returns the registered filter called name
func (m *Manager) Preset(name string) (*AssetFilter, error) {
	filter, ok := m.GetFilter(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return filter, nil
}

// Resolve returns the preset called nameOrExpression if one is registered,
// and otherwise compiles nameOrExpression as an expression.
func (m *Manager) Resolve(nameOrExpression string) (*AssetFilter, error) {
	if filter, ok := m.GetFilter(nameOrExpression); ok {
		return filter, nil
	}
	return m.compiler.Compile(nameOrExpression)
}
