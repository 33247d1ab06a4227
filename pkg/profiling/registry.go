package profiling

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	pkgerrors "github.com/absmach/perfapi/pkg/errors"
)

var ErrTargetNotFound = fmt.Errorf("profile target %w", pkgerrors.ErrNotFound)

// Target is a unit of work that can be profiled.
type Target interface {
	Invoke(ctx context.Context) (any, error)
}

// TargetFunc adapts an ordinary function to the Target interface.
type TargetFunc func(ctx context.Context) (any, error)

func (f TargetFunc) Invoke(ctx context.Context) (any, error) {
	return f(ctx)
}

type Registry struct {
	mu      sync.RWMutex
	targets map[string]Target
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		targets: make(map[string]Target),
		logger:  logger,
	}
}

// Register stores target under name. An existing registration is replaced
// and a warning is logged.
func (r *Registry) Register(name string, target Target) {
	r.mu.Lock()
	_, exists := r.targets[name]
	r.targets[name] = target
	r.mu.Unlock()

	if exists {
		r.logger.Warn("profile target already registered, overwriting", slog.String("target", name))
	}
	r.logger.Info("registered profile target", slog.String("target", name))
}

func (r *Registry) Get(name string) (Target, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("%w: no target registered with name %q", ErrTargetNotFound, name)
	}

	return target, nil
}

// List returns registered target names in lexicographic order.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)

	return names
}
