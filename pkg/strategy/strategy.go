package strategy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/registry"
	"github.com/wildfunctions/fourfours/pkg/search"
)

// ErrUnknownStrategy is returned by Get for an unregistered name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Options configures a strategy run.
type Options struct {
	Search  search.Options
	Workers int
}

// Strategy drives explorers over a catalog and reports into a shared registry.
type Strategy interface {
	Name() string
	Explore(ctx context.Context, c catalog.Catalog, r *registry.Registry, opts Options) (search.Stats, error)
}

var strategies = map[string]func() Strategy{}

// Register adds a strategy constructor to the registry.
func Register(name string, constructor func() Strategy) {
	strategies[name] = constructor
}

// Get returns a strategy by name.
func Get(name string) (Strategy, error) {
	ctor, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownStrategy, name, Names())
	}
	return ctor(), nil
}

// Names returns all registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for k := range strategies {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
