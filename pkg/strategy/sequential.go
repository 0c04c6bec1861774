package strategy

import (
	"context"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/registry"
	"github.com/wildfunctions/fourfours/pkg/search"
)

func init() {
	Register("sequential", func() Strategy { return &SequentialStrategy{} })
}

// SequentialStrategy runs one depth-first explorer over the whole space. Ties
// between equally good derivations always resolve to the first in
// enumeration order.
type SequentialStrategy struct{}

func (s *SequentialStrategy) Name() string { return "sequential" }

func (s *SequentialStrategy) Explore(
	ctx context.Context,
	c catalog.Catalog,
	r *registry.Registry,
	opts Options,
) (search.Stats, error) {
	if err := ctx.Err(); err != nil {
		return search.Stats{}, err
	}
	x := search.NewExplorer(c, r, opts.Search)
	x.Explore()
	return x.Stats(), nil
}
