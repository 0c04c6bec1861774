package strategy

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/registry"
	"github.com/wildfunctions/fourfours/pkg/search"
)

// parallelPrefixDepth is the prefix length the search space is split at.
// Depth 0 only allows a push, so depth 2 is the first level with a useful
// fan-out.
const parallelPrefixDepth = 2

func init() {
	Register("parallel", func() Strategy { return &ParallelStrategy{} })
}

// ParallelStrategy splits the search at a fixed prefix depth and explores the
// prefixes on a bounded set of workers. Every target ends up with the same
// rank as under the sequential strategy, but ties between equally ranked
// derivations may resolve differently.
type ParallelStrategy struct{}

func (s *ParallelStrategy) Name() string { return "parallel" }

func (s *ParallelStrategy) Explore(
	ctx context.Context,
	c catalog.Catalog,
	r *registry.Registry,
	opts Options,
) (search.Stats, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	prefixes := search.Prefixes(c, opts.Search, parallelPrefixDepth)

	var mu sync.Mutex
	total := search.Stats{Nodes: search.PrefixNodes(prefixes)}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, prefix := range prefixes {
		prefix := prefix // per-iteration copy (go.mod targets go 1.21)
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			x := search.NewExplorer(c, r, opts.Search)
			x.ExploreFrom(prefix)

			mu.Lock()
			total.Add(x.Stats())
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return total, err
}
