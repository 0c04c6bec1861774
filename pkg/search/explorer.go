package search

import (
	"fmt"
	"math"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/registry"
	"github.com/wildfunctions/fourfours/pkg/stack"
)

// Options bound the exploration.
type Options struct {
	// MaxDepth is the longest derivation, in actions, that is explored.
	MaxDepth int
	// MaxMagnitude stops descending below values larger than this in
	// absolute value. Zero disables the bound.
	MaxMagnitude float64
}

// Stats counts what an explorer did.
type Stats struct {
	Nodes     int64 `json:"nodes"`
	Completed int64 `json:"completed"`
	Offered   int64 `json:"offered"`
	Pruned    int64 `json:"pruned"`
	Rejected  int64 `json:"rejected"`
	NonFinite int64 `json:"non_finite"`
	NoOps     int64 `json:"no_ops"`
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Nodes += o.Nodes
	s.Completed += o.Completed
	s.Offered += o.Offered
	s.Pruned += o.Pruned
	s.Rejected += o.Rejected
	s.NonFinite += o.NonFinite
	s.NoOps += o.NoOps
}

// Explorer runs the depth-first backtracking search and feeds complete
// derivations to a registry.
//
// Thread Safety: an Explorer owns its path and is not safe for concurrent use.
// Several explorers may share one registry.
type Explorer struct {
	catalog  catalog.Catalog
	registry *registry.Registry
	opts     Options
	path     []Frame
	actions  []catalog.Action
	stats    Stats
}

// NewExplorer creates an explorer over catalog c reporting into r.
func NewExplorer(c catalog.Catalog, r *registry.Registry, opts Options) *Explorer {
	return &Explorer{
		catalog:  c,
		registry: r,
		opts:     opts,
		path:     make([]Frame, 0, opts.MaxDepth+1),
		actions:  make([]catalog.Action, 0, opts.MaxDepth+1),
	}
}

// Stats returns the counters accumulated so far.
func (x *Explorer) Stats() Stats { return x.stats }

// Explore searches every derivation from the empty state.
func (x *Explorer) Explore() {
	x.ExploreFrom(nil)
}

// ExploreFrom searches every derivation that starts with prefix. The prefix
// must be a legal path as produced by Prefixes.
func (x *Explorer) ExploreFrom(prefix []Frame) {
	x.path = append(x.path[:0], prefix...)
	if n := len(x.path); n > 0 {
		last := x.path[n-1]
		if last.State.Complete() {
			x.offer(last.Result)
		} else if x.descends(last) {
			x.explore()
		}
	} else {
		x.explore()
	}
	x.path = x.path[:0]
}

// descends reports whether the search continues below f, which is the last
// frame of the current path.
func (x *Explorer) descends(f Frame) bool {
	return canDescend(f, len(x.path), x.opts)
}

func canDescend(f Frame, depth int, opts Options) bool {
	if depth >= opts.MaxDepth {
		return false
	}
	if opts.MaxMagnitude > 0 && math.Abs(f.Result) > opts.MaxMagnitude {
		return false
	}
	return depth+minStepsToComplete(f.State) <= opts.MaxDepth
}

func (x *Explorer) explore() {
	entry := len(x.path)
	if entry > x.opts.MaxDepth {
		panic(fmt.Sprintf("search: path length %d exceeds depth bound %d", entry, x.opts.MaxDepth))
	}

	var cur stack.State
	var prev catalog.Action
	hasPrev := entry > 0
	if hasPrev {
		cur = x.path[entry-1].State
		prev = x.path[entry-1].Action
	}

	for _, a := range x.catalog.Actions() {
		if hasPrev && catalog.Pruned(prev, a) {
			x.stats.Pruned++
			continue
		}
		f, o := step(x.catalog, cur, a)
		switch o {
		case stepRejected:
			x.stats.Rejected++
			continue
		case stepNonFinite:
			x.stats.NonFinite++
			continue
		case stepNoOp:
			x.stats.NoOps++
			continue
		}

		x.path = append(x.path, f)
		x.stats.Nodes++
		if f.State.Complete() {
			x.offer(f.Result)
		} else if x.descends(f) {
			x.explore()
		}
		x.path = x.path[:entry]
	}
}

func (x *Explorer) offer(v float64) {
	x.stats.Completed++
	target, ok := x.registry.Target(v)
	if !ok || !x.registry.Wants(target, len(x.path)) {
		return
	}

	x.actions = x.actions[:0]
	for _, f := range x.path {
		x.actions = append(x.actions, f.Action)
	}
	tree, err := catalog.Build(x.actions)
	if err != nil {
		panic(fmt.Sprintf("search: %s: %v", catalog.FormatPath(x.actions), err))
	}
	x.stats.Offered++
	x.registry.Offer(registry.NewCandidate(v, x.actions, tree))
}
