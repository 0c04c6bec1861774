package search

import (
	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/stack"
)

// Prefixes enumerates, in search order, every path of length n the explorer
// would commit, applying the same pruning, guards and bounds. Shorter paths
// the explorer would stop at (complete, or cut off by a bound) are included as
// they are. Exploring every prefix with ExploreFrom covers the same
// derivations as one Explore.
func Prefixes(c catalog.Catalog, opts Options, n int) [][]Frame {
	var out [][]Frame
	var walk func(path []Frame)
	walk = func(path []Frame) {
		if len(path) == n {
			out = append(out, append([]Frame(nil), path...))
			return
		}
		var cur stack.State
		var prev catalog.Action
		hasPrev := len(path) > 0
		if hasPrev {
			cur = path[len(path)-1].State
			prev = path[len(path)-1].Action
		}
		for _, a := range c.Actions() {
			if hasPrev && catalog.Pruned(prev, a) {
				continue
			}
			f, ok := Step(c, cur, a)
			if !ok {
				continue
			}
			next := append(path, f)
			if len(next) < n && !f.State.Complete() && canDescend(f, len(next), opts) {
				walk(next)
				continue
			}
			out = append(out, append([]Frame(nil), next...))
		}
	}
	walk(nil)
	return out
}

// PrefixNodes counts the distinct frames in prefixes, which must be in the
// order Prefixes returns them. Explorers started with ExploreFrom do not count
// their prefix, so this restores the node total of a single Explore.
func PrefixNodes(prefixes [][]Frame) int64 {
	var n int64
	var prev []Frame
	for _, p := range prefixes {
		shared := 0
		for shared < len(p) && shared < len(prev) && p[shared].Action == prev[shared].Action {
			shared++
		}
		n += int64(len(p) - shared)
		prev = p
	}
	return n
}
