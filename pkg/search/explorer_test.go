package search

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/registry"
	"github.com/wildfunctions/fourfours/pkg/stack"
)

func run(t *testing.T, catalogName string, depth int) (*registry.Registry, Stats) {
	t.Helper()
	c, err := catalog.Get(catalogName)
	require.NoError(t, err)
	r, err := registry.New(0, 100)
	require.NoError(t, err)

	x := NewExplorer(c, r, Options{MaxDepth: depth, MaxMagnitude: 1e6})
	x.Explore()
	require.Empty(t, x.path, "backtracking must restore the path")
	return r, x.Stats()
}

func TestExplore_SixteenIsFourAdditions(t *testing.T) {
	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			r, _ := run(t, name, 7)
			slot, ok := r.Get(16)
			require.True(t, ok)
			assert.Equal(t, "4+4+4+4", slot.Expression)
			assert.Equal(t, "[4 4 4 4 + + +]", catalog.FormatPath(slot.Path))
			assert.Equal(t, registry.Rank{PathLen: 7, ExprLen: 7}, slot.Rank)
		})
	}
}

func TestExplore_ZeroWithFourFours(t *testing.T) {
	r, _ := run(t, "arithmetic", 7)
	slot, ok := r.Get(0)
	require.True(t, ok)
	assert.Equal(t, registry.Rank{PathLen: 7, ExprLen: 7}, slot.Rank)

	v, ok := slot.Tree.EvalF64()
	require.True(t, ok)
	assert.InDelta(t, 0, v, registry.Epsilon)
	t.Logf("0 = %s %s", slot.Expression, catalog.FormatPath(slot.Path))
}

func TestExplore_LongerDerivationDoesNotReplaceShorter(t *testing.T) {
	r, _ := run(t, "extended", 8)
	slot, ok := r.Get(16)
	require.True(t, ok)
	assert.Equal(t, 7, slot.Rank.PathLen)
	assert.Equal(t, "4+4+4+4", slot.Expression)
}

func TestExplore_DeeperFindsMore(t *testing.T) {
	shallow, _ := run(t, "extended", 7)
	deep, _ := run(t, "extended", 8)
	assert.Greater(t, deep.Found(), shallow.Found())
	t.Logf("depth 7: %d targets, depth 8: %d targets", shallow.Found(), deep.Found())
}

// Every accepted slot must stand up to independent re-checking.
func TestExplore_AcceptedSlotsReplay(t *testing.T) {
	c, err := catalog.Get("extended")
	require.NoError(t, err)
	r, stats := run(t, "extended", 8)
	require.NotZero(t, r.Found())

	for _, slot := range r.Slots() {
		s, err := catalog.Replay(c, slot.Path)
		require.NoError(t, err, "slot %d: %s", slot.Target, catalog.FormatPath(slot.Path))
		require.True(t, s.Complete(), "slot %d", slot.Target)
		top, _ := s.Top()
		assert.InDelta(t, float64(slot.Target), top, registry.Epsilon, "slot %d", slot.Target)

		v, ok := slot.Tree.EvalF64()
		require.True(t, ok, "slot %d: %s", slot.Target, slot.Expression)
		assert.InDelta(t, float64(slot.Target), v, registry.Epsilon, "slot %d: %s", slot.Target, slot.Expression)

		pushes := 0
		for i, a := range slot.Path {
			if a == catalog.Push4 {
				pushes++
			}
			if i > 0 {
				assert.False(t, catalog.Pruned(slot.Path[i-1], a),
					"slot %d has pruned pair %s %s", slot.Target, slot.Path[i-1], a)
			}
		}
		assert.Equal(t, stack.MaxFours, pushes, "slot %d", slot.Target)

		first, err := catalog.Build(slot.Path)
		require.NoError(t, err)
		second, err := catalog.Build(slot.Path)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("slot %d: rebuilds differ:\n%s", slot.Target, diff)
		}
		assert.Equal(t, slot.Expression, first.String())
	}

	assert.NotZero(t, stats.Nodes)
	assert.NotZero(t, stats.Completed)
	assert.NotZero(t, stats.Offered)
	assert.NotZero(t, stats.Pruned)
	assert.NotZero(t, stats.Rejected)
	t.Logf("found %d/%d, stats %+v", r.Found(), r.Total(), stats)
}

func TestExplore_Classic(t *testing.T) {
	r, _ := run(t, "classic", 8)
	for _, slot := range r.Slots() {
		for _, a := range slot.Path {
			assert.NotContains(t, []catalog.Action{catalog.Mod, catalog.Neg, catalog.Floor}, a)
		}
	}
	_, ok := r.Get(0)
	assert.True(t, ok)
}

func TestExplore_MagnitudeBound(t *testing.T) {
	c, err := catalog.Get("arithmetic")
	require.NoError(t, err)
	r, err := registry.New(0, 100)
	require.NoError(t, err)

	x := NewExplorer(c, r, Options{MaxDepth: 7, MaxMagnitude: 1})
	x.Explore()
	assert.Zero(t, r.Found())
	assert.Equal(t, int64(1), x.Stats().Nodes, "only the first push is committed")
}

func TestExplore_DepthBoundIsFatal(t *testing.T) {
	c, err := catalog.Get("arithmetic")
	require.NoError(t, err)
	r, err := registry.New(0, 100)
	require.NoError(t, err)

	x := NewExplorer(c, r, Options{MaxDepth: 2})
	x.path = make([]Frame, 3)
	assert.Panics(t, func() { x.explore() })
}

func TestPrefixes_CoverTheSearch(t *testing.T) {
	c, err := catalog.Get("extended")
	require.NoError(t, err)
	opts := Options{MaxDepth: 8, MaxMagnitude: 1e6}

	whole, err := registry.New(0, 100)
	require.NoError(t, err)
	x := NewExplorer(c, whole, opts)
	x.Explore()

	pieces, err := registry.New(0, 100)
	require.NoError(t, err)
	prefixes := Prefixes(c, opts, 2)
	require.NotEmpty(t, prefixes)

	var stats Stats
	for _, p := range prefixes {
		require.Len(t, p, 2)
		assert.Equal(t, catalog.Push4, p[0].Action)
		px := NewExplorer(c, pieces, opts)
		px.ExploreFrom(p)
		stats.Add(px.Stats())
	}

	type summary struct {
		Target     int
		Expression string
		Path       string
	}
	summarize := func(r *registry.Registry) []summary {
		var out []summary
		for _, s := range r.Slots() {
			out = append(out, summary{s.Target, s.Expression, catalog.FormatPath(s.Path)})
		}
		return out
	}
	if diff := cmp.Diff(summarize(whole), summarize(pieces)); diff != "" {
		t.Errorf("prefix exploration differs from a single explore (-whole +pieces):\n%s", diff)
	}
	assert.Equal(t, x.Stats().Completed, stats.Completed)
	assert.Equal(t, x.Stats().Nodes, stats.Nodes+PrefixNodes(prefixes))
}

func TestStep(t *testing.T) {
	c, err := catalog.Get("extended")
	require.NoError(t, err)

	s := stack.State{FoursUsed: 2}.Push(4).Push(0)
	_, ok := Step(c, s, catalog.Div)
	assert.False(t, ok, "division by zero")

	half := stack.State{FoursUsed: 1}.Push(0.5)
	_, ok = Step(c, half, catalog.Factorial)
	assert.False(t, ok, "factorial of a non-integer")

	neg := stack.State{FoursUsed: 2}.Push(-4).Push(0.5)
	_, ok = Step(c, neg, catalog.Pow)
	assert.False(t, ok, "non-finite result")

	one := stack.State{FoursUsed: 2}.Push(1)
	_, ok = Step(c, one, catalog.Sqrt)
	assert.False(t, ok, "√1 leaves the state unchanged")

	f, ok := Step(c, stack.State{FoursUsed: 2}.Push(8).Push(2), catalog.Sub)
	require.True(t, ok)
	assert.Equal(t, 6.0, f.Result)
	assert.Equal(t, []float64{6}, f.State.Values())
	assert.Equal(t, []float64{8, 2}, f.Prior.Values())
	assert.Equal(t, []catalog.Action{catalog.Sub}, Actions([]Frame{f}))
}

func TestMinStepsToComplete(t *testing.T) {
	assert.Equal(t, 7, minStepsToComplete(stack.State{}))
	assert.Equal(t, 6, minStepsToComplete(stack.State{FoursUsed: 1}.Push(4)))
	assert.Equal(t, 3, minStepsToComplete(stack.State{FoursUsed: 4}.Push(4).Push(4).Push(4).Push(4)))
	assert.Equal(t, 0, minStepsToComplete(stack.State{FoursUsed: 4}.Push(math.Pi)))
}
