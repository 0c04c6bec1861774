package registry

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/expr"
)

const (
	P  = catalog.Push4
	Ad = catalog.Add
	Su = catalog.Sub
	Mu = catalog.Mul
	Di = catalog.Div
	Sq = catalog.Sqrt
)

func candidate(t *testing.T, value float64, path ...catalog.Action) Candidate {
	t.Helper()
	tree, err := catalog.Build(path)
	require.NoError(t, err)
	return NewCandidate(value, path, tree)
}

func newRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r, err := New(0, 100, opts...)
	require.NoError(t, err)
	return r
}

func TestNew_InvalidRange(t *testing.T) {
	_, err := New(10, 5)
	assert.Error(t, err)
}

func TestTarget(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		v    float64
		want int
		ok   bool
	}{
		{16, 16, true},
		{16 + 1e-8, 16, true},
		{16 - 1e-8, 16, true},
		{16.000001, 0, false},
		{0.5, 0, false},
		{-1, 0, false},
		{101, 0, false},
		{100, 100, true},
		{math.Copysign(0, -1), 0, true},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
	}
	for _, tc := range tests {
		got, ok := r.Target(tc.v)
		assert.Equal(t, tc.ok, ok, "Target(%v)", tc.v)
		if tc.ok {
			assert.Equal(t, tc.want, got, "Target(%v)", tc.v)
		}
	}
}

func TestOffer_EmptySlot(t *testing.T) {
	var updates []Update
	r := newRegistry(t, WithObserver(func(u Update) { updates = append(updates, u) }))

	c := candidate(t, 16, P, P, Ad, P, Ad, P, Ad)
	require.True(t, r.Offer(c))

	slot, ok := r.Get(16)
	require.True(t, ok)
	assert.Equal(t, 16, slot.Target)
	assert.Equal(t, "4+4+4+4", slot.Expression)
	assert.Equal(t, Rank{PathLen: 7, ExprLen: 7}, slot.Rank)
	assert.Equal(t, 1, r.Found())
	assert.Equal(t, 101, r.Total())

	require.Len(t, updates, 1)
	assert.False(t, updates[0].Replaced)
	assert.Equal(t, 1, updates[0].Found)
	assert.Equal(t, 101, updates[0].Total)
}

func TestOffer_OutOfRangeOrInexact(t *testing.T) {
	r := newRegistry(t)
	assert.False(t, r.Offer(candidate(t, 256, P, P, catalog.Pow)))
	assert.False(t, r.Offer(candidate(t, 0.5, P, P, P, Ad, Di)))
	assert.Equal(t, 0, r.Found())

	offered, accepted := r.Counts()
	assert.Zero(t, offered)
	assert.Zero(t, accepted)
}

func TestOffer_TieBreak(t *testing.T) {
	long := candidate(t, 2, P, Sq, P, P, Su, P, Mu, Ad) // √4+(4-4)*4
	short := candidate(t, 2, P, P, P, Ad, Di, P, Mu)    // 4/(4+4)*4
	shorter := candidate(t, 2, P, P, Di, P, P, Di, Ad)  // 4/4+4/4
	require.Equal(t, Rank{PathLen: 8, ExprLen: 10}, long.Rank())
	require.Equal(t, Rank{PathLen: 7, ExprLen: 9}, short.Rank())
	require.Equal(t, Rank{PathLen: 7, ExprLen: 7}, shorter.Rank())

	var replaced []bool
	r := newRegistry(t, WithObserver(func(u Update) { replaced = append(replaced, u.Replaced) }))

	require.True(t, r.Offer(long), "empty slot accepts")
	require.True(t, r.Offer(short), "shorter path replaces")
	assert.False(t, r.Offer(long), "longer path never replaces")
	require.True(t, r.Offer(shorter), "same path length, shorter expression replaces")

	slot, _ := r.Get(2)
	assert.Equal(t, "4/4+4/4", slot.Expression)

	// equal rank: the incumbent stays
	assert.False(t, r.Offer(candidate(t, 2, P, P, Di, P, P, Di, Ad)))

	assert.Equal(t, []bool{false, true, true}, replaced)
	assert.Equal(t, 1, r.Found())

	offered, accepted := r.Counts()
	assert.Equal(t, int64(5), offered)
	assert.Equal(t, int64(3), accepted)
}

func TestOffer_EqualRankFirstWins(t *testing.T) {
	r := newRegistry(t)
	first := candidate(t, 8, P, P, Ad, P, Ad, P, Su)  // 4+4+4-4
	second := candidate(t, 8, P, P, Mu, P, Su, P, Su) // 4*4-4-4
	require.Equal(t, first.Rank(), second.Rank())

	require.True(t, r.Offer(first))
	assert.False(t, r.Offer(second))

	slot, ok := r.Get(8)
	require.True(t, ok)
	assert.Equal(t, "4+4+4-4", slot.Expression)
}

func TestWants(t *testing.T) {
	r := newRegistry(t)
	assert.True(t, r.Wants(16, 11))
	assert.False(t, r.Wants(101, 7))

	require.True(t, r.Offer(candidate(t, 16, P, P, Ad, P, Ad, P, Ad)))
	assert.True(t, r.Wants(16, 7), "equal path length may still win on expression length")
	assert.False(t, r.Wants(16, 8))
}

func TestGet_ReturnsCopies(t *testing.T) {
	r := newRegistry(t)
	require.True(t, r.Offer(candidate(t, 16, P, P, Ad, P, Ad, P, Ad)))

	slot, _ := r.Get(16)
	slot.Path[0] = catalog.Neg
	slot.Tree.(*expr.BinaryNode).Op = expr.OpSub

	again, _ := r.Get(16)
	assert.Equal(t, P, again.Path[0])
	assert.Equal(t, "4+4+4+4", again.Tree.String())

	_, ok := r.Get(17)
	assert.False(t, ok)
	_, ok = r.Get(-3)
	assert.False(t, ok)
}

func TestCandidate_CopiesPath(t *testing.T) {
	path := []catalog.Action{P, P, Ad, P, Ad, P, Ad}
	c := candidate(t, 16, path...)
	path[2] = Mu
	assert.Equal(t, Ad, c.Path[2])
}

func TestSlots_TargetOrder(t *testing.T) {
	r := newRegistry(t)
	require.True(t, r.Offer(candidate(t, 16, P, P, Ad, P, Ad, P, Ad)))
	require.True(t, r.Offer(candidate(t, 0, P, P, Su, P, Ad, P, Su)))
	require.True(t, r.Offer(candidate(t, 8, P, P, Ad, P, Ad, P, Su)))

	slots := r.Slots()
	require.Len(t, slots, 3)
	assert.Equal(t, []int{0, 8, 16}, []int{slots[0].Target, slots[1].Target, slots[2].Target})
}

// Concurrent offers must leave the best rank in the slot no matter the order.
func TestOffer_Concurrent(t *testing.T) {
	r := newRegistry(t)
	paths := [][]catalog.Action{
		{P, Sq, P, P, Su, P, Mu, Ad},
		{P, P, P, Ad, Di, P, Mu},
		{P, P, Di, P, P, Di, Ad},
	}
	cands := make([]Candidate, len(paths))
	for i, p := range paths {
		cands[i] = candidate(t, 2, p...)
	}
	best := cands[2].Rank()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				r.Offer(cands[(w+i)%len(cands)])
			}
		}(w)
	}
	wg.Wait()

	slot, ok := r.Get(2)
	require.True(t, ok)
	assert.Equal(t, best, slot.Rank)
	assert.Equal(t, 1, r.Found())
}

func TestRank_Better(t *testing.T) {
	assert.True(t, Rank{7, 9}.Better(Rank{8, 5}))
	assert.True(t, Rank{7, 6}.Better(Rank{7, 7}))
	assert.False(t, Rank{7, 7}.Better(Rank{7, 7}))
	assert.False(t, Rank{8, 1}.Better(Rank{7, 20}))
}
