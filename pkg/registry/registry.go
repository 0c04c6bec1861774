package registry

import (
	"fmt"
	"math"
	"sync"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/expr"
)

// Epsilon is how far a value may sit from an integer and still count as
// reaching it.
const Epsilon = 1e-7

// Slot is the best derivation recorded for one target.
type Slot struct {
	Target     int              `json:"target"`
	Value      float64          `json:"value"`
	Path       []catalog.Action `json:"path"`
	Expression string           `json:"expression"`
	Rank       Rank             `json:"rank"`
	Tree       expr.ExprNode    `json:"-"`
}

func (s *Slot) clone() Slot {
	out := *s
	out.Path = append([]catalog.Action(nil), s.Path...)
	if s.Tree != nil {
		out.Tree = s.Tree.Clone()
	}
	return out
}

// Update is the observation emitted when a slot is filled or replaced.
type Update struct {
	Slot     Slot
	Replaced bool
	Found    int
	Total    int
}

// Observer receives accepted updates. It runs inside the registry's critical
// section, so updates arrive in acceptance order; it must not call back into
// the registry.
type Observer func(Update)

// Option configures a Registry.
type Option func(*Registry)

// WithObserver adds an observer for accepted updates.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observers = append(r.observers, o)
	}
}

// Registry keeps the best derivation per integer target in [min, max].
//
// Thread Safety: safe for concurrent use. Offer performs the whole
// read-compare-write sequence under one lock.
type Registry struct {
	mu        sync.Mutex
	min, max  int
	slots     []*Slot
	found     int
	offered   int64
	accepted  int64
	observers []Observer
}

// New creates an empty registry for targets min..max inclusive.
func New(min, max int, opts ...Option) (*Registry, error) {
	if max < min {
		return nil, fmt.Errorf("invalid target range [%d,%d]", min, max)
	}
	r := &Registry{
		min:   min,
		max:   max,
		slots: make([]*Slot, max-min+1),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Range returns the inclusive target range.
func (r *Registry) Range() (min, max int) { return r.min, r.max }

// Total returns the number of targets.
func (r *Registry) Total() int { return len(r.slots) }

// Target maps a value to the integer target it reaches, if any.
func (r *Registry) Target(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	closest := math.Round(v)
	if math.Abs(v-closest) > Epsilon {
		return 0, false
	}
	if closest < float64(r.min) || closest > float64(r.max) {
		return 0, false
	}
	return int(closest), true
}

// Wants reports whether a derivation of pathLen actions could still improve
// target. It is a cheap pre-check; Offer makes the binding decision.
func (r *Registry) Wants(target, pathLen int) bool {
	if target < r.min || target > r.max {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	slot := r.slots[target-r.min]
	return slot == nil || pathLen <= slot.Rank.PathLen
}

// Offer submits a candidate and reports whether it was accepted. A candidate
// replaces the incumbent only when its rank is strictly better; the first of
// equally ranked candidates wins.
func (r *Registry) Offer(c Candidate) bool {
	target, ok := r.Target(c.Value)
	if !ok {
		return false
	}
	rank := c.Rank()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.offered++
	idx := target - r.min
	incumbent := r.slots[idx]
	if incumbent != nil && !rank.Better(incumbent.Rank) {
		return false
	}

	slot := &Slot{
		Target:     target,
		Value:      c.Value,
		Path:       c.Path,
		Expression: c.Expression,
		Rank:       rank,
		Tree:       c.Tree,
	}
	r.slots[idx] = slot
	if incumbent == nil {
		r.found++
	}
	r.accepted++

	if len(r.observers) > 0 {
		u := Update{Slot: slot.clone(), Replaced: incumbent != nil, Found: r.found, Total: len(r.slots)}
		for _, o := range r.observers {
			o(u)
		}
	}
	return true
}

// Get returns a copy of the slot for target.
func (r *Registry) Get(target int) (Slot, bool) {
	if target < r.min || target > r.max {
		return Slot{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	slot := r.slots[target-r.min]
	if slot == nil {
		return Slot{}, false
	}
	return slot.clone(), true
}

// Slots returns copies of all filled slots in target order.
func (r *Registry) Slots() []Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Slot, 0, r.found)
	for _, s := range r.slots {
		if s != nil {
			out = append(out, s.clone())
		}
	}
	return out
}

// Found returns how many targets have a derivation.
func (r *Registry) Found() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.found
}

// Counts returns how many candidates were offered within range and how many
// were accepted.
func (r *Registry) Counts() (offered, accepted int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offered, r.accepted
}
