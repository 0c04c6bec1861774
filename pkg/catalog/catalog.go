package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wildfunctions/fourfours/pkg/stack"
)

// ErrUnknownCatalog is returned by Get for an unregistered name.
var ErrUnknownCatalog = errors.New("unknown catalog")

// Catalog is a closed set of actions together with their guards and numeric
// semantics.
//
// Apply works on a copy of s: it returns the state after the operands were
// consumed (and, for Push4, the counter advanced) plus the value to push.
// When the guard rejects the action ok is false and s is returned as given.
// Pushing the value is left to the caller.
type Catalog interface {
	Name() string
	Description() string
	// Actions lists the catalog's actions in enumeration order: Push4 first,
	// then binary operators, then unary operators.
	Actions() []Action
	Apply(s stack.State, a Action) (next stack.State, value float64, ok bool)
}

var registry = map[string]func() Catalog{}

// Register adds a catalog constructor to the registry.
func Register(name string, constructor func() Catalog) {
	registry[name] = constructor
}

// Get returns a catalog by name.
func Get(name string) (Catalog, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownCatalog, name, Names())
	}
	return ctor(), nil
}

// Names returns all registered catalog names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func push4(s stack.State) (stack.State, float64, bool) {
	if s.FoursUsed >= stack.MaxFours {
		return s, 0, false
	}
	s.FoursUsed++
	return s, 4, true
}

// popBinary pops the right operand (top of stack) and then the left one.
func popBinary(s stack.State) (next stack.State, left, right float64, ok bool) {
	if s.Len() < 2 {
		return s, 0, 0, false
	}
	next, right = s.Pop()
	next, left = next.Pop()
	return next, left, right, true
}

func popUnary(s stack.State) (next stack.State, x float64, ok bool) {
	if s.Len() < 1 {
		return s, 0, false
	}
	next, x = s.Pop()
	return next, x, true
}

func allowedSet(actions []Action) map[Action]bool {
	m := make(map[Action]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}
