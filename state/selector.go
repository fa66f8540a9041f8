package state

import (
	"context"
	"sync"
)

// Select applies a selector to the store's current state.
func Select[S, T any](s *Store[S], sel func(S) T) T {
	return sel(s.State())
}

// CreateSelector builds a memoised selector: input extracts the relevant
// part of S, project derives the result from it. project runs again only
// when eq reports that the input changed.
func CreateSelector[S, I, T any](input func(S) I, eq func(I, I) bool, project func(I) T) func(S) T {
	m := &memo[I, T]{eq: eq, project: project}
	return func(s S) T { return m.get(input(s)) }
}

// SameSlice reports whether a and b are the same slice value. Reducers
// never edit slices in place, so identity means equality.
func SameSlice[T any](a, b []T) bool {
	if len(a) != len(b) || (a == nil) != (b == nil) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

type memo[I, T any] struct {
	mu      sync.Mutex
	eq      func(I, I) bool
	project func(I) T
	last    I
	result  T
	primed  bool
}

func (m *memo[I, T]) get(in I) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.primed && m.eq(m.last, in) {
		return m.result
	}
	m.last = in
	m.result = m.project(in)
	m.primed = true
	return m.result
}

// Scope lifts an effect written against one slice of state F into an
// effect on the root state S.
func Scope[S, F any](get func(S) F, eff Effect[F]) Effect[S] {
	return func(ctx context.Context, a Action, s S) []Action {
		return eff(ctx, a, get(s))
	}
}
