package state

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type counter struct {
	N     int
	Log   []string
	Error string
}

type inc struct{ By int }
type reset struct{}
type echo struct{ Msg string }
type failed struct{ Err string }

func (inc) Type() string    { return "[Counter] Increment" }
func (reset) Type() string  { return "[Counter] Reset" }
func (echo) Type() string   { return "[Counter] Echo" }
func (failed) Type() string { return "[Counter] Failed" }

func reduce(s counter, a Action) counter {
	switch a := a.(type) {
	case inc:
		s.N += a.By
	case reset:
		s.N = 0
	case echo:
		s.Log = append(append([]string(nil), s.Log...), a.Msg)
	case failed:
		s.Error = a.Err
	}
	return s
}

func TestDispatch_ReducesAndReturnsState(t *testing.T) {
	s := New(counter{}, reduce)
	ctx := context.Background()

	got := s.Dispatch(ctx, inc{By: 2})
	assert.Equal(t, 2, got.N)
	got = s.Dispatch(ctx, inc{By: 3})
	assert.Equal(t, 5, got.N)
	assert.Equal(t, 5, s.State().N)

	s.Dispatch(ctx, reset{})
	assert.Equal(t, 0, s.State().N)
}

func TestDispatch_EffectsSeePostReduceStateAndChain(t *testing.T) {
	var seen []int
	effect := func(_ context.Context, a Action, st counter) []Action {
		if _, ok := a.(inc); !ok {
			return nil
		}
		seen = append(seen, st.N)
		if st.N > 10 {
			return []Action{failed{Err: "too big"}}
		}
		return []Action{echo{Msg: "inc"}}
	}
	s := New(counter{}, reduce, WithEffects[counter](effect))
	ctx := context.Background()

	got := s.Dispatch(ctx, inc{By: 4})
	assert.Equal(t, []int{4}, seen)
	assert.Equal(t, []string{"inc"}, got.Log, "follow-up action applied before Dispatch returns")

	got = s.Dispatch(ctx, inc{By: 20})
	assert.Equal(t, "too big", got.Error)
}

func TestDispatch_ConcurrentChainsDoNotInterleave(t *testing.T) {
	effect := func(_ context.Context, a Action, _ counter) []Action {
		if _, ok := a.(inc); ok {
			return []Action{echo{Msg: "after-inc"}}
		}
		return nil
	}
	s := New(counter{}, reduce, WithEffects[counter](effect), WithHistory[counter](0))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := s.Dispatch(ctx, inc{By: 1})
			// the returned state is the one this chain produced
			assert.Equal(t, got.N, len(got.Log))
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.State().N)
	assert.Empty(t, s.History())
}

func TestHistoryIsBounded(t *testing.T) {
	s := New(counter{}, reduce, WithHistory[counter](3))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Dispatch(ctx, inc{By: 1})
	}
	s.Dispatch(ctx, reset{})

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, "[Counter] Increment", h[0].Type)
	assert.Equal(t, "[Counter] Reset", h[2].Type)
}

func TestSubscribe(t *testing.T) {
	s := New(counter{N: 7}, reduce)
	ctx := context.Background()

	ch, cancel := s.Subscribe(1)
	first := <-ch
	assert.Equal(t, 7, first.N, "subscriber starts with current state")

	// a slow subscriber with a one-slot buffer keeps only the latest state
	s.Dispatch(ctx, inc{By: 1})
	s.Dispatch(ctx, inc{By: 1})
	latest := <-ch
	assert.Equal(t, 9, latest.N)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)

	// dispatching after cancel must not panic on the closed channel
	s.Dispatch(ctx, inc{By: 1})
}

func TestSubscribe_ConsumerGoroutine(t *testing.T) {
	s := New(counter{}, reduce)
	ch, cancel := s.Subscribe(16)

	done := make(chan int)
	go func() {
		last := 0
		for st := range ch {
			last = st.N
		}
		done <- last
	}()

	for i := 0; i < 5; i++ {
		s.Dispatch(context.Background(), inc{By: 1})
	}
	cancel()
	assert.Equal(t, 5, <-done)
}

func TestCreateSelectorMemoises(t *testing.T) {
	calls := 0
	sel := CreateSelector(
		func(c counter) []string { return c.Log },
		SameSlice[string],
		func(log []string) int { calls++; return len(log) },
	)
	s := New(counter{}, reduce)
	ctx := context.Background()

	assert.Equal(t, 0, Select(s, sel))
	s.Dispatch(ctx, inc{By: 1}) // Log untouched
	assert.Equal(t, 0, Select(s, sel))
	assert.Equal(t, 1, calls)

	s.Dispatch(ctx, echo{Msg: "x"})
	assert.Equal(t, 1, Select(s, sel))
	assert.Equal(t, 2, calls)
}

func TestSameSlice(t *testing.T) {
	a := []int{1, 2}
	assert.True(t, SameSlice(a, a))
	assert.False(t, SameSlice(a, []int{1, 2}))
	assert.False(t, SameSlice(a, a[:1]))
	assert.True(t, SameSlice([]int{}, []int{}))
	assert.False(t, SameSlice(nil, []int{}))
	assert.True(t, SameSlice[int](nil, nil))
}

type ctxKey struct{}

func TestDispatch_EffectsOutliveCallerCancellation(t *testing.T) {
	var errs []error
	var vals []any
	effect := func(ctx context.Context, a Action, _ counter) []Action {
		errs = append(errs, ctx.Err())
		vals = append(vals, ctx.Value(ctxKey{}))
		if _, ok := a.(inc); ok {
			return []Action{echo{Msg: "saved"}}
		}
		return nil
	}
	s := New(counter{}, reduce, WithEffects[counter](effect))

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-7"))
	cancel()
	got := s.Dispatch(ctx, inc{By: 1})

	assert.Equal(t, []string{"saved"}, got.Log)
	assert.Equal(t, []error{nil, nil}, errs)
	assert.Equal(t, []any{"req-7", "req-7"}, vals)
}
