package stream

import (
	"runtime"
	"slices"
	"sync"
	"testing"
	"testing/quick"
	"weak"
)

func stateOf(t *testing.T, sub Subscription) concatState {
	t.Helper()
	cs, ok := sub.(*concatSubscription)
	if !ok {
		t.Fatalf("expected *concatSubscription, got %T", sub)
	}
	return cs.cell.current()
}

func TestConcat(t *testing.T) {
	src := Concat[int](FromSlice([]int{1, 2}), FromSlice([]int{3, 4, 5}))
	r, sub := subscribeChecked[int](t, src, 0)
	assertDelivered(t, r, []int{1, 2, 3, 4, 5}, 1)
	if got := stateOf(t, sub); got != concatRunningSecond {
		t.Errorf("expected running_second, got %s", got)
	}
	sub.Dispose()
	if got := stateOf(t, sub); got != concatDisposed {
		t.Errorf("expected disposed, got %s", got)
	}
}

func TestConcat_EmptySides(t *testing.T) {
	tests := []struct {
		name          string
		first, second Observable[int]
		want          []int
	}{
		{"empty first", Empty[int](), Just(1, 2), []int{1, 2}},
		{"empty second", Just(1, 2), Empty[int](), []int{1, 2}},
		{"both empty", Empty[int](), Empty[int](), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := subscribeChecked[int](t, Concat(tc.first, tc.second), 0)
			assertDelivered(t, r, tc.want, 1)
		})
	}
}

func TestConcat_Property(t *testing.T) {
	f := func(xs, ys []int) bool {
		got, completed := Collect[int](Concat[int](FromSlice(xs), FromSlice(ys)))
		return completed && len(got) == len(xs)+len(ys) && slices.Equal(got, append(slices.Clone(xs), ys...))
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestConcat_StopDuringFirstSkipsSecond(t *testing.T) {
	second := track[int](Just(9))
	r, _ := subscribeChecked[int](t, Concat[int](Just(1, 2, 3), second), 2)
	assertDelivered(t, r, []int{1, 2}, 0)
	if second.subscribes.Load() != 0 {
		t.Error("second source should not be subscribed after downstream stopped")
	}
}

func TestConcat_StopDuringSecond(t *testing.T) {
	r, _ := subscribeChecked[int](t, Concat[int](Just(1, 2), Just(3, 4, 5)), 3)
	assertDelivered(t, r, []int{1, 2, 3}, 0)
}

func TestConcat_TakeAcrossBoundary(t *testing.T) {
	r, _ := subscribeChecked[int](t, Take[int](Concat[int](Just(1, 2), Just(3, 4, 5)), 3), 0)
	assertDelivered(t, r, []int{1, 2, 3}, 1)
}

func TestConcat_SynchronousFirstDisposedOnHandOff(t *testing.T) {
	first := track[int](Just(1))
	second := track[int](Just(2))
	r, sub := subscribeChecked[int](t, Concat[int](first, second), 0)
	assertDelivered(t, r, []int{1, 2}, 1)

	// first completed before its subscription could be stored.
	if first.disposes.Load() != 1 {
		t.Errorf("expected first subscription disposed once, got %d", first.disposes.Load())
	}
	if second.disposes.Load() != 0 {
		t.Error("second subscription should be held until dispose")
	}

	sub.Dispose()
	sub.Dispose()
	sub.Dispose()
	if second.disposes.Load() != 1 {
		t.Errorf("expected second subscription disposed exactly once, got %d", second.disposes.Load())
	}
	if first.disposes.Load() != 1 {
		t.Errorf("first subscription must not be disposed again, got %d", first.disposes.Load())
	}
}

func TestConcat_NeverFirst(t *testing.T) {
	first := track[int](Never[int]())
	second := track[int](Just(1))
	r, sub := subscribeChecked[int](t, Concat[int](first, second), 0)
	assertDelivered(t, r, nil, 0)
	if got := stateOf(t, sub); got != concatRunningFirst {
		t.Errorf("expected running_first, got %s", got)
	}

	sub.Dispose()
	sub.Dispose()
	if first.disposes.Load() != 1 {
		t.Errorf("expected first disposed once, got %d", first.disposes.Load())
	}
	if second.subscribes.Load() != 0 {
		t.Error("second should never be subscribed")
	}
}

func TestConcat_AsynchronousHandOff(t *testing.T) {
	first := &manualSource[int]{}
	second := &manualSource[int]{}
	r, sub := subscribeChecked[int](t, Concat[int](first, second), 0)

	if got := stateOf(t, sub); got != concatRunningFirst {
		t.Fatalf("expected running_first, got %s", got)
	}
	first.push(1, 2)
	first.complete()

	if got := stateOf(t, sub); got != concatRunningSecond {
		t.Fatalf("expected running_second, got %s", got)
	}
	if first.disposes.Load() != 1 {
		t.Errorf("expected first released at hand-off, got %d disposals", first.disposes.Load())
	}

	second.push(3)
	second.complete()
	assertDelivered(t, r, []int{1, 2, 3}, 1)

	sub.Dispose()
	sub.Dispose()
	if second.disposes.Load() != 1 {
		t.Errorf("expected second disposed once, got %d", second.disposes.Load())
	}
	if first.disposes.Load() != 1 {
		t.Errorf("first must not be disposed twice, got %d", first.disposes.Load())
	}
}

func TestConcat_DisposedBeforeFirstCompletes(t *testing.T) {
	first := &manualSource[int]{}
	second := &manualSource[int]{}
	r, sub := subscribeChecked[int](t, Concat[int](first, second), 0)

	first.push(1)
	sub.Dispose()
	if first.disposes.Load() != 1 {
		t.Errorf("expected first disposed, got %d", first.disposes.Load())
	}

	first.complete()
	if second.subscribes.Load() != 0 {
		t.Error("second must not be subscribed after dispose")
	}
	assertDelivered(t, r, []int{1}, 0)
	if got := stateOf(t, sub); got != concatDisposed {
		t.Errorf("expected disposed, got %s", got)
	}
}

func TestConcat_ConcurrentDisposeAndHandOff(t *testing.T) {
	for i := 0; i < 200; i++ {
		first := &manualSource[int]{}
		second := track[int](Just(7))
		sub := Concat[int](first, second).Subscribe(&recorder[int]{})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			first.complete()
		}()
		go func() {
			defer wg.Done()
			sub.Dispose()
		}()
		wg.Wait()
		sub.Dispose()

		if got := first.disposes.Load(); got != 1 {
			t.Fatalf("iteration %d: first disposed %d times, want 1", i, got)
		}
		if subs, disp := second.subscribes.Load(), second.disposes.Load(); subs != disp {
			t.Fatalf("iteration %d: second subscribed %d times but disposed %d times", i, subs, disp)
		}
	}
}

func TestConcat_CollectedCellActsDisposed(t *testing.T) {
	second := track[int](Just(1))
	r := &recorder[int]{}
	adapter := newDetachedConcatObserver[int](r, second)

	for i := 0; i < 10 && adapter.cell.Value() != nil; i++ {
		runtime.GC()
	}
	if adapter.cell.Value() != nil {
		t.Skip("garbage collector did not reclaim the cell")
	}

	adapter.OnNext(5)
	adapter.OnCompleted()
	if second.subscribes.Load() != 0 {
		t.Error("second must not be subscribed once the cell is gone")
	}
	assertDelivered(t, r, []int{5}, 0)
}

// newDetachedConcatObserver builds an adapter whose cell is referenced by
// nothing but the adapter's weak pointer.
func newDetachedConcatObserver[T any](o Observer[T], second Observable[T]) *concatObserver[T] {
	cell := &concatCell{}
	return &concatObserver[T]{
		downstream: downstream[T]{o: o},
		second:     second,
		cell:       weak.Make(cell),
	}
}

func TestConcatAll(t *testing.T) {
	got, completed := Collect[int](ConcatAll[int](Just(1), Empty[int](), Just(2, 3), Just(4)))
	if !completed || !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("got %v (completed=%v), want [1 2 3 4]", got, completed)
	}
}

func TestConcatAll_ZeroAndOne(t *testing.T) {
	got, completed := Collect[int](ConcatAll[int]())
	if !completed || len(got) != 0 {
		t.Errorf("expected empty completion, got %v (completed=%v)", got, completed)
	}
	got, completed = Collect[int](ConcatAll[int](Just(1, 2)))
	if !completed || !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got %v (completed=%v), want [1 2]", got, completed)
	}
}

func TestConcatState_String(t *testing.T) {
	if concatState(42).String() != "unknown" {
		t.Error("expected unknown for out-of-range state")
	}
}
