package stream

import (
	"fmt"
	"slices"
	"testing"
	"testing/quick"
)

func gt(n int) func(int) bool { return func(x int) bool { return x > n } }

func TestFilter(t *testing.T) {
	src := FromSlice([]int{1, 2, 3, 4})
	r, _ := subscribeChecked[int](t, Filter[int](src, gt(2)), 0)
	assertDelivered(t, r, []int{3, 4}, 1)
}

func TestFilter_None(t *testing.T) {
	r, _ := subscribeChecked[int](t, Filter[int](FromSlice([]int{1, 3, 5}), func(n int) bool { return n%2 == 0 }), 0)
	assertDelivered(t, r, nil, 1)
}

func TestFilter_PropagatesStop(t *testing.T) {
	tracked := track[int](Range(1, 100))
	r, _ := subscribeChecked[int](t, Filter[int](tracked, gt(2)), 1)
	assertDelivered(t, r, []int{3}, 0)
}

func TestFilter_Property(t *testing.T) {
	f := func(xs []int) bool {
		got, completed := Collect[int](Filter[int](FromSlice(xs), func(n int) bool { return n%3 == 0 }))
		var want []int
		for _, x := range xs {
			if x%3 == 0 {
				want = append(want, x)
			}
		}
		return completed && slices.Equal(got, want)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestMap(t *testing.T) {
	doubled := Map[int, int](FromSlice([]int{1, 2, 3}), func(n int) int { return n * 2 })
	r, _ := subscribeChecked[int](t, doubled, 0)
	assertDelivered(t, r, []int{2, 4, 6}, 1)
}

func TestMap_TypeConversion(t *testing.T) {
	strs := Map[int, string](FromSlice([]int{1, 2, 3}), func(n int) string { return fmt.Sprintf("#%d", n) })
	r, _ := subscribeChecked[string](t, strs, 0)
	assertDelivered(t, r, []string{"#1", "#2", "#3"}, 1)
}

func TestMap_StopSkipsFurtherCalls(t *testing.T) {
	calls := 0
	m := Map[int, int](Range(0, 10), func(n int) int {
		calls++
		return n
	})
	r, _ := subscribeChecked[int](t, m, 2)
	assertDelivered(t, r, []int{0, 1}, 0)
	if calls != 2 {
		t.Errorf("expected fn called twice, got %d", calls)
	}
}

func TestMap_Property(t *testing.T) {
	f := func(xs []int16) bool {
		got, completed := Collect[int](Map[int16, int](FromSlice(xs), func(n int16) int { return int(n) + 1 }))
		if !completed || len(got) != len(xs) {
			return false
		}
		for i, x := range xs {
			if got[i] != int(x)+1 {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestTap(t *testing.T) {
	var tapped []int
	tap := Tap[int](FromSlice([]int{1, 2}), func(n int) { tapped = append(tapped, n) })
	r, _ := subscribeChecked[int](t, tap, 0)
	assertDelivered(t, r, []int{1, 2}, 1)
	if !slices.Equal(tapped, []int{1, 2}) {
		t.Errorf("expected tap to see [1 2], got %v", tapped)
	}
}

func TestTake(t *testing.T) {
	var produced []int
	seq := func(yield func(int) bool) {
		for _, v := range []int{1, 2, 3, 4} {
			produced = append(produced, v)
			if !yield(v) {
				return
			}
		}
	}
	r, _ := subscribeChecked[int](t, Take[int](FromSeq(seq), 3), 0)
	assertDelivered(t, r, []int{1, 2, 3}, 1)
	if !slices.Equal(produced, []int{1, 2, 3}) {
		t.Errorf("source should not produce past the third value, produced %v", produced)
	}
}

func TestTake_Zero(t *testing.T) {
	tracked := track[int](FromSlice([]int{1, 2, 3}))
	r, sub := subscribeChecked[int](t, Take[int](tracked, 0), 0)
	assertDelivered(t, r, nil, 1)
	if tracked.subscribes.Load() != 0 {
		t.Error("Take(0) should not subscribe to the source")
	}
	sub.Dispose()
}

func TestTake_SourceShorterThanN(t *testing.T) {
	r, _ := subscribeChecked[int](t, Take[int](FromSlice([]int{1, 2}), 5), 0)
	assertDelivered(t, r, []int{1, 2}, 1)
}

func TestTake_ExactLength(t *testing.T) {
	r, _ := subscribeChecked[int](t, Take[int](FromSlice([]int{1, 2}), 2), 0)
	assertDelivered(t, r, []int{1, 2}, 1)
}

func TestTake_DownstreamStopsOnLastValue(t *testing.T) {
	r, _ := subscribeChecked[int](t, Take[int](Range(1, 10), 3), 3)
	assertDelivered(t, r, []int{1, 2, 3}, 0)
}

func TestTake_Never(t *testing.T) {
	r, _ := subscribeChecked[int](t, Take[int](Never[int](), 3), 0)
	assertDelivered(t, r, nil, 0)
}

func TestTake_Property(t *testing.T) {
	f := func(xs []int, n uint8) bool {
		got, completed := Collect[int](Take[int](FromSlice(xs), int(n)))
		want := xs[:min(int(n), len(xs))]
		return completed && slices.Equal(got, want)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestTakeWhile(t *testing.T) {
	src := FromSlice([]int{1, 2, 3, 1})
	r, _ := subscribeChecked[int](t, TakeWhile[int](src, func(n int) bool { return n < 3 }), 0)
	assertDelivered(t, r, []int{1, 2}, 1)
}

func TestTakeWhile_AllPass(t *testing.T) {
	r, _ := subscribeChecked[int](t, TakeWhile[int](FromSlice([]int{1, 2}), gt(0)), 0)
	assertDelivered(t, r, []int{1, 2}, 1)
}

func TestTakeWhile_FirstFails(t *testing.T) {
	r, _ := subscribeChecked[int](t, TakeWhile[int](FromSlice([]int{0, 1, 2}), gt(0)), 0)
	assertDelivered(t, r, nil, 1)
}

func TestTakeUntil_InclusiveBoundary(t *testing.T) {
	src := FromSlice([]int{1, 2, 3, 4, 5})
	r, _ := subscribeChecked[int](t, TakeUntil[int](src, func(n int) bool { return n == 3 }), 0)
	assertDelivered(t, r, []int{1, 2, 3}, 1)
}

func TestTakeUntil_NeverMatches(t *testing.T) {
	r, _ := subscribeChecked[int](t, TakeUntil[int](FromSlice([]int{1, 2}), gt(10)), 0)
	assertDelivered(t, r, []int{1, 2}, 1)
}

func TestTakeUntil_DownstreamStopsFirst(t *testing.T) {
	r, _ := subscribeChecked[int](t, TakeUntil[int](FromSlice([]int{1, 2, 3}), gt(1)), 2)
	assertDelivered(t, r, []int{1, 2}, 0)
}

func TestSkip(t *testing.T) {
	r, _ := subscribeChecked[int](t, Skip[int](FromSlice([]int{1, 2, 3, 4}), 2), 0)
	assertDelivered(t, r, []int{3, 4}, 1)
}

func TestSkip_MoreThanLength(t *testing.T) {
	r, _ := subscribeChecked[int](t, Skip[int](FromSlice([]int{1, 2}), 5), 0)
	assertDelivered(t, r, nil, 1)
}

func TestSkip_ZeroAndNegative(t *testing.T) {
	for _, n := range []int{0, -1} {
		got, completed := Collect[int](Skip[int](FromSlice([]int{1, 2}), n))
		if !completed || !slices.Equal(got, []int{1, 2}) {
			t.Errorf("Skip(%d): got %v (completed=%v)", n, got, completed)
		}
	}
}

func TestSkipWhile(t *testing.T) {
	calls := 0
	pred := func(n int) bool {
		calls++
		return n < 3
	}
	r, _ := subscribeChecked[int](t, SkipWhile[int](FromSlice([]int{1, 2, 3, 1, 2}), pred), 0)
	assertDelivered(t, r, []int{3, 1, 2}, 1)
	if calls != 3 {
		t.Errorf("predicate should stop being evaluated after first failure, called %d times", calls)
	}
}

func TestSkipWhile_AllSkipped(t *testing.T) {
	r, _ := subscribeChecked[int](t, SkipWhile[int](FromSlice([]int{1, 2}), gt(0)), 0)
	assertDelivered(t, r, nil, 1)
}

func TestScan(t *testing.T) {
	sums := Scan[int, int](FromSlice([]int{1, 2, 3}), 0, func(acc, n int) int { return acc + n })
	r, _ := subscribeChecked[int](t, sums, 0)
	assertDelivered(t, r, []int{1, 3, 6}, 1)
}

func TestReduce(t *testing.T) {
	sum := Reduce[int, int](FromSlice([]int{1, 2, 3, 4}), 0, func(acc, n int) int { return acc + n })
	r, _ := subscribeChecked[int](t, sum, 0)
	assertDelivered(t, r, []int{10}, 1)
}

func TestReduce_Empty(t *testing.T) {
	r, _ := subscribeChecked[string](t, Reduce[int, string](Empty[int](), "init", func(acc string, _ int) string { return acc + "!" }), 0)
	assertDelivered(t, r, []string{"init"}, 1)
}

func TestReduce_DownstreamStops(t *testing.T) {
	r, _ := subscribeChecked[int](t, Reduce[int, int](Range(1, 3), 0, func(acc, n int) int { return acc + n }), 1)
	assertDelivered(t, r, []int{6}, 0)
}

func TestReduce_NeverCompletes(t *testing.T) {
	r, _ := subscribeChecked[int](t, Reduce[int, int](Never[int](), 0, func(acc, n int) int { return acc + n }), 0)
	assertDelivered(t, r, nil, 0)
}

func TestWindow(t *testing.T) {
	got, completed := Collect[[]int](Window[int](FromSlice([]int{1, 2, 3, 4, 5}), 2))
	if !completed {
		t.Fatal("expected completion")
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 windows, got %d: %v", len(got), got)
	}
	if !slices.Equal(got[0], []int{1, 2}) || !slices.Equal(got[1], []int{3, 4}) || !slices.Equal(got[2], []int{5}) {
		t.Errorf("unexpected windows %v", got)
	}
}

func TestWindow_ExactMultiple(t *testing.T) {
	got, _ := Collect[[]int](Window[int](FromSlice([]int{1, 2, 3, 4}), 2))
	if len(got) != 2 {
		t.Fatalf("expected 2 windows, got %v", got)
	}
}

func TestWindow_ZeroSizeDefaultsToOne(t *testing.T) {
	got, _ := Collect[[]int](Window[int](FromSlice([]int{1, 2}), 0))
	if len(got) != 2 || len(got[0]) != 1 {
		t.Errorf("expected singleton windows, got %v", got)
	}
}

func TestWindow_StopDuringPartial(t *testing.T) {
	r := &recorder[[]int]{stopAfter: 1}
	Window[int](FromSlice([]int{1, 2, 3}), 5).Subscribe(Checked[[]int](r))
	if len(r.items) != 1 || !slices.Equal(r.items[0], []int{1, 2, 3}) {
		t.Errorf("expected one partial window, got %v", r.items)
	}
	if r.completions != 0 {
		t.Error("expected no completion after stop")
	}
}

func TestChain_FilterMapTakeSkip(t *testing.T) {
	src := Range(1, 20)
	evens := Filter[int](src, func(n int) bool { return n%2 == 0 })
	squared := Map[int, int](evens, func(n int) int { return n * n })
	skipped := Skip[int](squared, 1)
	taken := Take[int](skipped, 3)
	r, _ := subscribeChecked[int](t, taken, 0)
	assertDelivered(t, r, []int{16, 36, 64}, 1)
}

func TestChain_SkipWhileTakeWhile(t *testing.T) {
	src := FromSlice([]int{0, 0, 1, 2, 3, 0, 4})
	body := TakeWhile[int](SkipWhile[int](src, func(n int) bool { return n == 0 }), gt(0))
	r, _ := subscribeChecked[int](t, body, 0)
	assertDelivered(t, r, []int{1, 2, 3}, 1)
}
