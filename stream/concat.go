package stream

import (
	"sync"
	"weak"
)

// Concat delivers every value of first, then, once first completes,
// subscribes second with the same observer. The hand-off happens at most
// once. If the observer stops during first, second is never subscribed.
//
// The returned Subscription is the sole owner of the coordination state.
// Disposing it, from any goroutine, releases whichever inner subscription is
// held and prevents a hand-off that has not started yet. Dropping it without
// Dispose has the same effect once the garbage collector reclaims it, so keep
// it reachable for as long as a non-synchronous first source may still
// complete.
func Concat[T any](first, second Observable[T]) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		cell := &concatCell{}
		adapter := &concatObserver[T]{
			downstream: downstream[T]{o: o},
			second:     second,
			cell:       weak.Make(cell),
		}

		sub := first.Subscribe(adapter)
		if !cell.storeFirst(sub) {
			// first already handed off or the cell was disposed meanwhile.
			sub.Dispose()
		}
		return &concatSubscription{cell: cell}
	}
}

// ConcatAll chains sources so each one starts when the previous completes.
// No sources behaves like Empty.
func ConcatAll[T any](sources ...Observable[T]) ObservableFunc[T] {
	switch len(sources) {
	case 0:
		return Empty[T]()
	case 1:
		return sources[0].Subscribe
	}
	acc := Concat(sources[0], sources[1])
	for _, next := range sources[2:] {
		acc = Concat[T](acc, next)
	}
	return acc
}

type concatState int

const (
	concatInitial concatState = iota
	concatRunningFirst
	concatRunningSecond
	concatDisposed
)

func (s concatState) String() string {
	switch s {
	case concatInitial:
		return "initial"
	case concatRunningFirst:
		return "running_first"
	case concatRunningSecond:
		return "running_second"
	case concatDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// concatCell is shared by one Concat subscription and its adapter observer.
// Every read-modify-write happens under mu; inner subscriptions are disposed
// by the caller after the lock is released.
type concatCell struct {
	mu    sync.Mutex
	state concatState
	sub   Subscription
}

// storeFirst moves Initial -> RunningFirst holding sub. It reports false,
// leaving sub with the caller, if the cell already left Initial.
func (c *concatCell) storeFirst(sub Subscription) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != concatInitial {
		return false
	}
	c.state = concatRunningFirst
	c.sub = sub
	return true
}

// storeSecond moves to RunningSecond holding sub and returns the
// subscription it replaced. ok is false if the cell is disposed, in which
// case sub stays with the caller.
func (c *concatCell) storeSecond(sub Subscription) (prev Subscription, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == concatDisposed {
		return nil, false
	}
	prev = c.sub
	c.state = concatRunningSecond
	c.sub = sub
	return prev, true
}

// dispose moves to Disposed and returns the subscription that was held.
// Only the first call returns a non-nil subscription.
func (c *concatCell) dispose() Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.sub
	c.state = concatDisposed
	c.sub = nil
	return prev
}

func (c *concatCell) isDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == concatDisposed
}

func (c *concatCell) current() concatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

type concatObserver[T any] struct {
	downstream[T]
	second Observable[T]
	cell   weak.Pointer[concatCell]
}

func (c *concatObserver[T]) OnNext(value T) bool {
	return c.next(value)
}

func (c *concatObserver[T]) OnCompleted() {
	if c.done {
		return
	}
	// first's completion is consumed here; second completes the observer.
	c.done = true

	cell := c.cell.Value()
	if cell == nil || cell.isDisposed() {
		return
	}

	sub := c.second.Subscribe(c.o)
	prev, ok := cell.storeSecond(sub)
	if !ok {
		sub.Dispose()
		return
	}
	if prev != nil {
		prev.Dispose()
	}
}

type concatSubscription struct {
	cell *concatCell
}

func (s *concatSubscription) Dispose() {
	if prev := s.cell.dispose(); prev != nil {
		prev.Dispose()
	}
}
