package stream

// Filter forwards only values that satisfy pred.
func Filter[T any](src Observable[T], pred func(T) bool) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		return src.Subscribe(&filterObserver[T]{downstream: downstream[T]{o: o}, pred: pred})
	}
}

// Map transforms each value with fn.
func Map[I, O any](src Observable[I], fn func(I) O) ObservableFunc[O] {
	return func(o Observer[O]) Subscription {
		return src.Subscribe(&mapObserver[I, O]{downstream: downstream[O]{o: o}, fn: fn})
	}
}

// Tap calls fn for each value as a side effect, then forwards it unchanged.
func Tap[T any](src Observable[T], fn func(T)) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		return src.Subscribe(&tapObserver[T]{downstream: downstream[T]{o: o}, fn: fn})
	}
}

// Take forwards the first n values, then completes and stops the source
// without waiting for it to finish. With n <= 0 it completes immediately and
// never subscribes to src.
func Take[T any](src Observable[T], n int) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		if n <= 0 {
			o.OnCompleted()
			return Inert()
		}
		return src.Subscribe(&takeObserver[T]{downstream: downstream[T]{o: o}, remaining: n})
	}
}

// TakeWhile forwards values while pred holds. The first failing value is
// dropped and completion is sent in its place.
func TakeWhile[T any](src Observable[T], pred func(T) bool) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		return src.Subscribe(&takeWhileObserver[T]{downstream: downstream[T]{o: o}, pred: pred})
	}
}

// TakeUntil forwards values up to and including the first one for which
// pred holds, then completes.
func TakeUntil[T any](src Observable[T], pred func(T) bool) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		return src.Subscribe(&takeUntilObserver[T]{downstream: downstream[T]{o: o}, pred: pred})
	}
}

// Skip drops the first n values and forwards the rest.
func Skip[T any](src Observable[T], n int) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		return src.Subscribe(&skipObserver[T]{downstream: downstream[T]{o: o}, remaining: n})
	}
}

// SkipWhile drops values while pred holds. Once a value fails pred, it and
// everything after it is forwarded and pred is not called again.
func SkipWhile[T any](src Observable[T], pred func(T) bool) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		return src.Subscribe(&skipWhileObserver[T]{downstream: downstream[T]{o: o}, pred: pred, skipping: true})
	}
}

// --- Observer implementations ---

type filterObserver[T any] struct {
	downstream[T]
	pred func(T) bool
}

func (f *filterObserver[T]) OnNext(value T) bool {
	if f.done {
		return false
	}
	if !f.pred(value) {
		return true
	}
	return f.next(value)
}

func (f *filterObserver[T]) OnCompleted() { f.complete() }

type mapObserver[I, O any] struct {
	downstream[O]
	fn func(I) O
}

func (m *mapObserver[I, O]) OnNext(value I) bool {
	if m.done {
		return false
	}
	return m.next(m.fn(value))
}

func (m *mapObserver[I, O]) OnCompleted() { m.complete() }

type tapObserver[T any] struct {
	downstream[T]
	fn func(T)
}

func (t *tapObserver[T]) OnNext(value T) bool {
	if t.done {
		return false
	}
	t.fn(value)
	return t.next(value)
}

func (t *tapObserver[T]) OnCompleted() { t.complete() }

type takeObserver[T any] struct {
	downstream[T]
	remaining int
}

func (t *takeObserver[T]) OnNext(value T) bool {
	if t.done {
		return false
	}
	t.remaining--
	if !t.next(value) {
		return false
	}
	if t.remaining == 0 {
		t.complete()
		return false
	}
	return true
}

func (t *takeObserver[T]) OnCompleted() { t.complete() }

type takeWhileObserver[T any] struct {
	downstream[T]
	pred func(T) bool
}

func (t *takeWhileObserver[T]) OnNext(value T) bool {
	if t.done {
		return false
	}
	if !t.pred(value) {
		t.complete()
		return false
	}
	return t.next(value)
}

func (t *takeWhileObserver[T]) OnCompleted() { t.complete() }

type takeUntilObserver[T any] struct {
	downstream[T]
	pred func(T) bool
}

func (t *takeUntilObserver[T]) OnNext(value T) bool {
	if t.done {
		return false
	}
	if !t.next(value) {
		return false
	}
	if t.pred(value) {
		t.complete()
		return false
	}
	return true
}

func (t *takeUntilObserver[T]) OnCompleted() { t.complete() }

type skipObserver[T any] struct {
	downstream[T]
	remaining int
}

func (s *skipObserver[T]) OnNext(value T) bool {
	if s.done {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
		return true
	}
	return s.next(value)
}

func (s *skipObserver[T]) OnCompleted() { s.complete() }

type skipWhileObserver[T any] struct {
	downstream[T]
	pred     func(T) bool
	skipping bool
}

func (s *skipWhileObserver[T]) OnNext(value T) bool {
	if s.done {
		return false
	}
	if s.skipping {
		if s.pred(value) {
			return true
		}
		s.skipping = false
	}
	return s.next(value)
}

func (s *skipWhileObserver[T]) OnCompleted() { s.complete() }
