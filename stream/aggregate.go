package stream

// Scan emits the running accumulator after each value.
func Scan[T, R any](src Observable[T], init R, fn func(R, T) R) ObservableFunc[R] {
	return func(o Observer[R]) Subscription {
		return src.Subscribe(&scanObserver[T, R]{downstream: downstream[R]{o: o}, acc: init, fn: fn})
	}
}

// Reduce accumulates all values and emits the final accumulator once the
// source completes. A source that never completes yields nothing.
func Reduce[T, R any](src Observable[T], init R, fn func(R, T) R) ObservableFunc[R] {
	return func(o Observer[R]) Subscription {
		return src.Subscribe(&reduceObserver[T, R]{downstream: downstream[R]{o: o}, acc: init, fn: fn})
	}
}

// Window groups values into consecutive slices of size values. The trailing
// partial window is emitted when the source completes. size <= 0 is treated
// as 1.
func Window[T any](src Observable[T], size int) ObservableFunc[[]T] {
	if size <= 0 {
		size = 1
	}
	return func(o Observer[[]T]) Subscription {
		return src.Subscribe(&windowObserver[T]{downstream: downstream[[]T]{o: o}, size: size})
	}
}

type scanObserver[T, R any] struct {
	downstream[R]
	acc R
	fn  func(R, T) R
}

func (s *scanObserver[T, R]) OnNext(value T) bool {
	if s.done {
		return false
	}
	s.acc = s.fn(s.acc, value)
	return s.next(s.acc)
}

func (s *scanObserver[T, R]) OnCompleted() { s.complete() }

type reduceObserver[T, R any] struct {
	downstream[R]
	acc R
	fn  func(R, T) R
}

func (r *reduceObserver[T, R]) OnNext(value T) bool {
	if r.done {
		return false
	}
	r.acc = r.fn(r.acc, value)
	return true
}

func (r *reduceObserver[T, R]) OnCompleted() {
	if r.next(r.acc) {
		r.complete()
	}
}

type windowObserver[T any] struct {
	downstream[[]T]
	size   int
	window []T
}

func (w *windowObserver[T]) OnNext(value T) bool {
	if w.done {
		return false
	}
	if w.window == nil {
		w.window = make([]T, 0, w.size)
	}
	w.window = append(w.window, value)
	if len(w.window) < w.size {
		return true
	}
	full := w.window
	w.window = nil
	return w.next(full)
}

func (w *windowObserver[T]) OnCompleted() {
	if len(w.window) > 0 {
		partial := w.window
		w.window = nil
		if !w.next(partial) {
			return
		}
	}
	w.complete()
}
