package stream

import "iter"

// Never returns a source that emits nothing and never completes.
func Never[T any]() ObservableFunc[T] {
	return func(_ Observer[T]) Subscription {
		return Inert()
	}
}

// Empty returns a source that completes immediately without values.
func Empty[T any]() ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		o.OnCompleted()
		return Inert()
	}
}

// FromSlice returns a source that pushes items in order.
// The slice is read on every Subscribe, not copied.
func FromSlice[T any](items []T) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		for _, item := range items {
			if !o.OnNext(item) {
				return Inert()
			}
		}
		o.OnCompleted()
		return Inert()
	}
}

// Just returns a source that pushes its arguments in order.
func Just[T any](items ...T) ObservableFunc[T] {
	return FromSlice(items)
}

// FromSeq returns a source that pushes the values of seq in order.
// The sequence is ranged once per Subscribe and abandoned as soon as the
// observer stops.
func FromSeq[T any](seq iter.Seq[T]) ObservableFunc[T] {
	return func(o Observer[T]) Subscription {
		for v := range seq {
			if !o.OnNext(v) {
				return Inert()
			}
		}
		o.OnCompleted()
		return Inert()
	}
}

// Range returns a source of count consecutive integers starting at start.
func Range(start, count int) ObservableFunc[int] {
	return func(o Observer[int]) Subscription {
		for i := 0; i < count; i++ {
			if !o.OnNext(start + i) {
				return Inert()
			}
		}
		o.OnCompleted()
		return Inert()
	}
}
