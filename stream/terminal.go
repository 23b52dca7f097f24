package stream

// Collect subscribes to src and returns every delivered value along with
// whether completion was observed. The subscription is disposed before
// Collect returns, so sources that have not finished synchronously are
// abandoned.
func Collect[T any](src Observable[T]) ([]T, bool) {
	c := &collector[T]{}
	src.Subscribe(c).Dispose()
	return c.items, c.completed
}

// ForEach calls fn for each value until fn returns false or src completes.
// It reports whether completion was observed.
func ForEach[T any](src Observable[T], fn func(T) bool) bool {
	completed := false
	src.Subscribe(ObserverFuncs[T]{
		Next:      fn,
		Completed: func() { completed = true },
	}).Dispose()
	return completed
}

// Count returns the number of delivered values and whether src completed.
func Count[T any](src Observable[T]) (int, bool) {
	n := 0
	completed := ForEach(src, func(T) bool {
		n++
		return true
	})
	return n, completed
}

type collector[T any] struct {
	items     []T
	completed bool
}

func (c *collector[T]) OnNext(value T) bool {
	c.items = append(c.items, value)
	return true
}

func (c *collector[T]) OnCompleted() { c.completed = true }
