package stream

// Observer receives values pushed by an Observable.
type Observer[T any] interface {
	// OnNext delivers one value. Returning false tells the source to stop;
	// the observer must not be called again for this delivery.
	OnNext(value T) bool
	// OnCompleted signals that the source is exhausted. Called at most once,
	// and only if OnNext never returned false.
	OnCompleted()
}

// Subscription represents an active or finished delivery.
type Subscription interface {
	// Dispose releases whatever the source chain retained.
	Dispose()
}

// Observable is a description of a sequence, activated by Subscribe.
type Observable[T any] interface {
	// Subscribe attaches o and drives delivery to completion or cancellation.
	Subscribe(o Observer[T]) Subscription
}

// ObservableFunc adapts a function to the Observable interface.
// Every operator in this package returns one.
type ObservableFunc[T any] func(o Observer[T]) Subscription

// Subscribe calls f(o).
func (f ObservableFunc[T]) Subscribe(o Observer[T]) Subscription {
	return f(o)
}

// ObserverFuncs builds an Observer from plain functions.
// A nil Next accepts every value; a nil Completed ignores completion.
type ObserverFuncs[T any] struct {
	Next      func(T) bool
	Completed func()
}

func (o ObserverFuncs[T]) OnNext(value T) bool {
	if o.Next == nil {
		return true
	}
	return o.Next(value)
}

func (o ObserverFuncs[T]) OnCompleted() {
	if o.Completed != nil {
		o.Completed()
	}
}

// SubscriptionFunc adapts a function to the Subscription interface.
// It is called on every Dispose.
type SubscriptionFunc func()

// Dispose calls f.
func (f SubscriptionFunc) Dispose() { f() }

type inert struct{}

func (inert) Dispose() {}

// Inert returns a Subscription whose Dispose does nothing. Linear sources
// return it because delivery has already finished by the time they return.
func Inert() Subscription { return inert{} }

// downstream wraps the observer a stage forwards to and latches once that
// observer stopped or completed.
type downstream[T any] struct {
	o    Observer[T]
	done bool
}

func (d *downstream[T]) next(value T) bool {
	if d.done {
		return false
	}
	if !d.o.OnNext(value) {
		d.done = true
		return false
	}
	return true
}

func (d *downstream[T]) complete() {
	if d.done {
		return
	}
	d.done = true
	d.o.OnCompleted()
}
