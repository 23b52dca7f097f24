package observability

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
)

// Logged logs the lifecycle of every subscription to src: subscribe,
// completion, consumer stop and dispose. Each subscription gets its own id.
// Individual values are logged only when the logger has debug enabled.
func Logged[T any](src stream.Observable[T], log *logger.Logger, name string) stream.ObservableFunc[T] {
	return func(o stream.Observer[T]) stream.Subscription {
		l := log.WithFields(logger.Fields(
			logger.FieldStream, name,
			logger.FieldSubscriptionID, uuid.NewString(),
		))
		l.Debug("subscribed")

		lo := &loggedObserver[T]{o: o, log: l, verbose: l.DebugEnabled()}
		sub := src.Subscribe(lo)

		var once sync.Once
		return stream.SubscriptionFunc(func() {
			once.Do(func() {
				l.Debug("disposed", logger.Fields(logger.FieldCount, lo.count.Load()))
			})
			sub.Dispose()
		})
	}
}

type loggedObserver[T any] struct {
	o       stream.Observer[T]
	log     *logger.Logger
	verbose bool
	count   atomic.Int64
}

func (lo *loggedObserver[T]) OnNext(value T) bool {
	n := lo.count.Add(1)
	if lo.verbose {
		lo.log.Debug("next", logger.Fields(logger.FieldValue, value, "index", n-1))
	}
	if !lo.o.OnNext(value) {
		lo.log.Info("stopped by consumer", logger.Fields(logger.FieldCount, n))
		return false
	}
	return true
}

func (lo *loggedObserver[T]) OnCompleted() {
	lo.log.Info("completed", logger.Fields(logger.FieldCount, lo.count.Load()))
	lo.o.OnCompleted()
}
