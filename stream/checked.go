package stream

import "github.com/kbukum/rxkit/errors"

type checkState int

const (
	checkOpen checkState = iota
	checkStopped
	checkCompleted
)

var _ Observer[int] = (*checkedObserver[int])(nil)

// Checked wraps o so that any call breaking the push protocol panics with an
// *errors.AppError carrying ErrCodeProtocolViolation: OnNext or OnCompleted
// after o returned false, and anything after OnCompleted.
//
// Use it around observers handed to sources you do not control.
func Checked[T any](o Observer[T]) Observer[T] {
	return &checkedObserver[T]{o: o}
}

type checkedObserver[T any] struct {
	o     Observer[T]
	state checkState
}

func (c *checkedObserver[T]) OnNext(value T) bool {
	c.assertOpen("OnNext")
	if !c.o.OnNext(value) {
		c.state = checkStopped
		return false
	}
	return true
}

func (c *checkedObserver[T]) OnCompleted() {
	c.assertOpen("OnCompleted")
	c.state = checkCompleted
	c.o.OnCompleted()
}

func (c *checkedObserver[T]) assertOpen(call string) {
	switch c.state {
	case checkStopped:
		panic(errors.ProtocolViolation(call, "after the observer stopped"))
	case checkCompleted:
		panic(errors.ProtocolViolation(call, "after completion"))
	}
}
