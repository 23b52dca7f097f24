// Package stream provides composable, synchronous push-based reactive streams.
//
// An Observable describes a sequence. Nothing happens until Subscribe is
// called with an Observer; the source then pushes every value into the
// observer on the caller's goroutine and returns a Subscription once delivery
// has finished or been cancelled.
//
// An observer cancels by returning false from OnNext. OnCompleted is called
// at most once, and never after OnNext returned false.
//
// # Operators
//
// Sources:
//
//   - Never: emits nothing and never completes
//   - Empty: completes immediately
//   - FromSlice, Just, FromSeq, Range: push a pre-existing sequence
//
// Stages:
//
//   - Filter, Map, Tap
//   - Take, TakeWhile, TakeUntil
//   - Skip, SkipWhile
//   - Scan, Reduce, Window
//   - Concat, ConcatAll: sequential composition with a single hand-off
//
// Terminals:
//
//   - Collect, ForEach, Count
//
// # Usage
//
//	src := stream.FromSlice([]int{1, 2, 3, 4})
//	big := stream.Filter(src, func(n int) bool { return n > 2 })
//	both := stream.Concat(big, stream.Just(9, 10))
//	values, completed := stream.Collect(both) // [3 4 9 10], true
//
// Disposing a Subscription does not interrupt a producer that is already
// running. Only composite sources such as Concat retain anything worth
// releasing.
package stream
