package pipeline

import (
	"maps"
	"slices"
)

var comparators = map[string]func(v, arg int) bool{
	"gt":   func(v, arg int) bool { return v > arg },
	"ge":   func(v, arg int) bool { return v >= arg },
	"lt":   func(v, arg int) bool { return v < arg },
	"le":   func(v, arg int) bool { return v <= arg },
	"eq":   func(v, arg int) bool { return v == arg },
	"ne":   func(v, arg int) bool { return v != arg },
	"even": func(v, _ int) bool { return v%2 == 0 },
	"odd":  func(v, _ int) bool { return v%2 != 0 },
}

var mappers = map[string]func(v, arg int) int{
	"add":    func(v, arg int) int { return v + arg },
	"sub":    func(v, arg int) int { return v - arg },
	"mul":    func(v, arg int) int { return v * arg },
	"neg":    func(v, _ int) int { return -v },
	"square": func(v, _ int) int { return v * v },
}

var accumulators = map[string]func(acc, v int) int{
	"add": func(acc, v int) int { return acc + v },
	"sub": func(acc, v int) int { return acc - v },
	"mul": func(acc, v int) int { return acc * v },
	"max": func(acc, v int) int { return max(acc, v) },
	"min": func(acc, v int) int { return min(acc, v) },
}

// Predicate returns the comparison named cmp bound to arg.
func Predicate(cmp string, arg int) (func(int) bool, bool) {
	f, ok := comparators[cmp]
	if !ok {
		return nil, false
	}
	return func(v int) bool { return f(v, arg) }, true
}

// Mapper returns the transform named fn bound to arg.
func Mapper(fn string, arg int) (func(int) int, bool) {
	f, ok := mappers[fn]
	if !ok {
		return nil, false
	}
	return func(v int) int { return f(v, arg) }, true
}

// Accumulator returns the fold named fn.
func Accumulator(fn string) (func(acc, v int) int, bool) {
	f, ok := accumulators[fn]
	return f, ok
}

func names[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
