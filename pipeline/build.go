package pipeline

import (
	"fmt"

	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/stream"
	"github.com/kbukum/rxkit/validation"
)

// Build validates s and compiles it into an observable. Every subscription
// to the result runs the pipeline from the start.
func Build(s Spec) (stream.Observable[int], error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	return compile(&s), nil
}

// Validate checks struct tags and the rules that span several fields.
// Failures are INVALID_SPEC errors.
func Validate(s Spec) error {
	if err := validation.Validate(s); err != nil {
		return errors.InvalidSpec("", "malformed fields").WithCause(err)
	}
	v := validation.New()
	check(v, "", &s)
	return asError(v.ValidateAs(errors.ErrCodeInvalidSpec))
}

// asError keeps a nil *AppError from becoming a non-nil error.
func asError(appErr *errors.AppError) error {
	if appErr == nil {
		return nil
	}
	return appErr
}

func check(v *validation.Validator, path string, s *Spec) {
	switch s.SourceKind() {
	case KindItems:
		v.Custom(s.Range == nil, path+"range", "not allowed for kind items")
	case KindRange:
		v.Custom(s.Range != nil, path+"range", "is required for kind range")
		v.Custom(len(s.Source) == 0, path+"source", "not allowed for kind range")
	default:
		v.Custom(s.Range == nil && len(s.Source) == 0, path+"kind",
			fmt.Sprintf("%s takes no source or range", s.SourceKind()))
	}

	for i, st := range s.Stages {
		field := fmt.Sprintf("%sstages[%d]", path, i)
		switch {
		case isPredicateOp(st.Op):
			v.Required(field+".cmp", st.Cmp)
			v.OneOf(field+".cmp", st.Cmp, names(comparators))
			v.Custom(st.Fn == "", field+".fn", "not used by "+st.Op)
		case st.Op == OpMap:
			v.Required(field+".fn", st.Fn)
			v.OneOf(field+".fn", st.Fn, names(mappers))
			v.Custom(st.Cmp == "", field+".cmp", "not used by "+st.Op)
		case st.Op == OpScan, st.Op == OpReduce:
			v.Required(field+".fn", st.Fn)
			v.OneOf(field+".fn", st.Fn, names(accumulators))
			v.Custom(st.Cmp == "", field+".cmp", "not used by "+st.Op)
		case st.Op == OpTake, st.Op == OpSkip:
			v.Custom(st.Cmp == "" && st.Fn == "", field, st.Op+" only takes n")
		}
	}

	if s.Then != nil {
		check(v, path+"then.", s.Then)
	}
}

func compile(s *Spec) stream.Observable[int] {
	src := source(s)
	for _, st := range s.Stages {
		src = stage(src, st)
	}
	if s.Then != nil {
		src = stream.Concat(src, compile(s.Then))
	}
	return src
}

func source(s *Spec) stream.Observable[int] {
	switch s.SourceKind() {
	case KindRange:
		return stream.Range(s.Range.Start, s.Range.Count)
	case KindNever:
		return stream.Never[int]()
	case KindEmpty:
		return stream.Empty[int]()
	default:
		return stream.FromSlice(s.Source)
	}
}

// stage assumes st passed check.
func stage(src stream.Observable[int], st StageSpec) stream.Observable[int] {
	switch st.Op {
	case OpFilter:
		pred, _ := Predicate(st.Cmp, st.Arg)
		return stream.Filter(src, pred)
	case OpTakeWhile:
		pred, _ := Predicate(st.Cmp, st.Arg)
		return stream.TakeWhile(src, pred)
	case OpTakeUntil:
		pred, _ := Predicate(st.Cmp, st.Arg)
		return stream.TakeUntil(src, pred)
	case OpSkipWhile:
		pred, _ := Predicate(st.Cmp, st.Arg)
		return stream.SkipWhile(src, pred)
	case OpMap:
		fn, _ := Mapper(st.Fn, st.Arg)
		return stream.Map(src, fn)
	case OpScan:
		fn, _ := Accumulator(st.Fn)
		return stream.Scan(src, st.Arg, fn)
	case OpReduce:
		fn, _ := Accumulator(st.Fn)
		return stream.Reduce(src, st.Arg, fn)
	case OpTake:
		return stream.Take(src, st.N)
	case OpSkip:
		return stream.Skip(src, st.N)
	default:
		panic(errors.InvalidSpec("op", "unknown operator "+st.Op))
	}
}
