package pipeline

import (
	"fmt"
	"strings"
)

// Source kinds.
const (
	KindItems = "items"
	KindRange = "range"
	KindNever = "never"
	KindEmpty = "empty"
)

// Stage operators.
const (
	OpFilter    = "filter"
	OpMap       = "map"
	OpTake      = "take"
	OpSkip      = "skip"
	OpTakeWhile = "take_while"
	OpTakeUntil = "take_until"
	OpSkipWhile = "skip_while"
	OpScan      = "scan"
	OpReduce    = "reduce"
)

// Spec describes an integer pipeline.
type Spec struct {
	// Name labels the pipeline in logs and telemetry.
	Name string `yaml:"name,omitempty" mapstructure:"name"`
	// Kind selects the source. Empty means range when Range is set and
	// items otherwise.
	Kind   string     `yaml:"kind,omitempty" mapstructure:"kind" validate:"omitempty,oneof=items range never empty"`
	Source []int      `yaml:"source,omitempty" mapstructure:"source"`
	Range  *RangeSpec `yaml:"range,omitempty" mapstructure:"range"`
	// Stages are applied in order to the source.
	Stages []StageSpec `yaml:"stages,omitempty" mapstructure:"stages" validate:"dive"`
	// Then is subscribed after this pipeline completes.
	Then *Spec `yaml:"then,omitempty" mapstructure:"then"`
}

// RangeSpec describes the integers Start..Start+Count-1.
type RangeSpec struct {
	Start int `yaml:"start" mapstructure:"start"`
	Count int `yaml:"count" mapstructure:"count" validate:"gte=0"`
}

// StageSpec describes one operator.
//
// Predicate stages (filter, take_while, take_until, skip_while) compare
// each value against Arg with Cmp. Map applies Fn with Arg as operand.
// Scan and reduce fold values with Fn starting from Arg. Take and skip
// use N.
type StageSpec struct {
	Op  string `yaml:"op" mapstructure:"op" validate:"required,oneof=filter map take skip take_while take_until skip_while scan reduce"`
	Cmp string `yaml:"cmp,omitempty" mapstructure:"cmp"`
	Fn  string `yaml:"fn,omitempty" mapstructure:"fn"`
	Arg int    `yaml:"arg,omitempty" mapstructure:"arg"`
	N   int    `yaml:"n,omitempty" mapstructure:"n" validate:"gte=0"`
}

// SourceKind returns the effective source kind.
func (s *Spec) SourceKind() string {
	switch {
	case s.Kind != "":
		return s.Kind
	case s.Range != nil:
		return KindRange
	default:
		return KindItems
	}
}

// String renders the pipeline on one line, e.g.
// "items[4] | filter(gt 2) | take(3) ++ range(7,2)".
func (s *Spec) String() string {
	var b strings.Builder
	switch s.SourceKind() {
	case KindRange:
		if s.Range != nil {
			fmt.Fprintf(&b, "range(%d,%d)", s.Range.Start, s.Range.Count)
		} else {
			b.WriteString("range(?)")
		}
	case KindItems:
		fmt.Fprintf(&b, "items[%d]", len(s.Source))
	default:
		b.WriteString(s.SourceKind())
	}
	for _, st := range s.Stages {
		b.WriteString(" | ")
		b.WriteString(st.String())
	}
	if s.Then != nil {
		b.WriteString(" ++ ")
		b.WriteString(s.Then.String())
	}
	return b.String()
}

func (st StageSpec) String() string {
	switch {
	case isPredicateOp(st.Op):
		if st.Cmp == "even" || st.Cmp == "odd" {
			return fmt.Sprintf("%s(%s)", st.Op, st.Cmp)
		}
		return fmt.Sprintf("%s(%s %d)", st.Op, st.Cmp, st.Arg)
	case st.Op == OpMap && (st.Fn == "neg" || st.Fn == "square"):
		return fmt.Sprintf("map(%s)", st.Fn)
	case st.Op == OpMap, st.Op == OpScan, st.Op == OpReduce:
		return fmt.Sprintf("%s(%s %d)", st.Op, st.Fn, st.Arg)
	default:
		return fmt.Sprintf("%s(%d)", st.Op, st.N)
	}
}

func isPredicateOp(op string) bool {
	switch op {
	case OpFilter, OpTakeWhile, OpTakeUntil, OpSkipWhile:
		return true
	}
	return false
}
