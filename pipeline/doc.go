// Package pipeline compiles declarative integer pipelines into stream
// operator chains.
//
// A pipeline is described in YAML, or embedded in a service config, as a
// source, a list of stages, and an optional pipeline to run after it:
//
//	source: [1, 2, 3, 4, 5, 6]
//	stages:
//	  - {op: filter, cmp: even}
//	  - {op: map, fn: mul, arg: 10}
//	  - {op: take, n: 2}
//	then:
//	  range: {start: 100, count: 3}
//
// Build validates the description and returns a stream.Observable[int];
// nothing runs until it is subscribed.
//
//	spec, err := pipeline.ParseYAML(data)
//	src, err := pipeline.Build(spec)
//	values, completed := stream.Collect(src)
package pipeline
