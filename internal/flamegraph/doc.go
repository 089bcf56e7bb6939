// Package flamegraph parses self-contained interactive flamegraph reports
// of the kind emitted by stack-sampling profilers as a single HTML file.
//
// Such reports embed two things this package cares about: a prefix-compressed
// constant pool of distinct frame names, and a stream of inline rendering
// calls that paint individual stack-tree nodes, each referencing a pool entry
// by index and carrying an optional sample-count weight. The package
// reconstructs the pool, extracts the references, and aggregates total
// weight per resolved frame name. Everything here is a pure transform over
// the report text; nothing is retained between calls.
package flamegraph
