// Package pipeline orchestrates file discovery, per-file compression, and
// batch summary reporting.
//
// A run is strictly sequential: [Discover] fixes the file set once, then
// [Run] encodes one [Job] at a time and records exactly one [Result] per
// discovered file. A failed file never stops the batch; only an invalid
// source directory is fatal.
//
// Files:
//   - discover.go: extension filter, _compressed exclusion, sorting.
//   - job.go: output path derivation.
//   - result.go: per-file outcome and failure kinds.
//   - stats.go: aggregate counters derived from results.
//   - runner.go: the batch loop and console summary.
package pipeline
