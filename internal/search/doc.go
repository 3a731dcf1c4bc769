// Package search implements the brute-force searchers that scan candidate
// integers for one whose digest equals a target digest.
//
// Two strategies are provided:
//
//   - Sequential scans 0, 1, 2, ... on the calling goroutine.
//   - Parallel splits the candidate space into N interleaved lanes (worker w
//     scans w, w+N, w+2N, ...) and races one goroutine per lane.
//
// The parallel coordinator resolves a first-wins Race on the first match,
// raises a shared stop flag that every worker polls once per candidate, and
// joins all workers before returning, so no goroutine outlives a search.
package search
