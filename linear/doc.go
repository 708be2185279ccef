// Package linear supplies the bump-pointer allocation core of a
// managed heap, with a limited scope:
//
//   - Exactly one mutator thread owns an Allocator and its Region,
//     the fast path never blocks and never locks.
//   - Background threads (concurrent markers, sweepers, profilers)
//     observe progress only through the Frontier accessors, never
//     through the Region.
//   - Page acquisition, free lists and collection cycles belong to
//     the api.Space collaborator, the slow path delegates to it and
//     retries once.
//   - Fast path exhaustion is signaled by value as a Failure outcome,
//     it is not an error. Everything else that can go wrong here is a
//     programmer defect and panics.
//
// A Region is a contiguous free block [start, limit) drained by a
// bump cursor at top. Alignment requests beyond the platform
// granularity are satisfied by installing a filler object over the
// skipped bytes, so a region always walks as a sequence of well
// formed objects.
package linear
