package api

// Granularity platform allocation granularity. Requested sizes are
// rounded up to multiples of this before hitting the fast path and
// every handed out address is at least this aligned.
const Granularity = int64(8)

// Maxallocsize sanity cap on a single allocation request.
const Maxallocsize = int64(1024 * 1024 * 1024) // 1GB
