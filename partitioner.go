package fluxdm

// Partition splits [0, totalSize-1] into a contiguous RangeSet per cfg.
// It is pure and total for totalSize >= 1: ranges[0].Start == 0,
// ranges[len-1].End == totalSize-1, and every adjacent pair abuts with
// no gap or overlap. The last range absorbs any remainder from
// totalSize not dividing evenly by the chunk count.
//
// Collapses to a single Range when totalSize < cfg.MinChunkSize, or
// when the requested chunk count would produce zero-size ranges
// (chunkCount > totalSize, i.e. totalSize/chunkCount == 0) — ported
// from original_source's calculate_chunks, extended per spec.md's open
// question on that edge case. totalSize == chunkCount is not a
// collapse case: it divides evenly into chunkCount one-byte ranges.
func Partition(totalSize uint64, cfg Config) RangeSet {
	cfg = cfg.normalized()

	if totalSize < 1 {
		totalSize = 1
	}

	n := uint64(cfg.ChunkCount)
	if totalSize < cfg.MinChunkSize || n <= 1 || n > totalSize {
		return RangeSet{{Index: 0, Start: 0, End: totalSize - 1}}
	}

	ranges := make(RangeSet, 0, n)
	chunkSize := totalSize / n
	start := uint64(0)
	for i := uint64(0); i < n; i++ {
		end := start + chunkSize - 1
		if i == n-1 {
			end = totalSize - 1
		}
		ranges = append(ranges, Range{Index: uint8(i), Start: start, End: end})
		start = end + 1
	}
	return ranges
}
