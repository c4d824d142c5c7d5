package fluxdm

// Range is an inclusive byte interval [Start, End] of the remote
// resource, assigned to exactly one fetch task. Start, End, and Index
// are immutable once created; only Downloaded evolves, and only by the
// task that owns this Range.
type Range struct {
	Index      uint8
	Start      uint64
	End        uint64
	Downloaded uint64
}

// Size returns the number of bytes this Range covers.
func (r Range) Size() uint64 {
	return r.End - r.Start + 1
}

// Remaining returns the number of bytes not yet downloaded.
func (r Range) Remaining() uint64 {
	return r.Size() - r.Downloaded
}

// ResumePosition returns the next absolute file offset to request and
// write.
func (r Range) ResumePosition() uint64 {
	return r.Start + r.Downloaded
}

// IsComplete reports whether every byte of this Range has been
// downloaded.
func (r Range) IsComplete() bool {
	return r.Downloaded >= r.Size()
}

// RangeSet is an ordered, contiguous sequence of Ranges covering
// [0, totalSize-1]. ranges[0].Start == 0, ranges[len-1].End ==
// totalSize-1, and ranges[i].End+1 == ranges[i+1].Start for every
// adjacent pair.
type RangeSet []Range

// TotalSize returns the sum of every Range's Size.
func (rs RangeSet) TotalSize() uint64 {
	var total uint64
	for _, r := range rs {
		total += r.Size()
	}
	return total
}

// TotalDownloaded returns the sum of every Range's Downloaded count.
func (rs RangeSet) TotalDownloaded() uint64 {
	var total uint64
	for _, r := range rs {
		total += r.Downloaded
	}
	return total
}

// AllComplete reports whether every Range in the set is complete.
func (rs RangeSet) AllComplete() bool {
	for _, r := range rs {
		if !r.IsComplete() {
			return false
		}
	}
	return true
}

// Incomplete returns the subset of Ranges that are not yet complete,
// preserving order.
func (rs RangeSet) Incomplete() RangeSet {
	out := make(RangeSet, 0, len(rs))
	for _, r := range rs {
		if !r.IsComplete() {
			out = append(out, r)
		}
	}
	return out
}
