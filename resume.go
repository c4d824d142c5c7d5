package fluxdm

import "os"

// ScanForResume partitions totalSize per cfg, then infers per-range
// progress from the on-disk length of the file at path. There is no
// sidecar metadata file: resume state lives entirely in how many bytes
// already exist at path, per spec.md's explicit design choice.
//
// If no file exists at path, the base partition is returned unchanged
// (every Range at Downloaded=0). If the file is at least totalSize
// bytes long, every Range is marked complete. Otherwise the existing
// length is distributed greedily across ranges in index order: full
// ranges first, then one partially-filled range, then ranges with
// Downloaded=0 — which is exactly the shape a prior interrupted run of
// this same engine leaves behind, since every task writes at its own
// absolute offset and nothing past the last byte actually written.
func ScanForResume(path string, totalSize uint64, cfg Config) (RangeSet, error) {
	base := Partition(totalSize, cfg)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return base, nil
	} else if err != nil {
		return nil, &FileError{Detail: "stat " + path, Err: err}
	}

	existing := uint64(0)
	if info.Size() > 0 {
		existing = uint64(info.Size())
	}

	if existing >= totalSize {
		for i := range base {
			base[i].Downloaded = base[i].Size()
		}
		return base, nil
	}

	remaining := existing
	for i := range base {
		if remaining == 0 {
			break
		}
		size := base[i].Size()
		if remaining >= size {
			base[i].Downloaded = size
			remaining -= size
			continue
		}
		base[i].Downloaded = remaining
		remaining = 0
	}
	return base, nil
}
