package container

import "bytes"

// contentProbeWindow is how much of an unmatched ZIP entry is inspected by
// the content-based fallback pass (first 8 KiB).
const contentProbeWindow = 8 * 1024

const (
	minContentProbeSize = 1024                    // entries smaller than this are skipped
	maxContentProbeSize = 10 * 1024 * 1024 * 1024 // entries larger than this are skipped
)

var fileSig = []byte("FILE")

// LooksLikeMFT reports whether a buffer is "MFT-like": (a) FILE is at
// offset 0, (b) FILE appears at any of {0, 512, 1024, 2048}, or (c) FILE
// appears at three or more 1024-byte-aligned positions.
func LooksLikeMFT(buf []byte) bool {
	if len(buf) >= 4 && bytes.Equal(buf[:4], fileSig) {
		return true
	}
	for _, off := range [...]int{0, 512, 1024, 2048} {
		if off+4 <= len(buf) && bytes.Equal(buf[off:off+4], fileSig) {
			return true
		}
	}

	aligned := 0
	for off := 0; off+4 <= len(buf); off += 1024 {
		if bytes.Equal(buf[off:off+4], fileSig) {
			aligned++
			if aligned >= 3 {
				return true
			}
		}
	}
	return false
}

// EligibleForContentProbe applies the size bounds that gate the
// content-based fallback pass.
func EligibleForContentProbe(size int64) bool {
	return size >= minContentProbeSize && size <= maxContentProbeSize
}
