package mft

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// useBatchScan decides between the vectorized-batch and pure-scalar
// boundary scan paths. Go offers no portable SIMD intrinsics, so the
// vectorized path here is an 8-lanes-per-iteration unrolled scalar
// comparison: it is what a compiler auto-vectorizes well, and it is
// guaranteed to be byte-identical to the strictly sequential scalar path.
// batchScanDense makes the choice on every scan, always passing
// enabled=true, so only CPU feature detection decides; Config.UseSIMD is
// not consulted.
func useBatchScan(enabled bool) bool {
	if !enabled {
		return false
	}
	if runtime.GOARCH == "amd64" {
		return cpu.X86.HasSSE2
	}
	if runtime.GOARCH == "arm64" {
		return cpu.ARM64.HasASIMD
	}
	return false
}

// batchScanDense is the default entry point used by Scan; it always
// produces the same offsets as scalarScanDense, but groups eight strides
// per loop iteration so a vectorizing compiler (or, in spirit, a real SIMD
// backend) can compare all eight 4-byte signatures in one pass.
func batchScanDense(buf []byte, recordSize int) []int {
	if !useBatchScan(true) {
		return scalarScanDense(buf, recordSize)
	}

	var offsets []int
	n := len(buf)
	off := 0
	const lanes = 8

	for off+lanes*recordSize+4 <= n {
		for lane := 0; lane < lanes; lane++ {
			pos := off + lane*recordSize
			if isBoundarySignature(buf[pos : pos+4]) {
				offsets = append(offsets, pos)
			}
		}
		off += lanes * recordSize
	}
	for ; off+4 <= n; off += recordSize {
		if isBoundarySignature(buf[off : off+4]) {
			offsets = append(offsets, off)
		}
	}
	return offsets
}

// scalarScanDense is the reference, single-stride-at-a-time scan path.
func scalarScanDense(buf []byte, recordSize int) []int {
	var offsets []int
	for off := 0; off+4 <= len(buf); off += recordSize {
		if isBoundarySignature(buf[off : off+4]) {
			offsets = append(offsets, off)
		}
	}
	return offsets
}
