// Package mft implements the core NTFS MFT decode pipeline: boundary
// scanning, fixup validation, attribute walking, and record assembly,
// plus the boot-sector reader used to locate the MFT on raw disk images.
package mft

import "bytes"

// RecordSize is the default MFT record length, used whenever the caller
// passes no record size. The raw-image path also uses it: the boot-sector
// record length is not read.
const RecordSize = 1024

var fileSignature = []byte("FILE")
var baadSignature = []byte("BAAD")

// boundaryMinValidRatio is the dense-mode confidence threshold: a leading
// dense run producing fewer valid signatures than this fraction switches
// the scanner to exploratory mode.
const boundaryMinValidRatio = 0.5

// ScanMode records which strategy produced a boundary list, mainly for
// diagnostics and tests.
type ScanMode int

const (
	ModeDense ScanMode = iota
	ModeSparse
)

// Boundaries holds the scan result: record start offsets plus which mode
// produced them.
type Boundaries struct {
	Offsets []int
	Mode    ScanMode
}

// Scan first tries dense mode (stride-1024 signature confirmation) and
// falls back to sparse mode, which keeps every recordSize-aligned stride
// carrying a signature, when dense mode's hit ratio is too low. Recognizes both FILE and BAAD as valid boundaries for counting
// purposes: BAAD marks a record whose on-disk fixup never completed, so
// the decoder skips it rather than producing a Record for it.
func Scan(buf []byte, recordSize int) Boundaries {
	if recordSize <= 0 {
		recordSize = RecordSize
	}

	dense := scanDense(buf, recordSize)
	if len(dense) == 0 {
		return Boundaries{Offsets: scanSparse(buf, recordSize), Mode: ModeSparse}
	}

	strides := len(buf) / recordSize
	if strides == 0 {
		return Boundaries{Offsets: dense, Mode: ModeDense}
	}
	ratio := float64(len(dense)) / float64(strides)
	if ratio < boundaryMinValidRatio {
		return Boundaries{Offsets: scanSparse(buf, recordSize), Mode: ModeSparse}
	}
	return Boundaries{Offsets: dense, Mode: ModeDense}
}

// scanDense walks fixed strides of recordSize, confirming each by
// signature. It delegates to batchScanDense; scalarScanDense in simd.go is
// the scalar reference path, and both produce byte-identical output.
func scanDense(buf []byte, recordSize int) []int {
	return batchScanDense(buf, recordSize)
}

// scanSparse searches every 1024-byte-aligned stride for a boundary
// signature, independent of run length — used when dense mode's
// confidence is too low, per §4.1 "sparse/exploratory" mode.
func scanSparse(buf []byte, recordSize int) []int {
	var offsets []int
	for off := 0; off+4 <= len(buf); off += recordSize {
		if isBoundarySignature(buf[off : off+4]) {
			offsets = append(offsets, off)
		}
	}
	return offsets
}

func isBoundarySignature(b []byte) bool {
	return bytes.Equal(b, fileSignature) || bytes.Equal(b, baadSignature)
}

// IsBaad reports whether the 4-byte signature at the start of record is
// BAAD (a record whose update-sequence fixup failed at write time).
func IsBaad(record []byte) bool {
	return len(record) >= 4 && bytes.Equal(record[:4], baadSignature)
}

// IsFile reports whether the 4-byte signature at the start of record is
// FILE.
func IsFile(record []byte) bool {
	return len(record) >= 4 && bytes.Equal(record[:4], fileSignature)
}
