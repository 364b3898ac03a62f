package mft

import (
	"bytes"
	"encoding/binary"

	"github.com/shubham030/tl/internal/timeline"
)

// ntfsOEMID is the expected bytes 3-10 of an NTFS boot sector (padded to
// eight bytes with trailing spaces).
var ntfsOEMID = []byte("NTFS    ")

// maxRawMFTRead bounds how much of a raw image is read starting at the
// located MFT offset.
const maxRawMFTRead = 10 * 1024 * 1024

// BootSector holds the fields of the NTFS boot sector this package cares
// about.
type BootSector struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	MFTClusterNumber  uint64
}

// ParseBootSector reads and validates the first 512 bytes of a raw NTFS
// image. Returns an InvalidInput/Unsupported *timeline.Error when the OEM
// ID does not match "NTFS    ".
func ParseBootSector(buf []byte) (BootSector, error) {
	if len(buf) < 512 {
		return BootSector{}, timeline.NewError(timeline.ErrInvalidInput, "boot sector buffer shorter than 512 bytes")
	}
	if !bytes.Equal(buf[3:11], ntfsOEMID) {
		return BootSector{}, timeline.NewError(timeline.ErrUnsupported, "not an NTFS volume (OEM ID mismatch)")
	}
	return BootSector{
		BytesPerSector:    binary.LittleEndian.Uint16(buf[11:13]),
		SectorsPerCluster: buf[13],
		MFTClusterNumber:  binary.LittleEndian.Uint64(buf[48:56]),
	}, nil
}

// MFTOffset computes the byte offset of the MFT within the volume:
// mft_cluster * bytes_per_sector * sectors_per_cluster.
func (b BootSector) MFTOffset() int64 {
	return int64(b.MFTClusterNumber) * int64(b.BytesPerSector) * int64(b.SectorsPerCluster)
}

// LocateMFTInRawImage reads the boot sector from data, computes the MFT
// offset, and returns the MFT bytes (bounded by maxRawMFTRead and the
// remaining file size). Reports ErrParse "MFT not located" when the
// computed offset is out of bounds or the signature there is not FILE.
func LocateMFTInRawImage(data []byte) ([]byte, error) {
	boot, err := ParseBootSector(data)
	if err != nil {
		return nil, err
	}
	offset := boot.MFTOffset()
	if offset < 0 || offset >= int64(len(data)) {
		return nil, timeline.NewError(timeline.ErrParse, "MFT not located: computed offset out of bounds")
	}

	end := offset + maxRawMFTRead
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	mftBytes := data[offset:end]

	if len(mftBytes) < 4 || !IsFile(mftBytes[:4]) {
		return nil, timeline.NewError(timeline.ErrParse, "MFT not located: signature mismatch at computed offset")
	}
	return mftBytes, nil
}
