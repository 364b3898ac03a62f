// Package registry implements a minimal Windows registry hive decoder: it
// walks the regf/HBIN/NK cell structure and emits one timeline.Record per
// key, carrying its last-write timestamp.
package registry

import (
	"encoding/binary"
	"time"

	"github.com/shubham030/tl/internal/timeline"
)

// filetimeEpochOffset is the same FILETIME/Unix epoch delta used by
// internal/mft; duplicated rather than exported across packages since the
// registry and MFT timestamp domains are conceptually independent even
// though the wire format is identical.
const filetimeEpochOffset int64 = 116444736000000000

const (
	regfSignature = "regf"
	hbinSignature = "hbin"
	hbinBase      = 0x1000 // HBIN data starts 4096 bytes into the hive file
	nkSignature   = "nk"

	maxWalkDepth = 512 // defends against corrupt/cyclic cell offsets
)

// Header is the subset of the regf header this decoder needs.
type Header struct {
	RootCellOffset   uint32
	HiveBinsDataSize uint32
}

func parseHeader(buf []byte) (Header, error) {
	if len(buf) < 48 || string(buf[0:4]) != regfSignature {
		return Header{}, timeline.NewError(timeline.ErrParse, "not a registry hive (bad regf signature)")
	}
	return Header{
		RootCellOffset:   binary.LittleEndian.Uint32(buf[36:40]),
		HiveBinsDataSize: binary.LittleEndian.Uint32(buf[40:44]),
	}, nil
}

// cellAt returns the cell body (past the 4-byte size prefix) at absolute
// file offset off, and the cell's logical size.
func cellAt(buf []byte, off int) ([]byte, int, bool) {
	if off < 0 || off+4 > len(buf) {
		return nil, 0, false
	}
	raw := int32(binary.LittleEndian.Uint32(buf[off : off+4]))
	size := int(raw)
	if size < 0 {
		size = -size
	}
	if size < 4 || off+size > len(buf) {
		return nil, 0, false
	}
	return buf[off+4 : off+size], size - 4, true
}

// nkRecord is a decoded subset of one Named Key cell (regf binary format).
type nkRecord struct {
	lastWrite    *timeline.Timestamps
	parentOffset uint32
	subkeyListOffset uint32
	numSubkeys   uint32
	name         string
}

func parseNK(cell []byte) (*nkRecord, bool) {
	if len(cell) < 80 || string(cell[0:2]) != nkSignature {
		return nil, false
	}
	filetime := binary.LittleEndian.Uint64(cell[4:12])
	ts := &timeline.Timestamps{Modified: convertFiletime(filetime)}

	parentOffset := binary.LittleEndian.Uint32(cell[16:20])
	numSubkeys := binary.LittleEndian.Uint32(cell[20:24])
	subkeyListOffset := binary.LittleEndian.Uint32(cell[28:32])
	nameLen := int(binary.LittleEndian.Uint16(cell[72:74]))

	nameStart := 76
	nameEnd := nameStart + nameLen
	if nameEnd > len(cell) {
		return nil, false
	}
	name := string(cell[nameStart:nameEnd])

	return &nkRecord{
		lastWrite:        ts,
		parentOffset:     parentOffset,
		subkeyListOffset: subkeyListOffset,
		numSubkeys:       numSubkeys,
		name:             name,
	}, true
}

func convertFiletime(raw uint64) *time.Time {
	ft := int64(raw)
	if ft <= filetimeEpochOffset {
		return nil
	}
	t := time.Unix(0, (ft-filetimeEpochOffset)*100).UTC()
	return &t
}

// subkeyOffsets reads the li/lf/lh/ri subkey-list cell at off and returns
// the absolute file offsets of each child NK cell. li/lh/lf leaves are read
// directly and ri index roots are followed into their leaves; unknown list
// signatures yield no children
// rather than an error, matching this decoder's tolerant stance (a missing
// subkey is a smaller forensic loss than aborting the whole hive).
func subkeyOffsets(buf []byte, listOffset uint32) []int {
	cell, _, ok := cellAt(buf, hbinBase+int(listOffset))
	if !ok || len(cell) < 4 {
		return nil
	}
	sig := string(cell[0:2])
	count := int(binary.LittleEndian.Uint16(cell[2:4]))

	var out []int
	switch sig {
	case "li":
		for i := 0; i < count; i++ {
			pos := 4 + i*4
			if pos+4 > len(cell) {
				break
			}
			out = append(out, hbinBase+int(binary.LittleEndian.Uint32(cell[pos:pos+4])))
		}
	case "lf", "lh":
		for i := 0; i < count; i++ {
			pos := 4 + i*8
			if pos+4 > len(cell) {
				break
			}
			out = append(out, hbinBase+int(binary.LittleEndian.Uint32(cell[pos:pos+4])))
		}
	case "ri":
		for i := 0; i < count; i++ {
			pos := 4 + i*4
			if pos+4 > len(cell) {
				break
			}
			subListOffset := binary.LittleEndian.Uint32(cell[pos : pos+4])
			out = append(out, subkeyOffsets(buf, subListOffset)...)
		}
	}
	return out
}

// Decode walks the hive from its root key and emits one Record per key,
// with Location set to the fully-qualified key path and SITimestamps.
// Modified set to the key's last-write time (registry keys carry only one
// timestamp, unlike MFT's four).
func Decode(buf []byte) ([]timeline.Record, error) {
	header, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	rootCell, _, ok := cellAt(buf, hbinBase+int(header.RootCellOffset))
	if !ok {
		return nil, timeline.NewError(timeline.ErrParse, "registry root cell out of bounds")
	}
	root, ok := parseNK(rootCell)
	if !ok {
		return nil, timeline.NewError(timeline.ErrParse, "registry root cell is not a valid NK record")
	}

	var records []timeline.Record
	var recordNumber uint64
	walk(buf, root, "", 0, &records, &recordNumber)
	return records, nil
}

func walk(buf []byte, nk *nkRecord, parentPath string, depth int, out *[]timeline.Record, counter *uint64) {
	if depth > maxWalkDepth {
		return
	}
	path := nk.name
	if parentPath != "" {
		path = parentPath + "/" + nk.name
	}

	*counter++
	*out = append(*out, timeline.Record{
		RecordNumber: *counter,
		Filename:     nk.name,
		Location:     path,
		IsDirectory:  true,
		SITimestamps: *nk.lastWrite,
		EventSource:  timeline.SourceRegistry,
	})

	if nk.numSubkeys == 0 {
		return
	}
	for _, childOff := range subkeyOffsets(buf, nk.subkeyListOffset) {
		cell, _, ok := cellAt(buf, childOff)
		if !ok {
			continue
		}
		child, ok := parseNK(cell)
		if !ok {
			continue
		}
		walk(buf, child, path, depth+1, out, counter)
	}
}

// LooksLikeHive reports whether buf begins with the regf signature. The
// container dispatcher classifies hives by file name and does not call it.
func LooksLikeHive(buf []byte) bool {
	return len(buf) >= 4 && string(buf[0:4]) == regfSignature
}
