// Package jumplist implements a minimal Windows Jump List decoder
// (automaticDestinations-ms / customDestinations-ms). Both formats are OLE
// Compound File Binary (CFB) containers whose streams are themselves
// embedded .lnk entries, so this package implements just enough of the CFB
// directory/FAT walk to enumerate streams and hands each plausible one to
// internal/lnk.
package jumplist

import (
	"encoding/binary"

	"github.com/shubham030/tl/internal/intern"
	"github.com/shubham030/tl/internal/lnk"
	"github.com/shubham030/tl/internal/timeline"
)

const (
	sectorSize      = 512
	headerSize      = 512
	freeSector      = 0xFFFFFFFF
	endOfChain      = 0xFFFFFFFE
	fatSector       = 0xFFFFFFFD
	dirEntrySize    = 128
	noStream uint32 = 0xFFFFFFFF
)

var cfbSignature = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// header is the subset of the CFB header this decoder needs.
type header struct {
	sectorShift      uint16
	numFATSectors    uint32
	firstDirSector   uint32
	miniCutoff       uint32
	firstDIFATSector uint32
	numDIFATSectors  uint32
	difat            [109]uint32
}

func parseHeader(buf []byte) (header, bool) {
	if len(buf) < headerSize {
		return header{}, false
	}
	for i, b := range cfbSignature {
		if buf[i] != b {
			return header{}, false
		}
	}
	var h header
	h.sectorShift = binary.LittleEndian.Uint16(buf[30:32])
	h.numFATSectors = binary.LittleEndian.Uint32(buf[44:48])
	h.firstDirSector = binary.LittleEndian.Uint32(buf[48:52])
	h.miniCutoff = binary.LittleEndian.Uint32(buf[56:60])
	h.firstDIFATSector = binary.LittleEndian.Uint32(buf[68:72])
	h.numDIFATSectors = binary.LittleEndian.Uint32(buf[72:76])
	for i := 0; i < 109; i++ {
		off := 76 + i*4
		h.difat[i] = binary.LittleEndian.Uint32(buf[off : off+4])
	}
	return h, true
}

func sectorOffset(sectorShift uint16, sector uint32) int {
	size := 1 << sectorShift
	return headerSize + int(sector)*size
}

func readSector(buf []byte, h header, sector uint32) []byte {
	size := 1 << h.sectorShift
	off := sectorOffset(h.sectorShift, sector)
	if off < 0 || off+size > len(buf) {
		return nil
	}
	return buf[off : off+size]
}

// readChain follows the FAT chain starting at startSector, concatenating
// every sector's bytes, and stops at end-of-chain or after a generous
// bound to defend against a corrupt cyclic chain.
func readChain(buf []byte, h header, fat []uint32, startSector uint32) []byte {
	var out []byte
	sector := startSector
	seen := make(map[uint32]bool)
	for sector != endOfChain && sector != freeSector && !seen[sector] {
		seen[sector] = true
		s := readSector(buf, h, sector)
		if s == nil {
			break
		}
		out = append(out, s...)
		if int(sector) >= len(fat) {
			break
		}
		sector = fat[sector]
		if len(seen) > 1<<20 {
			break
		}
	}
	return out
}

func buildFAT(buf []byte, h header) []uint32 {
	size := 1 << h.sectorShift
	entriesPerSector := size / 4
	var fat []uint32
	for i := 0; i < 109 && i < len(h.difat); i++ {
		sector := h.difat[i]
		if sector == freeSector {
			continue
		}
		s := readSector(buf, h, sector)
		if s == nil {
			continue
		}
		for e := 0; e+4 <= len(s); e += 4 {
			fat = append(fat, binary.LittleEndian.Uint32(s[e:e+4]))
		}
	}
	_ = entriesPerSector
	return fat
}

// dirEntry is the subset of a CFB directory entry this decoder needs.
type dirEntry struct {
	name        string
	objectType  byte
	startSector uint32
	streamSize  uint64
}

func parseDirEntries(raw []byte) []dirEntry {
	var out []dirEntry
	for off := 0; off+dirEntrySize <= len(raw); off += dirEntrySize {
		entry := raw[off : off+dirEntrySize]
		nameLenBytes := binary.LittleEndian.Uint16(entry[64:66])
		objType := entry[66]
		if objType == 0 {
			continue
		}
		nameLen := int(nameLenBytes)
		if nameLen > 64 {
			nameLen = 64
		}
		name := decodeUTF16Name(entry[0:nameLen])
		startSector := binary.LittleEndian.Uint32(entry[116:120])
		streamSize := binary.LittleEndian.Uint64(entry[120:128])
		out = append(out, dirEntry{
			name:        name,
			objectType:  objType,
			startSector: startSector,
			streamSize:  streamSize,
		})
	}
	return out
}

func decodeUTF16Name(b []byte) string {
	out := make([]byte, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		unit := binary.LittleEndian.Uint16(b[i : i+2])
		if unit == 0 {
			break
		}
		if unit < 0x80 {
			out = append(out, byte(unit))
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}

// Decode enumerates every stream in a Jump List CFB container and decodes
// each one that looks like an embedded .lnk entry, skipping the
// DestList metadata stream and anything shorter than a .lnk header.
func Decode(buf []byte, pool *intern.Pool) ([]timeline.Record, error) {
	h, ok := parseHeader(buf)
	if !ok {
		return nil, timeline.NewError(timeline.ErrParse, "not a valid OLE compound file")
	}
	fat := buildFAT(buf, h)
	dirBytes := readChain(buf, h, fat, h.firstDirSector)
	entries := parseDirEntries(dirBytes)

	var records []timeline.Record
	for _, e := range entries {
		if e.objectType != 2 { // stream object
			continue
		}
		if e.name == "DestList" {
			continue
		}
		content := readChain(buf, h, fat, e.startSector)
		if uint64(len(content)) > e.streamSize {
			content = content[:e.streamSize]
		}
		rec, err := lnk.Decode(content, pool)
		if err != nil {
			continue
		}
		rec.EventSource = timeline.SourceJumplist
		records = append(records, *rec)
	}
	return records, nil
}
