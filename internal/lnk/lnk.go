// Package lnk implements a minimal Windows Shell Link (.lnk) decoder
// against the MS-SHLLINK binary format: a 76-byte ShellLinkHeader followed
// by an optional LinkTargetIDList, LinkInfo, and StringData sections.
package lnk

import (
	"encoding/binary"
	"time"

	"github.com/shubham030/tl/internal/intern"
	"github.com/shubham030/tl/internal/timeline"
)

const headerSize = 76

// LinkFlags bits relevant to this decoder (MS-SHLLINK 2.1.1).
const (
	flagHasLinkTargetIDList uint32 = 1 << 0
	flagHasLinkInfo         uint32 = 1 << 1
	flagHasName             uint32 = 1 << 2
	flagHasRelativePath     uint32 = 1 << 3
	flagHasWorkingDir       uint32 = 1 << 4
	flagHasArguments        uint32 = 1 << 5
	flagHasIconLocation     uint32 = 1 << 6
	flagIsUnicode           uint32 = 1 << 7
)

var expectedLinkCLSID = [16]byte{
	0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
}

const filetimeEpochOffset int64 = 116444736000000000

func convertFT(raw uint64) *time.Time {
	ft := int64(raw)
	if ft <= filetimeEpochOffset {
		return nil
	}
	t := time.Unix(0, (ft-filetimeEpochOffset)*100).UTC()
	return &t
}

// Decode parses a single .lnk buffer into one timeline.Record carrying the
// shortcut's own three FILETIMEs (the header has no MFT-change-journal
// analogue, so MFTModified is left unset) and, when present, the resolved
// target path from LinkInfo's local base path.
func Decode(buf []byte, pool *intern.Pool) (*timeline.Record, error) {
	if len(buf) < headerSize {
		return nil, timeline.NewError(timeline.ErrParse, "lnk buffer shorter than header")
	}
	headerSizeField := binary.LittleEndian.Uint32(buf[0:4])
	if headerSizeField != headerSize {
		return nil, timeline.NewError(timeline.ErrParse, "unexpected lnk header size")
	}
	if [16]byte(buf[4:20]) != expectedLinkCLSID {
		return nil, timeline.NewError(timeline.ErrParse, "lnk CLSID mismatch")
	}

	flags := binary.LittleEndian.Uint32(buf[20:24])
	creation := convertFT(binary.LittleEndian.Uint64(buf[28:36]))
	access := convertFT(binary.LittleEndian.Uint64(buf[36:44]))
	write := convertFT(binary.LittleEndian.Uint64(buf[44:52]))
	fileSize := uint64(binary.LittleEndian.Uint32(buf[52:56]))

	rec := &timeline.Record{
		EventSource: timeline.SourceLNK,
		FileSize:    fileSize,
		SITimestamps: timeline.Timestamps{
			Created:  creation,
			Accessed: access,
			Modified: write,
		},
	}

	offset := headerSize
	if flags&flagHasLinkTargetIDList != 0 {
		offset = skipIDList(buf, offset)
	}

	if flags&flagHasLinkInfo != 0 {
		target, next, ok := parseLinkInfo(buf, offset)
		if ok {
			rec.Location = target
			rec.Filename = baseName(target)
		}
		offset = next
	}

	if rec.Filename == "" {
		if name, ok := readStringSection(buf, &offset, flags, flagHasName); ok {
			rec.Filename = pool.Intern(name)
		}
	} else {
		_, _ = readStringSection(buf, &offset, flags, flagHasName)
	}
	readStringSection(buf, &offset, flags, flagHasRelativePath)
	readStringSection(buf, &offset, flags, flagHasWorkingDir)
	readStringSection(buf, &offset, flags, flagHasArguments)
	readStringSection(buf, &offset, flags, flagHasIconLocation)

	return rec, nil
}

func skipIDList(buf []byte, offset int) int {
	if offset+2 > len(buf) {
		return offset
	}
	idListSize := int(binary.LittleEndian.Uint16(buf[offset : offset+2]))
	return offset + 2 + idListSize
}

// parseLinkInfo reads just enough of the LinkInfo structure (MS-SHLLINK
// 2.3) to recover the LocalBasePath, which is the only field this decoder
// surfaces.
func parseLinkInfo(buf []byte, offset int) (path string, next int, ok bool) {
	if offset+4 > len(buf) {
		return "", offset, false
	}
	linkInfoSize := int(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	if linkInfoSize < 4 || offset+linkInfoSize > len(buf) {
		return "", offset, false
	}
	body := buf[offset : offset+linkInfoSize]
	next = offset + linkInfoSize

	if len(body) < 28 {
		return "", next, false
	}
	flags := binary.LittleEndian.Uint32(body[8:12])
	const hasLocalBasePath = 1 << 0
	if flags&hasLocalBasePath == 0 {
		return "", next, false
	}
	localBasePathOffset := int(binary.LittleEndian.Uint32(body[16:20]))
	if localBasePathOffset <= 0 || localBasePathOffset >= len(body) {
		return "", next, false
	}
	end := localBasePathOffset
	for end < len(body) && body[end] != 0 {
		end++
	}
	return string(body[localBasePathOffset:end]), next, true
}

// readStringSection reads one StringData entry (MS-SHLLINK 2.4) gated by
// the corresponding flag bit, advancing *offset past it regardless of
// whether the caller uses the decoded value.
func readStringSection(buf []byte, offset *int, flags uint32, bit uint32) (string, bool) {
	if flags&bit == 0 {
		return "", false
	}
	if *offset+2 > len(buf) {
		return "", false
	}
	countUnits := int(binary.LittleEndian.Uint16(buf[*offset : *offset+2]))
	*offset += 2

	unicode := flags&flagIsUnicode != 0
	byteLen := countUnits
	if unicode {
		byteLen *= 2
	}
	if *offset+byteLen > len(buf) {
		*offset = len(buf)
		return "", false
	}
	raw := buf[*offset : *offset+byteLen]
	*offset += byteLen

	if !unicode {
		return string(raw), true
	}
	// Minimal UTF-16LE decode sufficient for ASCII-range shortcut strings;
	// each non-ASCII code unit becomes '?' rather than being mis-decoded.
	out := make([]byte, 0, countUnits)
	for i := 0; i+1 < len(raw); i += 2 {
		unit := binary.LittleEndian.Uint16(raw[i : i+2])
		if unit < 0x80 {
			out = append(out, byte(unit))
		} else {
			out = append(out, '?')
		}
	}
	return string(out), true
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '\\' || path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
