package mft

import "encoding/binary"

// Attribute types referenced throughout the decoder.
const (
	AttrStandardInformation uint32 = 0x10
	AttrAttributeList       uint32 = 0x20
	AttrFileName            uint32 = 0x30
	AttrData                 uint32 = 0x80
)

const attrEndMarker uint32 = 0xFFFFFFFF

// AttrHeader describes one attribute record's position inside the MFT
// record buffer: type, absolute offset, length.
type AttrHeader struct {
	Type     uint32
	Offset   int
	Length   int
	Resident bool
}

// WalkAttributes iterates typed attribute records starting at
// firstAttrOffset, stopping at the end-marker sentinel, a too-short
// length, an overrunning length, or having walked past usedSize.
func WalkAttributes(record []byte, firstAttrOffset int, usedSize int) []AttrHeader {
	var out []AttrHeader
	offset := firstAttrOffset

	for {
		if offset+4 > len(record) || offset >= usedSize {
			break
		}
		attrType := binary.LittleEndian.Uint32(record[offset : offset+4])
		if attrType == attrEndMarker {
			break
		}
		if offset+8 > len(record) {
			break
		}
		length := int(binary.LittleEndian.Uint32(record[offset+4 : offset+8]))
		if length < 16 {
			break
		}
		if offset+length > len(record) {
			break
		}

		resident := true
		if offset+9 <= len(record) {
			resident = record[offset+8] == 0
		}

		out = append(out, AttrHeader{
			Type:     attrType,
			Offset:   offset,
			Length:   length,
			Resident: resident,
		})

		offset += length
		if offset > usedSize {
			break
		}
	}
	return out
}

// Select filters a walked attribute list down to the caller-supplied set
// of types present in wanted.
func Select(attrs []AttrHeader, wanted map[uint32]bool) []AttrHeader {
	var out []AttrHeader
	for _, a := range attrs {
		if wanted[a.Type] {
			out = append(out, a)
		}
	}
	return out
}

// residentContentOffset returns the offset (within record) of a resident
// attribute's content, read from the standard resident-header fields:
// content length at attr+16, content offset at attr+20.
func residentContentOffset(record []byte, attr AttrHeader) (offset int, length int, ok bool) {
	if attr.Offset+24 > len(record) {
		return 0, 0, false
	}
	contentLength := int(binary.LittleEndian.Uint32(record[attr.Offset+16 : attr.Offset+20]))
	contentOffset := int(binary.LittleEndian.Uint16(record[attr.Offset+20 : attr.Offset+22]))
	abs := attr.Offset + contentOffset
	if abs < 0 || abs+contentLength > len(record) || contentLength < 0 {
		return 0, 0, false
	}
	return abs, contentLength, true
}

// attrName reads the optional attribute name (used by
// ADS detection under $DATA): name length in UTF-16 code units at attr+9,
// name offset at attr+10.
func attrName(record []byte, attr AttrHeader) (nameOffset int, nameLenUnits int, ok bool) {
	if attr.Offset+12 > len(record) {
		return 0, 0, false
	}
	lenUnits := int(record[attr.Offset+9])
	off := int(binary.LittleEndian.Uint16(record[attr.Offset+10 : attr.Offset+12]))
	if lenUnits == 0 {
		return 0, 0, true
	}
	abs := attr.Offset + off
	if abs < 0 || abs+lenUnits*2 > len(record) {
		return 0, 0, false
	}
	return abs, lenUnits, true
}

// nonResidentDataSize reads the real size field (offset 48 within a
// non-resident attribute header), per the $DATA real-size rule.
func nonResidentDataSize(record []byte, attr AttrHeader) (uint64, bool) {
	if attr.Offset+56 > len(record) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(record[attr.Offset+48 : attr.Offset+56]), true
}

// attrListEntry is one parsed $ATTRIBUTE_LIST entry: the type of attribute
// it names and the record number of the extension record holding it.
type attrListEntry struct {
	attrType   uint32
	baseRecord uint64
}

// parseAttributeList decodes a resident $ATTRIBUTE_LIST attribute into its
// fixed-format entries: type (u32 @0), length (u16 @4), base file
// reference (u64 @16, masked to the 48-bit record number).
func parseAttributeList(record []byte, a AttrHeader) []attrListEntry {
	if !a.Resident {
		return nil
	}
	base, length, ok := residentContentOffset(record, a)
	if !ok {
		return nil
	}
	content := record[base : base+length]

	var out []attrListEntry
	offset := 0
	for offset+24 <= len(content) {
		entryType := binary.LittleEndian.Uint32(content[offset : offset+4])
		entryLen := int(binary.LittleEndian.Uint16(content[offset+4 : offset+6]))
		if entryLen < 24 || offset+entryLen > len(content) {
			break
		}
		baseRef := binary.LittleEndian.Uint64(content[offset+16:offset+24]) & 0x0000FFFFFFFFFFFF
		out = append(out, attrListEntry{attrType: entryType, baseRecord: baseRef})
		offset += entryLen
	}
	return out
}
