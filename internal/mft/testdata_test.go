package mft

import "encoding/binary"

// buildRecord assembles a synthetic 1024-byte MFT record with a header, an
// optional resident $STANDARD_INFORMATION attribute, and an optional
// resident $FILE_NAME attribute, matching the exact byte offsets the
// decoder expects. Used across scanner/fixup/record tests in place of a
// captured real MFT fixture.
func buildRecord(opts recordOpts) []byte {
	record := make([]byte, RecordSize)
	copy(record[0:4], []byte("FILE"))

	binary.LittleEndian.PutUint16(record[4:6], 0) // usaOffset, filled below if fixup requested
	binary.LittleEndian.PutUint16(record[16:18], opts.sequence)
	binary.LittleEndian.PutUint16(record[18:20], opts.linkCount)
	binary.LittleEndian.PutUint16(record[22:24], opts.flags)

	firstAttrOffset := 56
	binary.LittleEndian.PutUint16(record[20:22], uint16(firstAttrOffset))

	offset := firstAttrOffset
	if opts.withSI {
		offset = writeStandardInformation(record, offset, opts.siTimes)
	}
	if opts.fnName != "" {
		offset = writeFileName(record, offset, opts)
	}
	if opts.dataSize > 0 {
		offset = writeData(record, offset, opts.dataSize)
	}
	if opts.attrListRef != nil {
		offset = writeAttributeList(record, offset, *opts.attrListRef)
	}
	binary.LittleEndian.PutUint32(record[offset:offset+4], attrEndMarker)
	offset += 8

	binary.LittleEndian.PutUint32(record[24:28], uint32(offset))
	binary.LittleEndian.PutUint32(record[28:32], uint32(RecordSize))

	if opts.withUSA {
		writeUSA(record, opts.usaValid)
	}
	return record
}

type recordOpts struct {
	sequence  uint16
	linkCount uint16
	flags     uint16

	withSI   bool
	siTimes  [4]uint64 // created, modified, mftModified, accessed

	fnName    string
	fnParent  uint64
	fnTimes   [4]uint64
	namespace Namespace
	logicalSize  uint64
	physicalSize uint64

	dataSize uint64

	// attrListRef, when set, adds a resident $ATTRIBUTE_LIST attribute
	// with a single entry naming this record number as an extension record.
	attrListRef *uint64

	withUSA  bool
	usaValid bool
}

func writeStandardInformation(record []byte, offset int, times [4]uint64) int {
	const contentLen = 20 + 32
	const headerLen = 24
	length := headerLen + contentLen
	binary.LittleEndian.PutUint32(record[offset:offset+4], AttrStandardInformation)
	binary.LittleEndian.PutUint32(record[offset+4:offset+8], uint32(length))
	record[offset+8] = 0 // resident
	binary.LittleEndian.PutUint32(record[offset+16:offset+20], uint32(contentLen))
	binary.LittleEndian.PutUint16(record[offset+20:offset+22], uint16(headerLen))

	base := offset + headerLen
	content := record[base : base+contentLen]
	binary.LittleEndian.PutUint64(content[20:28], times[0])
	binary.LittleEndian.PutUint64(content[28:36], times[1])
	binary.LittleEndian.PutUint64(content[36:44], times[2])
	binary.LittleEndian.PutUint64(content[44:52], times[3])
	return offset + length
}

func writeFileName(record []byte, offset int, opts recordOpts) int {
	nameUnits := encodeUTF16(opts.fnName)
	contentLen := 66 + len(nameUnits)*2
	const headerLen = 24
	length := headerLen + contentLen
	// pad to 8-byte alignment, matching real NTFS attribute records
	if length%8 != 0 {
		length += 8 - length%8
	}
	binary.LittleEndian.PutUint32(record[offset:offset+4], AttrFileName)
	binary.LittleEndian.PutUint32(record[offset+4:offset+8], uint32(length))
	record[offset+8] = 0
	binary.LittleEndian.PutUint32(record[offset+16:offset+20], uint32(contentLen))
	binary.LittleEndian.PutUint16(record[offset+20:offset+22], uint16(headerLen))

	base := offset + headerLen
	content := record[base : base+contentLen]
	binary.LittleEndian.PutUint64(content[0:8], opts.fnParent)
	binary.LittleEndian.PutUint64(content[8:16], opts.fnTimes[0])
	binary.LittleEndian.PutUint64(content[16:24], opts.fnTimes[1])
	binary.LittleEndian.PutUint64(content[24:32], opts.fnTimes[2])
	binary.LittleEndian.PutUint64(content[32:40], opts.fnTimes[3])
	binary.LittleEndian.PutUint64(content[40:48], opts.logicalSize)
	binary.LittleEndian.PutUint64(content[48:56], opts.physicalSize)
	content[64] = byte(len(nameUnits))
	content[65] = byte(opts.namespace)
	for i, u := range nameUnits {
		binary.LittleEndian.PutUint16(content[66+i*2:68+i*2], u)
	}
	return offset + length
}

func writeData(record []byte, offset int, size uint64) int {
	const headerLen = 16
	length := headerLen + 48
	if length%8 != 0 {
		length += 8 - length%8
	}
	binary.LittleEndian.PutUint32(record[offset:offset+4], AttrData)
	binary.LittleEndian.PutUint32(record[offset+4:offset+8], uint32(length))
	record[offset+8] = 1 // non-resident
	binary.LittleEndian.PutUint64(record[offset+48:offset+56], size)
	return offset + length
}

// writeAttributeList writes a single-entry resident $ATTRIBUTE_LIST
// attribute pointing at extRecord (the base file reference field, masked
// to 48 bits by the reader).
func writeAttributeList(record []byte, offset int, extRecord uint64) int {
	const entryLen = 24
	const headerLen = 24
	length := headerLen + entryLen
	binary.LittleEndian.PutUint32(record[offset:offset+4], AttrAttributeList)
	binary.LittleEndian.PutUint32(record[offset+4:offset+8], uint32(length))
	record[offset+8] = 0 // resident
	binary.LittleEndian.PutUint32(record[offset+16:offset+20], uint32(entryLen))
	binary.LittleEndian.PutUint16(record[offset+20:offset+22], uint16(headerLen))

	base := offset + headerLen
	content := record[base : base+entryLen]
	binary.LittleEndian.PutUint32(content[0:4], AttrFileName)
	binary.LittleEndian.PutUint16(content[4:6], uint16(entryLen))
	binary.LittleEndian.PutUint64(content[16:24], extRecord)
	return offset + length
}

func writeUSA(record []byte, valid bool) {
	const usaOffset = 42
	const usaSize = 3 // 1 sentinel word + 2 sub-sector replacements
	binary.LittleEndian.PutUint16(record[4:6], usaOffset)
	binary.LittleEndian.PutUint16(record[6:8], usaSize)

	binary.LittleEndian.PutUint16(record[usaOffset:usaOffset+2], 0xABCD)
	for i := 0; i < 2; i++ {
		tail := sectorSize*i + (sectorSize - 2)
		if valid {
			binary.LittleEndian.PutUint16(record[tail:tail+2], 0xABCD)
		} else {
			binary.LittleEndian.PutUint16(record[tail:tail+2], 0x0000)
		}
		binary.LittleEndian.PutUint16(record[usaOffset+2+2*i:usaOffset+4+2*i], uint16(0x1111*(i+1)))
	}
}

func encodeUTF16(s string) []uint16 {
	out := make([]uint16, 0, len(s))
	for _, r := range s {
		out = append(out, uint16(r))
	}
	return out
}
