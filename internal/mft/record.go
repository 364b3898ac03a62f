package mft

import (
	"encoding/binary"

	"github.com/shubham030/tl/internal/intern"
	"github.com/shubham030/tl/internal/timeline"
)

// Namespace is the $FILE_NAME namespace tag.
type Namespace uint8

const (
	NamespacePOSIX       Namespace = 0
	NamespaceWin32       Namespace = 1
	NamespaceDOS         Namespace = 2
	NamespaceWin32AndDOS Namespace = 3
)

// Priority orders namespaces for picking the best $FILE_NAME when a record
// carries more than one: Win32 == Win32AndDos (0) < DOS (1) < POSIX (2).
func (n Namespace) Priority() int {
	switch n {
	case NamespaceWin32, NamespaceWin32AndDOS:
		return 0
	case NamespaceDOS:
		return 1
	case NamespacePOSIX:
		return 2
	default:
		return 3
	}
}

// header mirrors the fixed NTFS MFT record header.
type header struct {
	signature        [4]byte
	usaOffset        uint16
	usaSize          uint16
	sequence         uint16
	linkCount        uint16
	firstAttrOffset  uint16
	flags            uint16
	usedSize         uint32
	totalSize        uint32
	baseRef          uint64
}

const (
	flagAllocated     uint16 = 1 << 0
	flagIndexPresent  uint16 = 1 << 1
)

func parseHeader(record []byte) (header, bool) {
	if len(record) < 42 {
		return header{}, false
	}
	var h header
	copy(h.signature[:], record[0:4])
	h.usaOffset = binary.LittleEndian.Uint16(record[4:6])
	h.usaSize = binary.LittleEndian.Uint16(record[6:8])
	h.sequence = binary.LittleEndian.Uint16(record[16:18])
	h.linkCount = binary.LittleEndian.Uint16(record[18:20])
	h.firstAttrOffset = binary.LittleEndian.Uint16(record[20:22])
	h.flags = binary.LittleEndian.Uint16(record[22:24])
	h.usedSize = binary.LittleEndian.Uint32(record[24:28])
	h.totalSize = binary.LittleEndian.Uint32(record[28:32])
	h.baseRef = binary.LittleEndian.Uint64(record[32:40]) & 0x0000FFFFFFFFFFFF
	return h, true
}

// fileNameAttr holds one decoded $FILE_NAME attribute prior to namespace
// selection.
type fileNameAttr struct {
	parent     uint64
	timestamps timeline.Timestamps
	logicalSize  uint64
	physicalSize uint64
	namespace  Namespace
	name       string
}

// ExtensionResolver fetches the fixed-up record bytes for a record number
// named by an $ATTRIBUTE_LIST entry, so attributes split across extension
// records can be folded back into the base record. ok is false when the
// record number is out of range or its own fixup failed.
type ExtensionResolver func(recordNumber uint64) (record []byte, ok bool)

// decodeState accumulates the per-attribute-type results shared between a
// base record's own attributes and any extension record's attributes
// reached through $ATTRIBUTE_LIST.
type decodeState struct {
	bestFN      *fileNameAttr
	dataSize    uint64
	dataSizeSet bool
}

// applyAttributes walks one record's attributes (the base record or an
// extension record resolved through $ATTRIBUTE_LIST) and folds
// $STANDARD_INFORMATION, $FILE_NAME, and $DATA contributions into out and
// st. attrListEntries collects any $ATTRIBUTE_LIST entries found, so the
// caller can decide whether to follow them (bounded to one level).
func applyAttributes(record []byte, attrs []AttrHeader, pool *intern.Pool, out *timeline.Record, st *decodeState) (attrListEntries []attrListEntry) {
	for _, a := range attrs {
		switch a.Type {
		case AttrStandardInformation:
			parseStandardInformation(record, a, out)
		case AttrAttributeList:
			attrListEntries = append(attrListEntries, parseAttributeList(record, a)...)
		case AttrFileName:
			fn := parseFileName(record, a, pool)
			if fn != nil && (st.bestFN == nil || fn.namespace.Priority() < st.bestFN.namespace.Priority()) {
				st.bestFN = fn
			}
		case AttrData:
			nameOff, nameLen, ok := attrName(record, a)
			if ok && nameLen > 0 {
				name := pool.InternUTF16(record[nameOff : nameOff+nameLen*2])
				size, _ := attrDataSize(record, a)
				out.AlternateDataStreams = append(out.AlternateDataStreams, timeline.AlternateDataStream{
					Name:     name,
					Size:     size,
					Resident: a.Resident,
				})
				continue
			}
			if size, ok := attrDataSize(record, a); ok {
				st.dataSize = size
				st.dataSizeSet = true
			}
		}
	}
	return attrListEntries
}

// DecodeRecord converts one already-fixed-up record buffer into a logical
// Record, given the 48-bit record number (parent refs are masked to 48
// bits by parseFileName), or reports skip=true on a header too short to
// parse or a non-FILE signature. An attribute whose content offset is out
// of bounds is ignored and the record is still decoded. fixupValid carries the USA sentinel-match
// result from ApplyFixup through to Record.SoftError. resolveExt, when
// non-nil, is used to fetch and fold in $ATTRIBUTE_LIST extension records;
// pass nil to skip extent resolution.
func DecodeRecord(record []byte, recordNumber uint64, pool *intern.Pool, fixupValid bool, resolveExt ExtensionResolver) (rec *timeline.Record, skip bool) {
	h, ok := parseHeader(record)
	if !ok {
		return nil, true
	}
	if !IsFile(record[:4]) {
		return nil, true
	}

	usedSize := int(h.usedSize)
	if usedSize <= 0 || usedSize > len(record) {
		usedSize = len(record)
	}

	attrs := WalkAttributes(record, int(h.firstAttrOffset), usedSize)

	out := &timeline.Record{
		RecordNumber:   recordNumber,
		SequenceNumber: h.sequence,
		LinkCount:      h.linkCount,
		IsDeleted:      h.flags&flagAllocated == 0,
		IsDirectory:    h.flags&flagIndexPresent != 0,
		EventSource:    timeline.SourceMFT,
		SoftError:      !fixupValid,
	}

	var st decodeState
	entries := applyAttributes(record, attrs, pool, out, &st)

	if resolveExt != nil {
		for _, e := range entries {
			if e.baseRecord == recordNumber {
				continue
			}
			extRecord, ok := resolveExt(e.baseRecord)
			if !ok {
				continue
			}
			extH, ok := parseHeader(extRecord)
			if !ok || !IsFile(extRecord[:4]) {
				continue
			}
			extUsedSize := int(extH.usedSize)
			if extUsedSize <= 0 || extUsedSize > len(extRecord) {
				extUsedSize = len(extRecord)
			}
			extAttrs := WalkAttributes(extRecord, int(extH.firstAttrOffset), extUsedSize)
			// Nested $ATTRIBUTE_LIST entries are ignored: extent walking is
			// bounded to one level.
			applyAttributes(extRecord, extAttrs, pool, out, &st)
		}
	}

	if st.bestFN != nil {
		out.ParentDirectory = st.bestFN.parent
		out.FNTimestamps = st.bestFN.timestamps
		out.Filename = st.bestFN.name
		if !st.dataSizeSet {
			out.FileSize = st.bestFN.logicalSize
		}
		out.AllocatedSize = st.bestFN.physicalSize
	}
	if st.dataSizeSet {
		out.FileSize = st.dataSize
	}

	return out, false
}

func parseStandardInformation(record []byte, a AttrHeader, out *timeline.Record) {
	if !a.Resident {
		return
	}
	base, length, ok := residentContentOffset(record, a)
	if !ok || length < 20+32 {
		return
	}
	content := record[base+20 : base+20+32]
	out.SITimestamps = timeline.Timestamps{
		Created:     convertFiletime(binary.LittleEndian.Uint64(content[0:8])),
		Modified:    convertFiletime(binary.LittleEndian.Uint64(content[8:16])),
		MFTModified: convertFiletime(binary.LittleEndian.Uint64(content[16:24])),
		Accessed:    convertFiletime(binary.LittleEndian.Uint64(content[24:32])),
	}
}

func parseFileName(record []byte, a AttrHeader, pool *intern.Pool) *fileNameAttr {
	if !a.Resident {
		return nil
	}
	base, length, ok := residentContentOffset(record, a)
	if !ok || length < 66 {
		return nil
	}
	content := record[base : base+length]

	parent := binary.LittleEndian.Uint64(content[0:8]) & 0x0000FFFFFFFFFFFF
	ts := timeline.Timestamps{
		Created:     convertFiletime(binary.LittleEndian.Uint64(content[8:16])),
		Modified:    convertFiletime(binary.LittleEndian.Uint64(content[16:24])),
		MFTModified: convertFiletime(binary.LittleEndian.Uint64(content[24:32])),
		Accessed:    convertFiletime(binary.LittleEndian.Uint64(content[32:40])),
	}
	logicalSize := binary.LittleEndian.Uint64(content[40:48])
	physicalSize := binary.LittleEndian.Uint64(content[48:56])
	nameLenUnits := int(content[64])
	namespace := Namespace(content[65])

	nameStart := 66
	nameEnd := nameStart + nameLenUnits*2
	if nameEnd > len(content) {
		return nil
	}
	name := pool.InternUTF16(content[nameStart:nameEnd])

	return &fileNameAttr{
		parent:       parent,
		timestamps:   ts,
		logicalSize:  logicalSize,
		physicalSize: physicalSize,
		namespace:    namespace,
		name:         name,
	}
}

func attrDataSize(record []byte, a AttrHeader) (uint64, bool) {
	if !a.Resident {
		return nonResidentDataSize(record, a)
	}
	_, length, ok := residentContentOffset(record, a)
	if !ok {
		return 0, false
	}
	return uint64(length), true
}
