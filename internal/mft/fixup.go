package mft

import "encoding/binary"

// sectorSize is the sub-sector stride the update-sequence array protects.
const sectorSize = 512

// ApplyFixup validates and undoes the update-sequence array fixup,
// mutating record in place. usaOffset/usaSize come from the record header
// (offsets 4 and 6). Returns (valid, ok): ok is false when the USA would
// overflow the buffer (the record must be dropped); valid is false when
// any sub-sector's pre-fixup tail did not match the USA sentinel — a soft
// error where the record is still usable, just tagged.
func ApplyFixup(record []byte, usaOffset, usaSize uint16) (valid bool, ok bool) {
	if usaSize == 0 {
		return true, true
	}
	usaEnd := int(usaOffset) + int(usaSize)*2
	if usaEnd > len(record) || int(usaOffset)+2 > len(record) {
		return false, false
	}

	sentinel := record[usaOffset : usaOffset+2]
	numSubSectors := int(usaSize) - 1
	if numSubSectors <= 0 {
		return true, true
	}

	valid = true
	for i := 0; i < numSubSectors; i++ {
		tailStart := sectorSize*i + (sectorSize - 2)
		tailEnd := tailStart + 2
		if tailEnd > len(record) {
			return false, false
		}

		repl := record[int(usaOffset)+2*(i+1) : int(usaOffset)+2*(i+1)+2]
		if record[tailStart] != sentinel[0] || record[tailStart+1] != sentinel[1] {
			valid = false
		}
		record[tailStart] = repl[0]
		record[tailStart+1] = repl[1]
	}
	return valid, true
}

// usaSentinel reads the two-byte update sequence number stored at the
// start of the USA (used by tests to assert against a fixture buffer).
func usaSentinel(record []byte, usaOffset uint16) uint16 {
	return binary.LittleEndian.Uint16(record[usaOffset : usaOffset+2])
}
