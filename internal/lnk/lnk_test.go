package lnk

import (
	"encoding/binary"
	"testing"

	"github.com/shubham030/tl/internal/intern"
)

// buildLnk assembles a minimal .lnk buffer: the 76-byte header (no
// LinkTargetIDList, no LinkInfo) followed by a single Unicode Name
// StringData section, enough to exercise Decode without a captured real
// shortcut fixture.
func buildLnk(name string, created, access, write uint64) []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:4], headerSize)
	copy(buf[4:20], expectedLinkCLSID[:])
	binary.LittleEndian.PutUint32(buf[20:24], flagHasName|flagIsUnicode)
	binary.LittleEndian.PutUint64(buf[28:36], created)
	binary.LittleEndian.PutUint64(buf[36:44], access)
	binary.LittleEndian.PutUint64(buf[44:52], write)
	binary.LittleEndian.PutUint32(buf[52:56], 4096) // FileSize

	units := make([]byte, len(name)*2)
	for i, r := range name {
		binary.LittleEndian.PutUint16(units[i*2:i*2+2], uint16(r))
	}
	section := make([]byte, 2+len(units))
	binary.LittleEndian.PutUint16(section[0:2], uint16(len(name)))
	copy(section[2:], units)

	return append(buf, section...)
}

func TestDecodeBasicShortcut(t *testing.T) {
	const ft = uint64(filetimeEpochOffset) + 10_000_000 // 1s past epoch
	buf := buildLnk("target.exe", ft, ft, ft)

	rec, err := Decode(buf, intern.New())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rec.Filename != "target.exe" {
		t.Errorf("Filename = %q, want %q", rec.Filename, "target.exe")
	}
	if rec.FileSize != 4096 {
		t.Errorf("FileSize = %d, want 4096", rec.FileSize)
	}
	if rec.SITimestamps.Created == nil || rec.SITimestamps.Accessed == nil || rec.SITimestamps.Modified == nil {
		t.Fatal("expected all three timestamps to be present")
	}
	if rec.SITimestamps.Created.Unix() != 1 {
		t.Errorf("Created.Unix() = %d, want 1", rec.SITimestamps.Created.Unix())
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	if _, err := Decode(make([]byte, 10), intern.New()); err == nil {
		t.Fatal("expected an error for a buffer shorter than the header")
	}
}

func TestDecodeRejectsWrongCLSID(t *testing.T) {
	buf := buildLnk("x", 0, 0, 0)
	buf[4] = buf[4] ^ 0xFF // corrupt the CLSID
	if _, err := Decode(buf, intern.New()); err == nil {
		t.Fatal("expected an error for a mismatched CLSID")
	}
}

func TestDecodeAbsentTimestampsStayNil(t *testing.T) {
	buf := buildLnk("noTime", 0, 0, 0) // raw filetime 0 is at-or-before the epoch
	rec, err := Decode(buf, intern.New())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rec.SITimestamps.Created != nil {
		t.Error("expected nil Created for a zero FILETIME")
	}
}
