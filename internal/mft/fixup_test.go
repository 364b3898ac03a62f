package mft

import "testing"

func TestApplyFixupValid(t *testing.T) {
	record := buildRecord(recordOpts{fnName: "ok", withUSA: true, usaValid: true})
	h, ok := parseHeader(record)
	if !ok {
		t.Fatal("parseHeader failed")
	}

	valid, ok := ApplyFixup(record, h.usaOffset, h.usaSize)
	if !ok || !valid {
		t.Fatalf("expected valid fixup, got valid=%v ok=%v", valid, ok)
	}

	// the sentinel bytes at each sub-sector tail must now hold the USA
	// replacement words, not the sentinel.
	if got := usaSentinel(record, sectorSize-2); got != 0x1111 {
		t.Errorf("record[tail0] = %#x, want %#x", got, 0x1111)
	}
}

func TestApplyFixupSoftErrorOnSentinelMismatch(t *testing.T) {
	record := buildRecord(recordOpts{fnName: "bad", withUSA: true, usaValid: false})
	h, _ := parseHeader(record)

	valid, ok := ApplyFixup(record, h.usaOffset, h.usaSize)
	if !ok {
		t.Fatal("expected ok=true (bounds fine), got false")
	}
	if valid {
		t.Fatal("expected valid=false on sentinel mismatch (soft error, record still usable)")
	}
}

func TestApplyFixupRejectsOutOfBoundsUSA(t *testing.T) {
	record := buildRecord(recordOpts{fnName: "x"})
	_, ok := ApplyFixup(record, uint16(RecordSize-1), 10)
	if ok {
		t.Fatal("expected ok=false when USA would overflow the record")
	}
}

func TestApplyFixupNoOpWhenUSASizeZero(t *testing.T) {
	record := buildRecord(recordOpts{fnName: "x"})
	valid, ok := ApplyFixup(record, 42, 0)
	if !ok || !valid {
		t.Fatalf("expected no-op success, got valid=%v ok=%v", valid, ok)
	}
}
