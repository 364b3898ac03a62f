package intern

import (
	"encoding/binary"
	"testing"
)

func TestInternReturnsSameUnderlyingString(t *testing.T) {
	p := New()
	a := p.Intern("hello.txt")
	b := p.Intern("hello.txt")
	if a != b {
		t.Fatalf("expected equal interned strings, got %q and %q", a, b)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after interning the same value twice", p.Len())
	}
}

func TestInternDistinctValues(t *testing.T) {
	p := New()
	p.Intern("a")
	p.Intern("b")
	p.Intern("c")
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func utf16le(s string) []byte {
	buf := make([]byte, len(s)*2)
	for i, r := range s {
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(r))
	}
	return buf
}

func TestInternUTF16RoundTrip(t *testing.T) {
	p := New()
	got := p.InternUTF16(utf16le("report.docx"))
	if got != "report.docx" {
		t.Errorf("InternUTF16 round-trip = %q, want %q", got, "report.docx")
	}
}

func TestInternUTF16Empty(t *testing.T) {
	p := New()
	if got := p.InternUTF16(nil); got != "" {
		t.Errorf("InternUTF16(nil) = %q, want empty string", got)
	}
}
