// Package intern implements a concurrent content-addressed string pool:
// hash every candidate with FNV-1a, store first-writer-wins under that
// hash, and tolerate hash collisions by falling back to a direct
// comparison instead of ever failing a lookup.
package intern

import (
	"sync"

	"golang.org/x/text/encoding/unicode"
)

const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// fastHash is the FNV-1a variant used for both UTF-8 and raw UTF-16 byte
// slices.
func fastHash(b []byte) uint64 {
	h := fnvOffset64
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

type entry struct {
	hash  uint64
	value string
}

// Pool is a concurrent string interner. Zero value is not usable; use New.
type Pool struct {
	mu      sync.RWMutex
	entries map[uint64][]entry // bucket by hash, tolerating collisions
}

// New builds an empty Pool.
func New() *Pool {
	return &Pool{
		entries: make(map[uint64][]entry),
	}
}

// Intern returns the canonical string for s, storing it on first sight.
func (p *Pool) Intern(s string) string {
	h := fastHash([]byte(s))

	p.mu.RLock()
	for _, e := range p.entries[h] {
		if e.value == s {
			p.mu.RUnlock()
			return e.value
		}
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries[h] {
		if e.value == s {
			return e.value
		}
	}
	p.entries[h] = append(p.entries[h], entry{hash: h, value: s})
	return s
}

// InternUTF16 decodes raw little-endian UTF-16 bytes (as stored inline in
// MFT $FILE_NAME attributes) and interns the result. Invalid code units are
// replaced with U+FFFD rather than failing the decode: a bad name must
// never abort parsing. A fresh decoder is built per call: x/text
// Transformers carry internal state and are not safe to share across the
// concurrent callers this Pool is designed for.
func (p *Pool) InternUTF16(b []byte) string {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.ReplacementBOM).NewDecoder()
	decoded, err := decoder.Bytes(b)
	if err != nil || decoded == nil {
		decoded = []byte("�")
	}
	return p.Intern(string(decoded))
}

// Len reports the number of distinct strings currently interned (used by
// tests to assert dedup actually happened).
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	n := 0
	for _, bucket := range p.entries {
		n += len(bucket)
	}
	return n
}
