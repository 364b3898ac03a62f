package disk

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.img")

	f, err := os.Create(tmpFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	testData := make([]byte, 2*1024*1024) // exercise the mmap path
	for i := range testData {
		testData[i] = byte(i % 256)
	}
	f.Write(testData)
	f.Close()

	reader, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer reader.Close()

	if reader.Size() != int64(len(testData)) {
		t.Errorf("Expected size %d, got %d", len(testData), reader.Size())
	}
	if reader.SectorSize() != SectorSize {
		t.Errorf("Expected sector size %d, got %d", SectorSize, reader.SectorSize())
	}
	if len(reader.Bytes()) != len(testData) {
		t.Errorf("Expected Bytes() length %d, got %d", len(testData), len(reader.Bytes()))
	}
}

func TestReadAt(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.img")

	testData := []byte("Hello, World! This is a test file for disk reader.")
	if err := os.WriteFile(tmpFile, testData, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	reader, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer reader.Close()

	buf := make([]byte, 5)
	n, err := reader.ReadAt(buf, 0)
	if err != nil {
		t.Fatalf("ReadAt failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Expected to read 5 bytes, got %d", n)
	}
	if string(buf) != "Hello" {
		t.Errorf("Expected 'Hello', got '%s'", string(buf))
	}

	n, err = reader.ReadAt(buf, 7)
	if err != nil {
		t.Fatalf("ReadAt failed: %v", err)
	}
	if string(buf) != "World" {
		t.Errorf("Expected 'World', got '%s'", string(buf))
	}
}

func TestReadSector(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.img")

	f, err := os.Create(tmpFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	sector1 := make([]byte, SectorSize)
	sector2 := make([]byte, SectorSize)
	for i := range sector1 {
		sector1[i] = 0xAA
	}
	for i := range sector2 {
		sector2[i] = 0xBB
	}
	f.Write(sector1)
	f.Write(sector2)
	f.Close()

	reader, err := Open(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer reader.Close()

	data, err := reader.ReadSector(0)
	if err != nil {
		t.Fatalf("ReadSector failed: %v", err)
	}
	if data[0] != 0xAA || data[SectorSize-1] != 0xAA {
		t.Errorf("Sector 0 data mismatch")
	}

	data, err = reader.ReadSector(1)
	if err != nil {
		t.Fatalf("ReadSector failed: %v", err)
	}
	if data[0] != 0xBB || data[SectorSize-1] != 0xBB {
		t.Errorf("Sector 1 data mismatch")
	}
}

func TestDetectFilesystem(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
		wantErr  bool
	}{
		{
			name: "NTFS",
			data: func() []byte {
				buf := make([]byte, 4096)
				copy(buf[3:7], "NTFS")
				return buf
			}(),
			expected: "ntfs",
			wantErr:  false,
		},
		{
			name:     "Unknown",
			data:     make([]byte, 4096),
			expected: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "test.img")

			if err := os.WriteFile(tmpFile, tt.data, 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			reader, err := Open(tmpFile)
			if err != nil {
				t.Fatalf("Failed to open test file: %v", err)
			}
			defer reader.Close()

			fs, err := DetectFilesystem(reader)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFilesystem failed: %v", err)
			}
			if fs != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, fs)
			}
		})
	}
}
