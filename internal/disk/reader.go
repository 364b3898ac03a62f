// Package disk owns the raw input buffer: for inputs >= 1 MiB it is
// backed by a read-only memory mapping whose lifetime matches the parse;
// smaller inputs are read directly into memory. Every decoder in this
// repository borrows read-only from the single buffer this package owns.
package disk

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/shubham030/tl/internal/timeline"
)

const (
	SectorSize = 512

	// mmapThreshold is the "inputs >= 1 MiB get mapped" cutoff.
	mmapThreshold = 1024 * 1024
)

// Reader wraps an open input file and exposes the buffer ownership model
// the rest of the pipeline borrows from read-only.
type Reader struct {
	file       *os.File
	size       int64
	sectorSize int
	mapping    mmap.MMap
	buf        []byte
}

// Open opens path, sizing it (seeking to EOF for block devices that report
// a zero stat size), and maps or reads it per the ownership model above.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, timeline.Wrap(timeline.ErrIO, "opening input", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, timeline.Wrap(timeline.ErrIO, "statting input", err)
	}

	size := stat.Size()
	if size == 0 {
		size, err = file.Seek(0, io.SeekEnd)
		if err != nil {
			file.Close()
			return nil, timeline.Wrap(timeline.ErrIO, "determining device size", err)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			file.Close()
			return nil, timeline.Wrap(timeline.ErrIO, "rewinding device", err)
		}
	}

	r := &Reader{file: file, size: size, sectorSize: SectorSize}

	if size >= mmapThreshold {
		m, err := mmap.MapRegion(file, int(size), mmap.RDONLY, 0, 0)
		if err != nil {
			// Falls back to an ordinary read when the underlying file
			// does not support mapping (pipes, some block devices).
			if buf, rerr := readAllAt(file, size); rerr == nil {
				r.buf = buf
				return r, nil
			}
			file.Close()
			return nil, timeline.Wrap(timeline.ErrIO, "mapping input", err)
		}
		r.mapping = m
		r.buf = []byte(m)
		return r, nil
	}

	buf, err := readAllAt(file, size)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.buf = buf
	return r, nil
}

func readAllAt(file *os.File, size int64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := file.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, timeline.Wrap(timeline.ErrIO, "reading input", err)
	}
	return buf, nil
}

// Close releases the mapping (if any) and the underlying file handle.
func (r *Reader) Close() error {
	if r.mapping != nil {
		if err := r.mapping.Unmap(); err != nil {
			r.file.Close()
			return timeline.Wrap(timeline.ErrIO, "unmapping input", err)
		}
	}
	return r.file.Close()
}

// Size reports the total input length.
func (r *Reader) Size() int64 { return r.size }

// SectorSize reports the device sector size, the default used when a raw
// image's boot sector hasn't been parsed yet.
func (r *Reader) SectorSize() int { return r.sectorSize }

// Bytes returns the whole input as a read-only borrowed slice, the single
// owned buffer every decoder in this repository borrows from.
func (r *Reader) Bytes() []byte { return r.buf }

// ReadAt implements io.ReaderAt directly against the owned buffer.
func (r *Reader) ReadAt(buf []byte, offset int64) (int, error) {
	if offset < 0 || offset > int64(len(r.buf)) {
		return 0, fmt.Errorf("offset %d out of range", offset)
	}
	n := copy(buf, r.buf[offset:])
	if n < len(buf) {
		return n, io.EOF
	}
	return n, nil
}

func (r *Reader) ReadSector(sector int64) ([]byte, error) {
	buf := make([]byte, r.sectorSize)
	if _, err := r.ReadAt(buf, sector*int64(r.sectorSize)); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}

func (r *Reader) ReadSectors(startSector int64, count int) ([]byte, error) {
	buf := make([]byte, count*r.sectorSize)
	if _, err := r.ReadAt(buf, startSector*int64(r.sectorSize)); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}

func (r *Reader) ReadCluster(clusterStart int64, clusterSize int) ([]byte, error) {
	buf := make([]byte, clusterSize)
	if _, err := r.ReadAt(buf, clusterStart); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}

// DetectFilesystem inspects the boot sector for the NTFS OEM ID;
// non-NTFS filesystems are out of scope, so this only ever distinguishes
// "ntfs" from "unknown".
func DetectFilesystem(r *Reader) (string, error) {
	buf := make([]byte, 512)
	if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
		return "", err
	}
	if string(buf[3:7]) == "NTFS" {
		return "ntfs", nil
	}
	return "", timeline.NewError(timeline.ErrUnsupported, "unknown or non-NTFS filesystem")
}
