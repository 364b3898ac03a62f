package container

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/shubham030/tl/internal/timeline"
)

const zipEncryptedFlag = 0x1

// Artifact is one classified byte buffer extracted from a ZIP archive,
// ready to be routed to its decoder.
type Artifact struct {
	Name string
	Kind Kind
	Data []byte
}

// ExtractFromZip walks every entry in a ZIP archive, classifies each by
// name, applies password decryption where the entry is flagged encrypted,
// and falls back to the content heuristic when no filename match is
// found.
func ExtractFromZip(r io.ReaderAt, size int64, password string) ([]Artifact, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, timeline.Wrap(timeline.ErrInvalidInput, "not a valid ZIP archive", err)
	}

	var artifacts []Artifact
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		kind := classifyZipEntryName(f.Name)

		data, err := readZipEntry(f, password)
		if err != nil {
			if kind == KindMFTBuffer {
				return nil, err
			}
			continue
		}

		if kind == KindUnknown && EligibleForContentProbe(int64(len(data))) {
			probe := data
			if len(probe) > contentProbeWindow {
				probe = probe[:contentProbeWindow]
			}
			if LooksLikeMFT(probe) {
				kind = KindMFTBuffer
			}
		}

		if kind == KindMFTBuffer && len(f.Name) > 3 && hasSuffixFold(f.Name, ".gz") {
			gunzipped, err := gunzip(data)
			if err == nil {
				data = gunzipped
			}
		}

		artifacts = append(artifacts, Artifact{Name: f.Name, Kind: kind, Data: data})
	}
	return artifacts, nil
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := range tail {
		a, b := tail[i], suffix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

func gunzip(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, timeline.Wrap(timeline.ErrParse, "invalid gzip stream", err)
	}
	defer gr.Close()
	return io.ReadAll(gr)
}

// readZipEntry reads one ZIP entry, applying ZipCrypto decryption when the
// entry's general-purpose flag bit 0 is set. archive/zip has no built-in
// decryption support, so encrypted entries are read raw via OpenRaw and
// decrypted/decompressed manually.
func readZipEntry(f *zip.File, password string) ([]byte, error) {
	if f.Flags&zipEncryptedFlag == 0 {
		rc, err := f.Open()
		if err != nil {
			return nil, timeline.Wrap(timeline.ErrIO, "opening zip entry "+f.Name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, timeline.Wrap(timeline.ErrIO, "reading zip entry "+f.Name, err)
		}
		return data, nil
	}

	if password == "" {
		return nil, timeline.NewError(timeline.ErrInvalidInput, "encrypted zip entry "+f.Name+" requires --password")
	}

	raw, err := f.OpenRaw()
	if err != nil {
		return nil, timeline.Wrap(timeline.ErrIO, "opening raw zip entry "+f.Name, err)
	}
	rawBytes, err := io.ReadAll(raw)
	if err != nil {
		return nil, timeline.Wrap(timeline.ErrIO, "reading raw zip entry "+f.Name, err)
	}

	decrypted := zipCryptoDecrypt(rawBytes, password)
	if decrypted == nil {
		return nil, timeline.NewError(timeline.ErrInvalidInput, "encrypted zip entry "+f.Name+" too short")
	}

	switch f.Method {
	case zip.Store:
		return decrypted, nil
	case zip.Deflate:
		fr := flate.NewReader(bytes.NewReader(decrypted))
		defer fr.Close()
		out, err := io.ReadAll(fr)
		if err != nil {
			return nil, timeline.Wrap(timeline.ErrInvalidInput, "wrong password or corrupt entry "+f.Name, err)
		}
		return out, nil
	default:
		return nil, timeline.NewError(timeline.ErrUnsupported, "unsupported zip compression method for "+f.Name)
	}
}
