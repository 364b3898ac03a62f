package container

import (
	"io"

	"github.com/shubham030/tl/internal/timeline"
)

// DispatchResult is what the dispatcher hands back to the CLI orchestrator:
// either a single MFT buffer ready for the MFT parser, or a set of
// classified sibling artifacts (from a ZIP archive) each routed to its own
// decoder.
type DispatchResult struct {
	Kind      Kind
	MFTBytes  []byte
	Artifacts []Artifact
}

// Dispatch classifies name and extracts its content. r must support
// ReaderAt semantics (file-backed inputs); size is the total content
// length. Live-volume designators are handled by the caller via
// internal/device before ever reaching Dispatch, since they need an OS
// handle rather than a byte reader.
func Dispatch(name string, r io.ReaderAt, size int64, password string) (DispatchResult, error) {
	kind := ClassifyPath(name)

	switch kind {
	case KindMFTBuffer:
		data, err := readAll(r, size)
		if err != nil {
			return DispatchResult{}, err
		}
		if hasSuffixFold(name, ".gz") {
			gunzipped, gerr := gunzip(data)
			if gerr != nil {
				return DispatchResult{}, gerr
			}
			data = gunzipped
		}
		return DispatchResult{Kind: kind, MFTBytes: data}, nil

	case KindZIP:
		artifacts, err := ExtractFromZip(r, size, password)
		if err != nil {
			return DispatchResult{}, err
		}
		result := DispatchResult{Kind: kind, Artifacts: artifacts}
		for _, a := range artifacts {
			if a.Kind == KindMFTBuffer {
				result.MFTBytes = a.Data
				break
			}
		}
		return result, nil

	case KindRawImage:
		data, err := readAll(r, size)
		if err != nil {
			return DispatchResult{}, err
		}
		mftBytes, err := ExtractFromRawImage(data)
		if err != nil {
			return DispatchResult{}, err
		}
		return DispatchResult{Kind: kind, MFTBytes: mftBytes}, nil

	case KindEWF:
		return DispatchResult{}, timeline.NewError(timeline.ErrUnsupported, "EWF (E01) images are not supported")

	case KindLNK, KindAutomaticJumplist, KindCustomJumplist, KindRegistryHive:
		data, err := readAll(r, size)
		if err != nil {
			return DispatchResult{}, err
		}
		return DispatchResult{Kind: kind, MFTBytes: data}, nil

	default:
		return DispatchResult{}, timeline.NewError(timeline.ErrInvalidInput, "unrecognized input kind for "+name)
	}
}

func readAll(r io.ReaderAt, size int64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, timeline.Wrap(timeline.ErrIO, "reading input", err)
	}
	return buf, nil
}
