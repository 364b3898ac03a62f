package container

import "github.com/shubham030/tl/internal/mft"

// ExtractFromRawImage locates the MFT inside a raw disk image via the
// boot-sector reader and returns the MFT bytes ready for parsing.
func ExtractFromRawImage(data []byte) ([]byte, error) {
	return mft.LocateMFTInRawImage(data)
}
