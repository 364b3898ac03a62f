package mft

import "time"

// filetimeEpochOffset is the number of 100ns intervals between the
// FILETIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const filetimeEpochOffset int64 = 116444736000000000

// convertFiletime converts a raw FILETIME to a time.Time, treating values
// at or before the epoch constant as absent rather than a negative or
// zero time.
func convertFiletime(raw uint64) *time.Time {
	ft := int64(raw)
	if ft <= filetimeEpochOffset {
		return nil
	}
	unixNanos := (ft - filetimeEpochOffset) * 100
	t := time.Unix(0, unixNanos).UTC()
	return &t
}
