package device

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shubham030/tl/internal/timeline"
)

// LiveVolumeRecordQuota names a live-volume record cap of 10,000. No code
// reads it: a live-volume read decodes every record it finds, uncapped.
const LiveVolumeRecordQuota = 10000

// IsLiveVolumeDesignator reports whether name is a two-character drive
// designator ending in ':', e.g. "C:".
func IsLiveVolumeDesignator(name string) bool {
	return len(name) == 2 && name[1] == ':'
}

// ResolveVolumePath maps a drive designator to the OS path needed to open
// a raw handle on it, dispatching on runtime.GOOS. Only Windows maps a
// designator; every other host, Linux and macOS included, gets
// ErrUnsupported.
func ResolveVolumePath(designator string) (string, error) {
	if !IsLiveVolumeDesignator(designator) {
		return "", timeline.NewError(timeline.ErrInvalidInput, "not a drive designator: "+designator)
	}
	drive := strings.ToUpper(string(designator[0]))

	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf(`\\.\%s:`, drive), nil
	case "linux", "darwin":
		return "", timeline.NewError(timeline.ErrUnsupported,
			"live volume access by drive letter requires a block-device path on "+runtime.GOOS)
	default:
		return "", timeline.NewError(timeline.ErrUnsupported, "unsupported OS for live volume access: "+runtime.GOOS)
	}
}
