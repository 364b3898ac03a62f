package device

import (
	"errors"
	"runtime"
	"testing"

	"github.com/shubham030/tl/internal/timeline"
)

func TestIsLiveVolumeDesignator(t *testing.T) {
	cases := map[string]bool{
		"C:":  true,
		"z:":  true,
		"C":   false,
		"C:\\": false,
		"":    false,
	}
	for in, want := range cases {
		if got := IsLiveVolumeDesignator(in); got != want {
			t.Errorf("IsLiveVolumeDesignator(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestResolveVolumePathRejectsNonDesignator(t *testing.T) {
	_, err := ResolveVolumePath("not-a-drive")
	if err == nil {
		t.Fatal("expected an error for a non-designator input")
	}
	var terr *timeline.Error
	if !errors.As(err, &terr) || terr.Kind != timeline.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// TestResolveVolumePathDispatchesByOS pins the three-way runtime.GOOS
// dispatch without requiring the test to actually run on every platform:
// it asserts the behavior matching whatever GOOS this test binary was
// built for, mirroring ResolveVolumePath's own switch.
func TestResolveVolumePathDispatchesByOS(t *testing.T) {
	path, err := ResolveVolumePath("C:")
	switch runtime.GOOS {
	case "windows":
		if err != nil {
			t.Fatalf("unexpected error on windows: %v", err)
		}
		if path != `\\.\C:` {
			t.Errorf("path = %q, want %q", path, `\\.\C:`)
		}
	case "linux", "darwin":
		if err == nil {
			t.Fatal("expected ErrUnsupported on linux/darwin")
		}
		var terr *timeline.Error
		if !errors.As(err, &terr) || terr.Kind != timeline.ErrUnsupported {
			t.Errorf("expected ErrUnsupported, got %v", err)
		}
	default:
		if err == nil {
			t.Fatal("expected ErrUnsupported on an unrecognized GOOS")
		}
	}
}
