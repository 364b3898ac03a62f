package container

import "testing"

func TestClassifyPathByExtension(t *testing.T) {
	cases := []struct {
		name string
		want Kind
	}{
		{"$MFT", KindMFTBuffer},
		{"dump.mft", KindMFTBuffer},
		{"dump.mft.gz", KindMFTBuffer},
		{"evidence.zip", KindZIP},
		{"image.E01", KindEWF},
		{"recent.lnk", KindLNK},
		{"1b4dd67f.automaticDestinations-ms", KindAutomaticJumplist},
		{"1b4dd67f.customDestinations-ms", KindCustomJumplist},
		{"NTUSER.DAT", KindRegistryHive},
		{"SYSTEM", KindRegistryHive},
		{"disk.dd", KindRawImage},
		{"disk.raw", KindRawImage},
		{"disk.img", KindRawImage},
		{"C:", KindLiveVolume},
		{"whatever.xyz", KindUnknown},
	}
	for _, c := range cases {
		if got := ClassifyPath(c.name); got != c.want {
			t.Errorf("ClassifyPath(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestClassifyZipEntryExcludesRecycleBinIndex(t *testing.T) {
	if got := classifyZipEntryName(`$Recycle.Bin/$I3923ABC.docx`); got != KindUnknown {
		t.Errorf("classifyZipEntryName($I* under $Recycle.Bin) = %v, want KindUnknown", got)
	}
}

func TestClassifyZipEntryMFTNames(t *testing.T) {
	for _, name := range []string{"$MFT", "MFT", "mft", "image.mft", "image.mft.gz"} {
		if got := classifyZipEntryName(name); got != KindMFTBuffer {
			t.Errorf("classifyZipEntryName(%q) = %v, want KindMFTBuffer", name, got)
		}
	}
}
