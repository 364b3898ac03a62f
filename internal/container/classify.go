// Package container implements the container dispatcher: classifies an
// input by extension/name, extracts MFT bytes from ZIP archives and raw
// disk images, and classifies sibling artifacts for their own decoders.
package container

import (
	"path/filepath"
	"strings"
)

// Kind is the classification result for one input.
type Kind int

const (
	KindMFTBuffer Kind = iota
	KindZIP
	KindRawImage
	KindEWF
	KindLNK
	KindAutomaticJumplist
	KindCustomJumplist
	KindRegistryHive
	KindLiveVolume
	KindUnknown
)

var rawImageExts = map[string]bool{".dd": true, ".raw": true, ".img": true}
var mftBufferExts = map[string]bool{".mft": true, ".bin": true, ".gz": true, "": true}

// hiveBaseNames matches well-known registry hive filenames regardless of
// extension (NTUSER.DAT, SYSTEM, SOFTWARE, SAM, SECURITY, DEFAULT,
// UsrClass.dat).
var hiveBaseNames = map[string]bool{
	"ntuser.dat": true, "system": true, "software": true,
	"sam": true, "security": true, "default": true,
	"usrclass.dat": true,
}

// ClassifyPath classifies an input by extension and filename alone. It
// does not open the file; the content-based fallback for ZIP entries
// lives in heuristic.go (LooksLikeMFT / EligibleForContentProbe).
func ClassifyPath(name string) Kind {
	if isLiveVolumeDesignator(name) {
		return KindLiveVolume
	}

	base := strings.ToLower(filepath.Base(name))
	ext := strings.ToLower(filepath.Ext(name))

	if hiveBaseNames[strings.TrimSuffix(base, ext)] || hiveBaseNames[base] {
		return KindRegistryHive
	}

	switch ext {
	case ".zip":
		return KindZIP
	case ".e01":
		return KindEWF
	case ".lnk":
		return KindLNK
	case ".automaticdestinations-ms":
		return KindAutomaticJumplist
	case ".customdestinations-ms":
		return KindCustomJumplist
	}
	if strings.HasSuffix(base, ".automaticdestinations-ms") {
		return KindAutomaticJumplist
	}
	if strings.HasSuffix(base, ".customdestinations-ms") {
		return KindCustomJumplist
	}
	if rawImageExts[ext] {
		return KindRawImage
	}
	if mftBufferExts[ext] {
		return KindMFTBuffer
	}
	return KindUnknown
}

// isLiveVolumeDesignator reports whether name is a two-character drive
// designator ending in ':' (e.g. "C:").
func isLiveVolumeDesignator(name string) bool {
	return len(name) == 2 && name[1] == ':'
}

// classifyZipEntryName applies the ZIP-specific filename tags:
// "$MFT"/"MFT"/"mft"/".mft"/".mft.gz" match as MFT bytes; "$I*" files
// under "$Recycle.Bin" are explicitly excluded from the LNK path even
// though they end in other extensions.
func classifyZipEntryName(name string) Kind {
	base := filepath.Base(name)
	lower := strings.ToLower(base)

	if strings.Contains(filepath.ToSlash(name), "$Recycle.Bin") && strings.HasPrefix(base, "$I") {
		return KindUnknown
	}

	switch lower {
	case "$mft", "mft":
		return KindMFTBuffer
	}
	if strings.HasSuffix(lower, ".mft") || strings.HasSuffix(lower, ".mft.gz") {
		return KindMFTBuffer
	}
	return ClassifyPath(name)
}
