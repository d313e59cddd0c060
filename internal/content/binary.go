package content

import (
	"path/filepath"
	"strings"
)

// binaryExtensions mirrors the Python extractor's binary_extensions set
// (images, archives, object code, fonts, media).
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".svg": true, ".webp": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true,
	".zip": true, ".tar": true, ".gz": true, ".rar": true, ".7z": true, ".bz2": true, ".xz": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true, ".deb": true, ".rpm": true,
	".mp3": true, ".wav": true, ".mp4": true, ".avi": true, ".mkv": true, ".mov": true, ".wmv": true,
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true, ".eot": true,
	".class": true, ".pyc": true, ".o": true, ".a": true,
}

// isBinaryExtension filters by extension (spec.md §4.2 step 1). Files with
// no extension are tentatively treated as text.
func isBinaryExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return binaryExtensions[ext]
}

// looksBinary implements spec.md §4.2 step 4's binary-content heuristic:
// a null byte in the first KB, or a non-printable-byte ratio above 30%
// (excluding tab/LF/CR).
func looksBinary(b []byte) bool {
	probe := b
	if len(probe) > 1024 {
		probe = probe[:1024]
	}
	for _, c := range probe {
		if c == 0x00 {
			return true
		}
	}
	if len(b) == 0 {
		return false
	}
	nonPrintable := 0
	for _, c := range b {
		if c < 32 && c != '\t' && c != '\n' && c != '\r' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(b)) > 0.30
}
