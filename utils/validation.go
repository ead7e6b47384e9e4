package utils

import (
	"bytes"
	"fmt"
)

// minMagicLen is the shortest buffer ValidateFileType will inspect.
const minMagicLen = 12

var magicChecks = map[string]func([]byte) bool{
	"jpg": func(b []byte) bool { return bytes.HasPrefix(b, []byte{0xFF, 0xD8, 0xFF}) },
	"png": func(b []byte) bool {
		return bytes.HasPrefix(b, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	},
	"gif": func(b []byte) bool {
		return bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a"))
	},
	"webp": func(b []byte) bool {
		return bytes.HasPrefix(b, []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP"))
	},
	"bmp": func(b []byte) bool { return bytes.HasPrefix(b, []byte("BM")) },
	"tiff": func(b []byte) bool {
		return bytes.HasPrefix(b, []byte{0x49, 0x49, 0x2A, 0x00}) || bytes.HasPrefix(b, []byte{0x4D, 0x4D, 0x00, 0x2A})
	},
}

// ValidateFileType checks the leading magic bytes of data against ext.
func ValidateFileType(data []byte, ext string) error {
	if len(data) < minMagicLen {
		return fmt.Errorf("file too small to identify (%d bytes)", len(data))
	}
	check, ok := magicChecks[ext]
	if !ok {
		return fmt.Errorf("unsupported file type %q", ext)
	}
	if !check(data) {
		return fmt.Errorf("content does not match %s signature", ext)
	}
	return nil
}
