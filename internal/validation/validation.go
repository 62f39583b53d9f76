// Package validation provides input validation for user-supplied paths
// and content sniffing for the compressed encodings the tool reads.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Limits on user-supplied input.
const (
	// MaxFileSize is the maximum allowed file size (256 MB).
	MaxFileSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrFileTooLarge     = errors.New("file too large")
)

// ValidatePath checks a user-supplied path for length limits and
// invalid characters. It does not touch the filesystem.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// Compression identifies a compression wrapper around file content.
type Compression string

const (
	// CompressionNone means plain content.
	CompressionNone Compression = "none"
	// CompressionGzip means gzip-wrapped content.
	CompressionGzip Compression = "gzip"
	// CompressionXZ means xz-wrapped content.
	CompressionXZ Compression = "xz"
)

// magicBytes defines magic byte signatures for compression detection.
var magicBytes = []struct {
	compression Compression
	magic       []byte
}{
	{CompressionGzip, []byte{0x1f, 0x8b}},
	{CompressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
}

// DetectCompression detects a compression wrapper from leading magic
// bytes. Plain content, including short content, reports
// CompressionNone.
func DetectCompression(buf []byte) Compression {
	for _, sig := range magicBytes {
		if len(buf) >= len(sig.magic) && bytes.Equal(buf[:len(sig.magic)], sig.magic) {
			return sig.compression
		}
	}
	return CompressionNone
}

// IsLikelyText checks if the buffer contains likely text content.
// Returns true if the buffer appears to be text (UTF-8, ASCII).
func IsLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}

	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else if b < 0x20 {
			control++
		}
		// UTF-8 continuation and start bytes are neutral
	}

	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
