package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError error
	}{
		{"simple path", "pkg/.packages", nil},
		{"absolute path", "/proj/.packages", nil},
		{"empty path", "", ErrEmptyPath},
		{"very long path", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
		{"null byte", "file\x00.txt", ErrInvalidCharacter},
		{"control character", "file\x01.txt", ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantError == nil {
				if err != nil {
					t.Errorf("ValidatePath(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.wantError) {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, err, tt.wantError)
			}
		})
	}
}

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want Compression
	}{
		{"gzip magic", []byte{0x1f, 0x8b, 0x08, 0x00}, CompressionGzip},
		{"xz magic", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0x00}, CompressionXZ},
		{"plain text", []byte("foo:lib/\n"), CompressionNone},
		{"short buffer", []byte{0x1f}, CompressionNone},
		{"empty", nil, CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCompression(tt.buf); got != tt.want {
				t.Errorf("DetectCompression = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsLikelyText(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want bool
	}{
		{"mapping file", []byte("foo:lib/\nbar:../bar/\n"), true},
		{"utf8 comment", []byte("# caf\xc3\xa9\nfoo:lib/\n"), true},
		{"null byte", []byte("foo\x00bar"), false},
		{"mostly control", []byte{0x01, 0x02, 0x03, 0x04, 'a'}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLikelyText(tt.buf); got != tt.want {
				t.Errorf("IsLikelyText = %v, want %v", got, tt.want)
			}
		})
	}
}
