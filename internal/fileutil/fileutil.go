// Package fileutil reads and writes mapping files on disk. Reads see
// through gzip and xz compression transparently; writes go through a
// temp file and rename.
package fileutil

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/pkgmap/internal/validation"
)

// Stdin is the path argument meaning standard input.
const Stdin = "-"

// ReadSource reads a mapping file, decompressing a gzip or xz wrapper
// when the content announces one. The path "-" reads standard input.
func ReadSource(path string) ([]byte, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, err
	}

	var data []byte
	var err error
	if path == Stdin {
		data, err = io.ReadAll(io.LimitReader(os.Stdin, validation.MaxFileSize+1))
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if len(data) > validation.MaxFileSize {
		return nil, validation.ErrFileTooLarge
	}

	return Decompress(data)
}

// Decompress unwraps a gzip or xz layer announced by magic bytes.
// Plain content passes through unchanged.
func Decompress(data []byte) ([]byte, error) {
	var r io.Reader
	switch validation.DetectCompression(data) {
	case validation.CompressionGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case validation.CompressionXZ:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		r = xzr
	default:
		return data, nil
	}

	out, err := io.ReadAll(io.LimitReader(r, validation.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	if len(out) > validation.MaxFileSize {
		return nil, validation.ErrFileTooLarge
	}
	return out, nil
}

// WriteFileAtomic writes data to path through a temp file and rename,
// so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pkgmap-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
