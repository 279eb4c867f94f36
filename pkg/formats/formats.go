// Package formats provides parsers for triangle mesh interchange formats.
package formats

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension is not a
// known mesh format.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Format identifies a mesh file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatSTL
	FormatOBJ
)

// String returns the conventional extension-style name.
func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "stl"
	case FormatOBJ:
		return "obj"
	default:
		return "unknown"
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return FormatSTL
	case ".obj":
		return FormatOBJ
	default:
		return FormatUnknown
	}
}

// SupportedExtensions lists extensions accepted by DetectFormat, without dots.
func SupportedExtensions() []string {
	return []string{"stl", "obj"}
}

// readNullString returns data up to the first NUL byte.
func readNullString(data []byte) string {
	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		return string(data[:idx])
	}
	return string(data)
}
