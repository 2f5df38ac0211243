// Package extractor converts uploaded documents into plain text.
//
// Supported extensions are .pdf, .docx, .doc and .txt. Legacy .doc files are
// read with the DOCX reader, so only Word files saved in the OOXML container
// succeed; binary .doc payloads fail with an *ExtractionError.
package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrFileNotFound is returned by Extract when the path does not exist.
var ErrFileNotFound = errors.New("file not found")

// UnsupportedFormatError reports an extension outside the allow-list.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Ext)
}

// ExtractionError reports a read or parse failure for a supported format.
type ExtractionError struct {
	Ext string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("error processing %s file: %v", e.Ext, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

var supported = []string{".pdf", ".docx", ".doc", ".txt"}

// SupportedExtensions returns the allow-list in lowercase with leading dots.
func SupportedExtensions() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// Ext returns the lowercased extension of name, including the dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsSupported reports whether the extension of path is on the allow-list.
func IsSupported(path string) bool {
	return isSupportedExt(Ext(path))
}

func isSupportedExt(ext string) bool {
	for _, s := range supported {
		if s == ext {
			return true
		}
	}
	return false
}

// Extract reads the file at path and returns its text content.
func Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	ext := Ext(path)
	if !isSupportedExt(ext) {
		return "", &UnsupportedFormatError{Ext: ext}
	}
	if err != nil {
		return "", &ExtractionError{Ext: ext, Err: err}
	}
	return ExtractBytes(data, ext)
}

// ExtractBytes extracts text from an in-memory payload. ext selects the parser
// and is matched case-insensitively, with or without the leading dot.
func ExtractBytes(data []byte, ext string) (text string, err error) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if !isSupportedExt(ext) {
		return "", &UnsupportedFormatError{Ext: ext}
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Ext: ext, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx", ".doc":
		text, err = extractDOCX(data)
	default:
		text, err = extractTXT(data)
	}
	if err != nil {
		return "", &ExtractionError{Ext: ext, Err: err}
	}
	return strings.TrimSpace(stripNUL(text)), nil
}

// stripNUL drops NUL characters, which Postgres text columns reject.
func stripNUL(s string) string {
	if strings.IndexByte(s, 0) < 0 {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("content is not valid UTF-8")
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}
