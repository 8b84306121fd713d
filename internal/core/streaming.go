package core

// streaming.go reads an uploaded question file into memory.
//
// Question files are small, and the whole tokenize-validate-map pipeline
// needs the complete text, so the file is read in one go. The reader stack
// still guards against the usual CSV artifacts:
//
//   - bomSkippingReader: Removes the UTF-8 BOM (0xEF 0xBB 0xBF) from Windows files
//   - Invalid UTF-8 is replaced with U+FFFD after reading
//   - io.LimitReader caps the bytes read at limit+1 to detect oversize files

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize caps question files when no limit is configured (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

var (
	// ErrFileTooLarge is returned when a file exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyFile is returned for a file with no content.
	ErrEmptyFile = errors.New("empty file")

	// ErrInvalidFileType is returned for uploads that are not CSV files.
	ErrInvalidFileType = errors.New("invalid file type: please upload a CSV file")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// bomSkippingReader drops a leading UTF-8 BOM.
type bomSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{r: bufio.NewReader(r)}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (b *bomSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head, err := b.r.Peek(len(utf8BOM))
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return 0, err
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := b.r.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// ReadSource reads an uploaded question file and returns its text.
// A non-positive limit uses DefaultMaxFileSize.
func ReadSource(r io.Reader, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	data, err := io.ReadAll(io.LimitReader(newBOMSkippingReader(r), limit+1))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, limit)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ErrEmptyFile
	}

	return strings.ToValidUTF8(string(data), "�"), nil
}

// CheckFileType accepts files named *.csv or sent as text/csv.
func CheckFileType(fileName, contentType string) error {
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return nil
	}
	if mediaType, _, _ := strings.Cut(contentType, ";"); strings.TrimSpace(mediaType) == "text/csv" {
		return nil
	}
	return ErrInvalidFileType
}
