package pdfvalidation

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Limits bounds what a generated document may look like before it is served or uploaded
type Limits struct {
	MaxFileSizeMB    int
	MaxPages         int
	DocumentTypeName string // for error messages
}

// ReportLimits applies to career-fit reports
var ReportLimits = Limits{
	MaxFileSizeMB:    10,
	MaxPages:         40,
	DocumentTypeName: "career report",
}

// ErrInvalidPDF is returned by ValidateBytes when the content fails a check
var ErrInvalidPDF = errors.New("invalid pdf")

// Result contains the result of PDF validation
type Result struct {
	Valid     bool
	PageCount int
	FileSize  int64
	Error     string
}

// ValidateBytes parses content and checks it against limits. A failed check is reported in
// Result.Error and wrapped in ErrInvalidPDF.
func ValidateBytes(content []byte, limits Limits) (*Result, error) {
	result := &Result{
		FileSize: int64(len(content)),
	}

	fail := func(format string, args ...interface{}) (*Result, error) {
		result.Error = fmt.Sprintf(format, args...)
		return result, fmt.Errorf("%w: %s", ErrInvalidPDF, result.Error)
	}

	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if result.FileSize > maxSize {
		return fail("file size exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
	}

	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return fail("missing PDF header")
	}

	reader, err := open(content)
	if err != nil {
		return fail("failed to read PDF: %v", err)
	}

	result.PageCount = reader.NumPage()

	if result.PageCount == 0 {
		return fail("PDF has no pages")
	}

	if result.PageCount > limits.MaxPages {
		return fail("PDF has %d pages, which exceeds the maximum of %d pages for %s",
			result.PageCount, limits.MaxPages, limits.DocumentTypeName)
	}

	result.Valid = true
	return result, nil
}

// ExtractText returns the plain text of every page, in order
func ExtractText(content []byte) (string, error) {
	reader, err := open(content)
	if err != nil {
		return "", err
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	return buf.String(), nil
}

func open(content []byte) (*pdf.Reader, error) {
	content = sanitizePDF(content)
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return reader, nil
}

// sanitizePDF removes trailing garbage after the last %%EOF marker
func sanitizePDF(content []byte) []byte {
	if len(content) == 0 || !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content
	}

	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)
	if lastEOF == -1 {
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}

	return content[:pdfEnd]
}
