package pdfvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBytes_RejectsNonPDF(t *testing.T) {
	result, err := ValidateBytes([]byte("hello"), ReportLimits)
	require.ErrorIs(t, err, ErrInvalidPDF)
	assert.False(t, result.Valid)
	assert.Equal(t, "missing PDF header", result.Error)
}

func TestValidateBytes_RejectsOversize(t *testing.T) {
	limits := Limits{MaxFileSizeMB: 0, MaxPages: 1, DocumentTypeName: "test"}
	result, err := ValidateBytes([]byte("%PDF-1.4"), limits)
	require.ErrorIs(t, err, ErrInvalidPDF)
	assert.Contains(t, result.Error, "file size")
}

func TestValidateBytes_RejectsTruncated(t *testing.T) {
	result, err := ValidateBytes([]byte("%PDF-1.4\n%garbage"), ReportLimits)
	require.ErrorIs(t, err, ErrInvalidPDF)
	assert.Contains(t, result.Error, "failed to read PDF")
}

func TestSanitizePDF(t *testing.T) {
	in := []byte("%PDF-1.4\nbody\n%%EOF\r\ntrailing junk")
	assert.Equal(t, "%PDF-1.4\nbody\n%%EOF\r\n", string(sanitizePDF(in)))
	assert.Equal(t, "plain", string(sanitizePDF([]byte("plain"))))
}
