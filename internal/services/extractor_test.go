package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPagesInOrder(t *testing.T) {
	path := writeTestPDF(t, "Policy Number: 12345", "Grace period: 30 days")

	text, err := NewPDFExtractor().ExtractText(path)
	require.NoError(t, err)

	first := strings.Index(text, "Policy Number: 12345")
	second := strings.Index(text, "Grace period: 30 days")
	require.GreaterOrEqual(t, first, 0, "text: %q", text)
	require.Greater(t, second, first, "pages must appear in document order")
}

func TestExtractTextNoText(t *testing.T) {
	path := writeTestPDF(t, "")

	text, err := NewPDFExtractor().ExtractText(path)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(text))
}

func TestExtractTextInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a pdf"), 0o644))

	truncated := filepath.Join(dir, "truncated.pdf")
	full := buildTestPDF("Policy Number: 12345")
	require.NoError(t, os.WriteFile(truncated, full[:len(full)/2], 0o644))

	for name, path := range map[string]string{
		"garbage":               garbage,
		"truncated":             truncated,
		"missing":               filepath.Join(dir, "missing.pdf"),
		"encrypted":             writeEncryptedPDF(t, "secret"),
		"encrypted no password": writeEncryptedPDF(t, ""),
	} {
		t.Run(name, func(t *testing.T) {
			text, err := NewPDFExtractor().ExtractText(path)
			assert.Error(t, err)
			assert.Empty(t, text)
		})
	}
}

func writeEncryptedPDF(t *testing.T, userPassword string) string {
	t.Helper()
	plain := writeTestPDF(t, "Policy Number: 12345")
	out := filepath.Join(t.TempDir(), "encrypted.pdf")
	require.NoError(t, api.EncryptFile(plain, out, model.NewAESConfiguration(userPassword, "owner", 256)))
	return out
}
