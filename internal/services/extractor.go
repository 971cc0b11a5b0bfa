package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor pulls the plain text out of a PDF file.
type PDFExtractor struct {
	conf *model.Configuration
}

func NewPDFExtractor() *PDFExtractor {
	// Cloud Functions has a read-only home directory; keep pdfcpu off it.
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFExtractor{conf: conf}
}

// ExtractText validates the file and returns the text of every page in
// document order, concatenated as produced. An error means the file could not
// be opened or parsed; an empty string with a nil error means it has no text.
// Both PDF libraries can panic on corrupt input; that is reported as an error.
func (e *PDFExtractor) ExtractText(path string) (text string, err error) {
	logCtx := slog.With("path", path)
	logCtx.Info("Extracting text from PDF.")

	defer func() {
		if r := recover(); r != nil {
			logCtx.Error("PDF parser panicked", "panic", r)
			text, err = "", fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	if err := api.ValidateFile(path, e.conf); err != nil {
		logCtx.Error("PDF failed validation", "error", err)
		return "", fmt.Errorf("failed to validate PDF: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		logCtx.Error("Failed to open PDF", "error", err)
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	pageCount := r.NumPage()
	for i := 1; i <= pageCount; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			logCtx.Error("Failed to read page text", "page", i, "error", err)
			return "", fmt.Errorf("failed to read text of page %d: %w", i, err)
		}
		b.WriteString(content)
	}

	logCtx.Info("Extracted text from PDF.", "pageCount", pageCount, "chars", b.Len())
	return b.String(), nil
}
