// Package textract linearizes tender document bytes into plain text. PDF
// input is extracted page by page; anything else is assumed to already be
// plain text. Scanned-image-only documents yield empty or near-empty text,
// which downstream extraction treats as a degraded mode, not an error.
package textract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrUnreadable is returned when document bytes cannot be interpreted at all.
var ErrUnreadable = errors.New("unreadable document")

var pdfMagic = []byte("%PDF-")

// Result is the linearized form of a document.
type Result struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
}

// Extract linearizes document bytes. PDF content is identified by its magic
// header; all other input is returned verbatim as single-page text. Pages
// whose text extraction fails are skipped rather than failing the document.
func Extract(ctx context.Context, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: empty input", ErrUnreadable)
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		return Result{Text: string(data), PageCount: 1}, nil
	}

	return extractPDF(data)
}

func extractPDF(data []byte) (Result, error) {
	// pdfcpu validates the document structure and is the authority on the
	// page count; ledongthuc handles the text content streams.
	pdfCtx, err := readPDFContext(data)
	if err != nil {
		return Result{}, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	var sb strings.Builder
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return Result{Text: sb.String(), PageCount: pdfCtx.PageCount}, nil
}

// PageCount reports the page count of a PDF document without extracting
// text. Non-PDF input counts as a single page.
func PageCount(data []byte) (int, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return 1, nil
	}

	pdfCtx, err := readPDFContext(data)
	if err != nil {
		return 0, err
	}
	return pdfCtx.PageCount, nil
}

// readPDFContext parses and validates a PDF; the page count is only
// trustworthy after validation.
func readPDFContext(data []byte) (*model.Context, error) {
	pdfCtx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return pdfCtx, nil
}
