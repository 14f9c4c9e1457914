package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFOptions PDF 版面設定
type PDFOptions struct {
	FontFamily string
	FontSize   float64
	LineHeight float64 // 每行高度 (mm)
	Margin     float64 // 自動換頁的下邊界 (mm)
	Policy     UnsupportedPolicy

	// Uncompressed 關閉內容串流壓縮
	Uncompressed bool
}

// DefaultPDFOptions Arial 11pt、行高 8mm、下邊界 15mm
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		FontFamily: "Arial",
		FontSize:   11,
		LineHeight: 8,
		Margin:     15,
		Policy:     PolicyFail,
	}
}

// RenderPDF 清理、編碼後逐行輸出為 A4 PDF
func RenderPDF(doc Document, opts PDFOptions, s *Sanitizer) ([]byte, error) {
	data, _, err := renderPDF(doc, opts, s)
	return data, err
}

func renderPDF(doc Document, opts PDFOptions, s *Sanitizer) ([]byte, int, error) {
	if s == nil {
		s = NewSanitizer(nil)
	}

	encoded, err := encodeLatin1(s.Sanitize(doc.Body), opts.Policy)
	if err != nil {
		return nil, 0, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	stamp := doc.stamp()
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(!opts.Uncompressed)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	pdf.SetAutoPageBreak(true, opts.Margin)
	pdf.AddPage()
	pdf.SetFont(opts.FontFamily, "", opts.FontSize)

	for _, line := range strings.Split(encoded, "\n") {
		pdf.MultiCell(0, opts.LineHeight, line, "", "", false)
	}

	pages := pdf.PageCount()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("pdf export: %w", err)
	}
	return buf.Bytes(), pages, nil
}
