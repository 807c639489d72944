package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FileType classifies a document by extension. Anything unrecognized is
// treated as plain text.
func FileType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "pdf"
	case ".csv":
		return "csv"
	default:
		return "txt"
	}
}

// PDFPages extracts plain text per page, in page order. Pages that fail text
// extraction come back empty rather than aborting the whole document.
func PDFPages(r io.ReaderAt, size int64) ([]string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("pdf parse failed: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// CSVRows renders each data row as "header: value" lines, one string per row.
// The first record is the header.
func CSVRows(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parse failed: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		var b strings.Builder
		for i, value := range record {
			name := fmt.Sprintf("column_%d", i+1)
			if i < len(header) {
				name = header[i]
			}
			b.WriteString(strings.TrimSpace(name))
			b.WriteString(": ")
			b.WriteString(strings.TrimSpace(value))
			b.WriteString("\n")
		}
		rows = append(rows, strings.TrimRight(b.String(), "\n"))
	}
	return rows, nil
}
