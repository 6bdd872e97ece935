package bulk

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/persistorai/tenantadmin/internal/models"
)

// utf8BOM prefixes the "CSV UTF-8" files spreadsheet programs save.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses comma-separated content. Quoted cells may contain commas,
// doubled quotes and newlines. Rows may have any number of cells. A leading
// UTF-8 byte order mark is skipped.
func ReadCSV(r io.Reader) (*Sheet, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, models.NewValidationError("file", "malformed CSV at line %d: %v", pe.Line, pe.Err)
		}

		return nil, fmt.Errorf("reading csv: %w", err)
	}

	return newSheet(records)
}

// ReadXLSX parses the first worksheet of a workbook.
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, models.NewValidationError("file", "not a valid xlsx workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, models.ErrInvalidFormat
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	return newSheet(rows)
}

// Read parses src according to its format.
func Read(src models.ImportSource) (*Sheet, error) {
	switch src.Format {
	case "", models.FormatCSV:
		return ReadCSV(bytes.NewReader(src.Data))
	case models.FormatXLSX:
		return ReadXLSX(bytes.NewReader(src.Data))
	default:
		return nil, models.NewValidationError("format", "unsupported import format %q", src.Format)
	}
}
