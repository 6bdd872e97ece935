package models

import "slices"

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel" // tab-separated text
	FormatXLSX  = "xlsx"
)

// ExportFormats lists the accepted ExportOptions.Format values.
var ExportFormats = []string{FormatCSV, FormatExcel, FormatXLSX}

// DefaultExportFields is the field selection used when none is given.
var DefaultExportFields = []string{
	"username", "email", "firstName", "lastName",
	"status", "roles", "organizationId", "createdAt",
}

// ExportableFields lists every User field an export may select.
var ExportableFields = []string{
	"id", "username", "email", "firstName", "lastName", "status",
	"roles", "organizationId", "lastLogin", "createdAt", "updatedAt",
}

// MaxImportErrors caps the per-row error details carried in an ImportResult.
const MaxImportErrors = 100

// ExportOptions controls user export.
type ExportOptions struct {
	Format         string   `json:"format"`
	IncludeHeaders bool     `json:"includeHeaders"`
	SelectedFields []string `json:"selectedFields,omitempty"`
}

// Validate applies defaults and rejects unknown formats or fields.
func (o *ExportOptions) Validate() error {
	if o.Format == "" {
		o.Format = FormatCSV
	}

	if err := oneOf("format", o.Format, ExportFormats); err != nil {
		return err
	}

	if len(o.SelectedFields) == 0 {
		o.SelectedFields = slices.Clone(DefaultExportFields)
		return nil
	}

	for _, f := range o.SelectedFields {
		if !slices.Contains(ExportableFields, f) {
			return NewValidationError("selectedFields", "unknown field %q", f)
		}
	}

	return nil
}

// ImportOptions controls user import. Without Commit, rows are only validated.
type ImportOptions struct {
	Commit bool `json:"commit"`
}

// RowError describes one rejected import row. Row counts the header as row 1.
type RowError struct {
	Row   int               `json:"row"`
	Error string            `json:"error"`
	Data  map[string]string `json:"data"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Success         bool       `json:"success"`
	TotalProcessed  int        `json:"totalProcessed"`
	SuccessCount    int        `json:"successCount"`
	ErrorCount      int        `json:"errorCount"`
	Errors          []RowError `json:"errors"`
	ErrorsTruncated bool       `json:"errorsTruncated,omitempty"`
	Created         []string   `json:"created,omitempty"`
}

// AddError records a failed row, keeping at most MaxImportErrors details.
func (r *ImportResult) AddError(row int, msg string, data map[string]string) {
	r.ErrorCount++

	if len(r.Errors) >= MaxImportErrors {
		r.ErrorsTruncated = true
		return
	}

	r.Errors = append(r.Errors, RowError{Row: row, Error: msg, Data: data})
}

// ImportSource is an uploaded user sheet. Format is FormatCSV or FormatXLSX.
type ImportSource struct {
	Format string
	Data   []byte
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
