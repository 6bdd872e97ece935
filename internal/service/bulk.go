package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/bulk"
	"github.com/persistorai/tenantadmin/internal/domain"
	"github.com/persistorai/tenantadmin/internal/metrics"
	"github.com/persistorai/tenantadmin/internal/models"
)

var _ domain.BulkService = (*BulkService)(nil)

// Content types of the rendered downloads.
const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeTSV  = "text/tab-separated-values; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// BulkService imports and exports users. Committed rows go through the
// UserService, so they are validated, reference-checked and audited like
// any single create.
type BulkService struct {
	users domain.UserService
	log   *logrus.Logger
}

// NewBulkService creates a BulkService.
func NewBulkService(users domain.UserService, log *logrus.Logger) *BulkService {
	return &BulkService{users: users, log: log}
}

// ImportUsers validates every data row of src. Row problems are collected
// and never abort the batch; only a missing header or an unreadable file
// fails the whole call. With opts.Commit each valid row is also created.
func (s *BulkService) ImportUsers(
	ctx context.Context, tenantID string, src models.ImportSource, opts models.ImportOptions,
) (*models.ImportResult, error) {
	sheet, err := bulk.Read(src)
	if err != nil {
		return nil, err
	}

	res := &models.ImportResult{TotalProcessed: len(sheet.Rows), Errors: []models.RowError{}}

	for _, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("import stopped at row %d: %w", row.Number, err)
		}

		rec := sheet.Record(row)

		if msg := bulk.ValidateRecord(rec); msg != "" {
			res.AddError(row.Number, msg, rec)
			metrics.ImportRowsTotal.WithLabelValues("invalid").Inc()

			continue
		}

		if !opts.Commit {
			res.SuccessCount++
			metrics.ImportRowsTotal.WithLabelValues("valid").Inc()

			continue
		}

		u, err := s.users.CreateUser(ctx, tenantID, bulk.CreateRequest(rec))
		if err != nil {
			res.AddError(row.Number, err.Error(), rec)
			metrics.ImportRowsTotal.WithLabelValues("failed").Inc()

			continue
		}

		res.SuccessCount++
		res.Created = append(res.Created, u.ID)
		metrics.ImportRowsTotal.WithLabelValues("created").Inc()
	}

	res.Success = res.ErrorCount == 0

	s.log.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"format":    src.Format,
		"rows":      res.TotalProcessed,
		"succeeded": res.SuccessCount,
		"failed":    res.ErrorCount,
		"commit":    opts.Commit,
	}).Info("users imported")

	return res, nil
}

// ExportTenantUsers renders every user of the tenant in the requested format.
func (s *BulkService) ExportTenantUsers(
	ctx context.Context, tenantID string, opts models.ExportOptions,
) (*models.ExportFile, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	users, err := s.users.ListUsers(ctx, tenantID, models.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing users for export: %w", err)
	}

	file, err := ExportUsers(users, opts)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"format":    opts.Format,
		"users":     len(users),
	}).Info("users exported")

	return file, nil
}

// ExportUsers renders users. opts must already be validated.
func ExportUsers(users []models.User, opts models.ExportOptions) (*models.ExportFile, error) {
	stamp := time.Now().UTC().Format(time.DateOnly)
	file := &models.ExportFile{}

	switch opts.Format {
	case models.FormatCSV:
		file.Filename = "users-export-" + stamp + ".csv"
		file.ContentType = contentTypeCSV
		file.Data = bulk.WriteCSV(users, opts.SelectedFields, opts.IncludeHeaders)
	case models.FormatExcel:
		file.Filename = "users-export-" + stamp + ".tsv"
		file.ContentType = contentTypeTSV
		file.Data = bulk.WriteTSV(users, opts.SelectedFields, opts.IncludeHeaders)
	case models.FormatXLSX:
		data, err := bulk.WriteXLSX(users, opts.SelectedFields, opts.IncludeHeaders)
		if err != nil {
			return nil, fmt.Errorf("rendering workbook: %w", err)
		}

		file.Filename = "users-export-" + stamp + ".xlsx"
		file.ContentType = contentTypeXLSX
		file.Data = data
	default:
		return nil, models.NewValidationError("format", "unsupported export format %q", opts.Format)
	}

	metrics.ExportsTotal.WithLabelValues(opts.Format).Inc()

	return file, nil
}

// ImportTemplate returns the CSV template operators fill in for import.
func (s *BulkService) ImportTemplate() *models.ExportFile {
	return &models.ExportFile{
		Filename:    "user-import-template.csv",
		ContentType: contentTypeCSV,
		Data:        []byte(bulk.Template),
	}
}
