package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

// maxImportSize bounds an uploaded user sheet.
const maxImportSize = 10 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BulkHandler serves user import and export endpoints.
type BulkHandler struct {
	svc           BulkService
	log           *logrus.Logger
	importTimeout time.Duration
}

// NewBulkHandler creates a BulkHandler. A zero importTimeout leaves imports
// bounded only by the request context.
func NewBulkHandler(svc BulkService, log *logrus.Logger, importTimeout time.Duration) *BulkHandler {
	return &BulkHandler{svc: svc, log: log, importTimeout: importTimeout}
}

// Import handles POST /api/v1/bulk/users/import. The sheet is either the raw
// request body or the multipart field "file". Rows are only validated unless
// commit=true.
func (h *BulkHandler) Import(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	src, err := readImportSource(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if h.importTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.importTimeout)
		defer cancel()
	}

	opts := models.ImportOptions{Commit: parseBool(c.Query("commit"), false)}

	result, err := h.svc.ImportUsers(ctx, tenantID, src, opts)
	if err != nil {
		respondServiceError(c, h.log, err, "importing users")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":    "user.import",
		"tenant_id": tenantID,
		"commit":    opts.Commit,
		"processed": result.TotalProcessed,
		"errors":    result.ErrorCount,
	}).Info("audit")

	c.JSON(http.StatusOK, result)
}

// Export handles GET /api/v1/bulk/users/export.
func (h *BulkHandler) Export(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	opts := models.ExportOptions{
		Format:         c.Query("format"),
		IncludeHeaders: parseBool(c.Query("headers"), true),
	}

	if fields := c.Query("fields"); fields != "" {
		for f := range strings.SplitSeq(fields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				opts.SelectedFields = append(opts.SelectedFields, f)
			}
		}
	}

	file, err := h.svc.ExportTenantUsers(c.Request.Context(), tenantID, opts)
	if err != nil {
		respondServiceError(c, h.log, err, "exporting users")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "user.export", "tenant_id": tenantID, "format": opts.Format}).Info("audit")

	sendFile(c, file)
}

// Template handles GET /api/v1/bulk/users/template.
func (h *BulkHandler) Template(c *gin.Context) {
	sendFile(c, h.svc.ImportTemplate())
}

func sendFile(c *gin.Context, f *models.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

// readImportSource extracts the uploaded sheet and infers its format from
// the file extension or content type. An explicit format query wins.
func readImportSource(c *gin.Context) (models.ImportSource, error) {
	var (
		data   []byte
		format string
		err    error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, ferr := c.FormFile("file")
		if ferr != nil {
			return models.ImportSource{}, fmt.Errorf("missing upload field \"file\"")
		}

		f, oerr := fh.Open()
		if oerr != nil {
			return models.ImportSource{}, fmt.Errorf("reading upload: %w", oerr)
		}
		defer f.Close()

		data, err = io.ReadAll(io.LimitReader(f, maxImportSize+1))
		if strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
			format = models.FormatXLSX
		}
	} else {
		data, err = io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize+1))
		if c.ContentType() == xlsxContentType {
			format = models.FormatXLSX
		}
	}

	if err != nil {
		return models.ImportSource{}, fmt.Errorf("reading upload: %w", err)
	}

	if len(data) > maxImportSize {
		return models.ImportSource{}, fmt.Errorf("upload exceeds %d bytes", maxImportSize)
	}

	if q := c.Query("format"); q != "" {
		format = q
	}

	if format == "" {
		format = models.FormatCSV
	}

	return models.ImportSource{Format: format, Data: data}, nil
}
