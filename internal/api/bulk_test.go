package api_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/persistorai/tenantadmin/internal/api"
	"github.com/persistorai/tenantadmin/internal/models"
)

type capturedImport struct {
	src  models.ImportSource
	opts models.ImportOptions
}

func bulkRouter(svc *mockBulkService) http.Handler {
	r := newTestRouter()
	h := api.NewBulkHandler(svc, testLogger(), 0)
	r.POST("/import", h.Import)
	r.GET("/export", h.Export)
	r.GET("/template", h.Template)

	return r
}

func capturingBulk(got *capturedImport) *mockBulkService {
	return &mockBulkService{
		importFn: func(_ context.Context, _ string, src models.ImportSource, opts models.ImportOptions) (*models.ImportResult, error) {
			got.src, got.opts = src, opts
			return &models.ImportResult{Success: true, TotalProcessed: 1, SuccessCount: 1}, nil
		},
	}
}

func TestBulkImport_RawCSVBody(t *testing.T) {
	t.Parallel()

	var got capturedImport

	body := "username,email,firstName,lastName\njd,jd@x.com,J,D\n"
	req := httptest.NewRequest(http.MethodPost, "/import?commit=true", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")

	w := httptest.NewRecorder()
	bulkRouter(capturingBulk(&got)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if got.src.Format != models.FormatCSV || string(got.src.Data) != body {
		t.Errorf("source = %q %q", got.src.Format, got.src.Data)
	}

	if !got.opts.Commit {
		t.Error("commit=true not passed through")
	}
}

func TestBulkImport_MultipartXLSX(t *testing.T) {
	t.Parallel()

	var got capturedImport

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "users.XLSX")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}

	if _, err := fw.Write([]byte("PK-not-really")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	bulkRouter(capturingBulk(&got)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if got.src.Format != models.FormatXLSX || string(got.src.Data) != "PK-not-really" {
		t.Errorf("source = %q %q", got.src.Format, got.src.Data)
	}

	if got.opts.Commit {
		t.Error("commit defaulted to true")
	}
}

func TestBulkImport_MissingFileField(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("other", "x")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	bulkRouter(&mockBulkService{}).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBulkImport_InvalidFormatIs400(t *testing.T) {
	t.Parallel()

	svc := &mockBulkService{
		importFn: func(context.Context, string, models.ImportSource, models.ImportOptions) (*models.ImportResult, error) {
			return nil, models.ErrInvalidFormat
		},
	}

	w := doRequestWith(bulkRouter(svc), http.MethodPost, "/import", "\n\n", map[string]string{"Content-Type": "text/csv"})

	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), api.ErrCodeInvalidFormat) {
		t.Fatalf("expected 400 invalid_format, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBulkExport_OptionsAndDownload(t *testing.T) {
	t.Parallel()

	var got models.ExportOptions

	svc := &mockBulkService{
		exportFn: func(_ context.Context, _ string, opts models.ExportOptions) (*models.ExportFile, error) {
			got = opts
			return &models.ExportFile{Filename: "users-export-2024-06-24.tsv", ContentType: "text/tab-separated-values", Data: []byte("a\tb")}, nil
		},
	}

	w := doRequest(bulkRouter(svc), http.MethodGet, "/export?format=excel&headers=false&fields=username,%20email,,", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if got.Format != models.FormatExcel || got.IncludeHeaders || !slices.Equal(got.SelectedFields, []string{"username", "email"}) {
		t.Errorf("options = %+v", got)
	}

	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="users-export-2024-06-24.tsv"` {
		t.Errorf("Content-Disposition = %q", cd)
	}

	if w.Body.String() != "a\tb" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestBulkExport_HeadersDefaultOn(t *testing.T) {
	t.Parallel()

	var got models.ExportOptions

	svc := &mockBulkService{
		exportFn: func(_ context.Context, _ string, opts models.ExportOptions) (*models.ExportFile, error) {
			got = opts
			return &models.ExportFile{Filename: "x.csv", ContentType: "text/csv"}, nil
		},
	}

	doRequest(bulkRouter(svc), http.MethodGet, "/export", "")

	if !got.IncludeHeaders || got.Format != "" {
		t.Errorf("options = %+v, want headers on and format left to the service", got)
	}
}

func TestBulkTemplate(t *testing.T) {
	t.Parallel()

	svc := &mockBulkService{
		templateFn: func() *models.ExportFile {
			return &models.ExportFile{Filename: "user-import-template.csv", ContentType: "text/csv", Data: []byte("username\n")}
		},
	}

	w := doRequest(bulkRouter(svc), http.MethodGet, "/template", "")

	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Disposition"), "user-import-template.csv") {
		t.Fatalf("template response = %d %v", w.Code, w.Header())
	}
}
