package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// BulkService handles user import and export files.
type BulkService struct {
	c *Client
}

// Import uploads a CSV or XLSX user file. The format is taken from
// opts.Format, then from the filename extension.
func (s *BulkService) Import(ctx context.Context, data []byte, opts *ImportOptions) (*ImportResult, error) {
	if opts == nil {
		opts = &ImportOptions{}
	}
	filename := opts.Filename
	if filename == "" {
		filename = "users.csv"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	params := url.Values{}
	params.Set("commit", strconv.FormatBool(opts.Commit))
	if opts.Format != "" {
		params.Set("format", opts.Format)
	}

	body, _, err := s.c.send(ctx, http.MethodPost, withQuery("/api/v1/bulk/users/import", params), &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var res ImportResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &res, nil
}

// Export downloads the tenant's users.
func (s *BulkService) Export(ctx context.Context, opts *ExportOptions) (*File, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Format != "" {
			params.Set("format", opts.Format)
		}
		if opts.OmitHeaders {
			params.Set("headers", "false")
		}
		if len(opts.SelectedFields) > 0 {
			params.Set("fields", strings.Join(opts.SelectedFields, ","))
		}
	}
	return s.download(ctx, withQuery("/api/v1/bulk/users/export", params))
}

// Template downloads the empty CSV import template.
func (s *BulkService) Template(ctx context.Context) (*File, error) {
	return s.download(ctx, "/api/v1/bulk/users/template")
}

func (s *BulkService) download(ctx context.Context, path string) (*File, error) {
	body, header, err := s.c.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	f := &File{ContentType: header.Get("Content-Type"), Data: body}
	if _, params, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil {
		f.Filename = params["filename"]
	}
	return f, nil
}
