package client

import (
	"context"
	"net/url"
)

// TenantService reads tenants.
type TenantService struct {
	c *Client
}

// List returns all tenants matching opts.
func (s *TenantService) List(ctx context.Context, opts *ListOptions) ([]Tenant, error) {
	var resp listResponse[Tenant]
	if err := s.c.get(ctx, "/api/v1/tenants", listParams(opts), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Get returns a single tenant by ID.
func (s *TenantService) Get(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	if err := s.c.get(ctx, "/api/v1/tenants/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// OrganizationService reads and deletes organizations.
type OrganizationService struct {
	c *Client
}

// List returns the tenant's organizations matching opts.
func (s *OrganizationService) List(ctx context.Context, opts *ListOptions) ([]Organization, error) {
	var resp listResponse[Organization]
	if err := s.c.get(ctx, "/api/v1/organizations", listParams(opts), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Get returns a single organization by ID.
func (s *OrganizationService) Get(ctx context.Context, id string) (*Organization, error) {
	var o Organization
	if err := s.c.get(ctx, "/api/v1/organizations/"+url.PathEscape(id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Delete removes an organization. It fails while users or child
// organizations still reference it.
func (s *OrganizationService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/organizations/"+url.PathEscape(id), nil, nil)
}

// PrivilegeService reads privileges.
type PrivilegeService struct {
	c *Client
}

// List returns the tenant's privileges. opts.Status filters by category.
func (s *PrivilegeService) List(ctx context.Context, opts *ListOptions) ([]Privilege, error) {
	params := listParams(opts)
	if cat := params.Get("status"); cat != "" {
		params.Del("status")
		params.Set("category", cat)
	}
	var resp listResponse[Privilege]
	if err := s.c.get(ctx, "/api/v1/privileges", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// LegalEntityService reads legal entities.
type LegalEntityService struct {
	c *Client
}

// List returns the tenant's legal entities matching opts.
func (s *LegalEntityService) List(ctx context.Context, opts *ListOptions) ([]LegalEntity, error) {
	var resp listResponse[LegalEntity]
	if err := s.c.get(ctx, "/api/v1/legal-entities", listParams(opts), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ReportService reads aggregate reports.
type ReportService struct {
	c *Client
}

// Summary returns the tenant's directory summary.
func (s *ReportService) Summary(ctx context.Context) (*ReportSummary, error) {
	var r ReportSummary
	if err := s.c.get(ctx, "/api/v1/reports/summary", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
