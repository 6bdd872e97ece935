package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/persistorai/tenantadmin/internal/domain"
	"github.com/persistorai/tenantadmin/internal/models"
	"github.com/persistorai/tenantadmin/internal/store"
)

var _ domain.ReportService = (*ReportService)(nil)

const recentActivityLimit = 5

// ReportService aggregates dashboard figures from the store.
type ReportService struct {
	store *store.Store
}

// NewReportService creates a ReportService.
func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// Summary builds the tenant's dashboard summary. Grouped counts are sorted
// by count descending, then key.
func (s *ReportService) Summary(ctx context.Context, tenantID string) (*models.ReportSummary, error) {
	users, err := s.store.Users.ListUsers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	orgs, err := s.store.Organizations.ListOrganizations(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	roles, err := s.store.Roles.ListRoles(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	privileges, err := s.store.Privileges.ListPrivileges(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing privileges: %w", err)
	}

	entities, err := s.store.LegalEntities.ListLegalEntities(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing legal entities: %w", err)
	}

	recent, _, err := s.store.Audit.QueryAudit(ctx, tenantID, models.AuditFilters{Limit: recentActivityLimit})
	if err != nil {
		return nil, fmt.Errorf("querying recent activity: %w", err)
	}

	sum := &models.ReportSummary{
		TenantID:           tenantID,
		TotalUsers:         len(users),
		TotalOrganizations: len(orgs),
		TotalRoles:         len(roles),
		TotalPrivileges:    len(privileges),
		TotalLegalEntities: len(entities),
		UsersByStatus:      make(map[string]int, len(models.UserStatuses)),
		RecentActivity:     recent,
	}

	for _, st := range models.UserStatuses {
		sum.UsersByStatus[st] = 0
	}

	orgNames := make(map[string]string, len(orgs))
	for _, o := range orgs {
		orgNames[o.ID] = o.Name
	}

	roleNames := make(map[string]string, len(roles))
	for _, r := range roles {
		roleNames[r.ID] = r.Name
	}

	byOrg := map[string]int{}
	byRole := map[string]int{}

	for _, u := range users {
		sum.UsersByStatus[u.Status]++

		if u.Status == models.UserActive {
			sum.ActiveUsers++
		}

		if u.OrganizationID != "" {
			byOrg[u.OrganizationID]++
		}

		for _, r := range u.Roles {
			byRole[r]++
		}
	}

	byCategory := map[string]int{}
	for _, p := range privileges {
		byCategory[p.Category]++
	}

	if sum.TotalUsers > 0 {
		pct := float64(sum.ActiveUsers) * 100 / float64(sum.TotalUsers)
		sum.ActivePercentage = math.Round(pct*10) / 10
	}

	sum.UsersByOrganization = buckets(byOrg, orgNames)
	sum.UsersByRole = buckets(byRole, roleNames)
	sum.PrivilegesByCategory = buckets(byCategory, nil)

	return sum, nil
}

func buckets(counts map[string]int, names map[string]string) []models.CountByKey {
	out := make([]models.CountByKey, 0, len(counts))
	for k, n := range counts {
		name, ok := names[k]
		if !ok {
			name = k
		}

		out = append(out, models.CountByKey{Key: k, Name: name, Count: n})
	}

	slices.SortFunc(out, func(a, b models.CountByKey) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Key, b.Key)
	})

	return out
}
