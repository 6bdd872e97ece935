// Package seed loads the demo fixture set: two tenants, and for the first
// one an organization tree, users, roles, privileges, legal entities and a
// short audit history. Ids are fixed so the data can be referenced in docs
// and tests.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
	"github.com/persistorai/tenantadmin/internal/store"
)

// DemoTenantID is the tenant the fixtures populate.
const DemoTenantID = "tenant-1"

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return t
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}

	return &t
}

// Load writes the fixtures into st. It is a no-op when DemoTenantID already
// exists, so restarts against a persisted store do not overwrite edits.
// Audit timestamps are relative to now.
func Load(ctx context.Context, st *store.Store, now time.Time, log *logrus.Logger) error {
	if _, err := st.Tenants.GetTenant(ctx, DemoTenantID); err == nil {
		log.Debug("demo data already present")
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("checking demo tenant: %w", err)
	}

	for _, t := range tenants() {
		if err := st.Tenants.PutTenant(ctx, t); err != nil {
			return fmt.Errorf("seeding tenant %s: %w", t.ID, err)
		}
	}

	for _, o := range organizations() {
		if err := st.Organizations.PutOrganization(ctx, o); err != nil {
			return fmt.Errorf("seeding organization %s: %w", o.ID, err)
		}
	}

	for _, p := range privileges() {
		if err := st.Privileges.PutPrivilege(ctx, p); err != nil {
			return fmt.Errorf("seeding privilege %s: %w", p.ID, err)
		}
	}

	for _, r := range roles() {
		if err := st.Roles.PutRole(ctx, r); err != nil {
			return fmt.Errorf("seeding role %s: %w", r.ID, err)
		}
	}

	for _, u := range users() {
		if err := st.Users.PutUser(ctx, u); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.ID, err)
		}
	}

	for _, l := range legalEntities() {
		if err := st.LegalEntities.PutLegalEntity(ctx, l); err != nil {
			return fmt.Errorf("seeding legal entity %s: %w", l.ID, err)
		}
	}

	for _, a := range auditHistory(now) {
		if err := st.Audit.AppendAudit(ctx, a); err != nil {
			return fmt.Errorf("seeding audit entry %s: %w", a.ID, err)
		}
	}

	log.WithField("tenant_id", DemoTenantID).Info("demo data loaded")

	return nil
}

func tenants() []models.Tenant {
	return []models.Tenant{
		{
			ID: DemoTenantID, Name: "Acme Corporation", Description: "Leading technology solutions provider",
			Domain: "acme.com", Status: models.TenantActive,
			Settings:  models.TenantSettings{MaxUsers: 500, Features: []string{"sso", "audit_logs", "custom_roles"}, CustomBranding: true},
			CreatedAt: day("2024-01-15"), UpdatedAt: day("2024-06-01"),
		},
		{
			ID: "tenant-2", Name: "Global Enterprises", Description: "International business solutions",
			Domain: "global-ent.com", Status: models.TenantActive,
			Settings:  models.TenantSettings{MaxUsers: 1000, Features: []string{"sso", "audit_logs", "custom_roles", "api_access"}, CustomBranding: true},
			CreatedAt: day("2024-02-01"), UpdatedAt: day("2024-06-15"),
		},
	}
}

func organizations() []models.Organization {
	return []models.Organization{
		{
			ID: "org-1", Name: "Engineering", Description: "Software development and engineering teams",
			TenantID: DemoTenantID, Type: models.OrgDepartment, Status: "active",
			CreatedAt: day("2024-01-20"), UpdatedAt: day("2024-05-01"),
		},
		{
			ID: "org-2", Name: "Frontend Team", Description: "User interface and experience development",
			TenantID: DemoTenantID, ParentID: "org-1", Type: models.OrgTeam, Status: "active",
			CreatedAt: day("2024-01-25"), UpdatedAt: day("2024-05-01"),
		},
		{
			ID: "org-3", Name: "Marketing", Description: "Marketing and communications department",
			TenantID: DemoTenantID, Type: models.OrgDepartment, Status: "active",
			CreatedAt: day("2024-02-01"), UpdatedAt: day("2024-05-15"),
		},
	}
}

func users() []models.User {
	return []models.User{
		{
			ID: "user-1", Username: "john.doe", Email: "john.doe@acme.com", FirstName: "John", LastName: "Doe",
			TenantID: DemoTenantID, OrganizationID: "org-2", Status: models.UserActive, Roles: []string{"role-2"},
			LastLogin: ts("2024-06-24T10:30:00Z"), CreatedAt: day("2024-01-30"), UpdatedAt: day("2024-06-20"),
		},
		{
			ID: "user-2", Username: "jane.smith", Email: "jane.smith@acme.com", FirstName: "Jane", LastName: "Smith",
			TenantID: DemoTenantID, OrganizationID: "org-1", Status: models.UserActive, Roles: []string{"role-1"},
			LastLogin: ts("2024-06-24T14:15:00Z"), CreatedAt: day("2024-02-05"), UpdatedAt: day("2024-06-22"),
		},
		{
			ID: "user-3", Username: "mike.wilson", Email: "mike.wilson@acme.com", FirstName: "Mike", LastName: "Wilson",
			TenantID: DemoTenantID, OrganizationID: "org-3", Status: models.UserActive, Roles: []string{"role-3"},
			LastLogin: ts("2024-06-23T16:45:00Z"), CreatedAt: day("2024-02-10"), UpdatedAt: day("2024-06-18"),
		},
	}
}

func roles() []models.Role {
	return []models.Role{
		{
			ID: "role-1", Name: "Engineering Manager", Description: "Lead engineering teams and projects",
			TenantID: DemoTenantID, Privileges: []string{"priv-1", "priv-2", "priv-3", "priv-4"},
			CreatedAt: day("2024-01-20"), UpdatedAt: day("2024-05-01"),
		},
		{
			ID: "role-2", Name: "Frontend Developer", Description: "Develop user interfaces and experiences",
			TenantID: DemoTenantID, Privileges: []string{"priv-2", "priv-3"},
			CreatedAt: day("2024-01-25"), UpdatedAt: day("2024-04-15"),
		},
		{
			ID: "role-3", Name: "Marketing Specialist", Description: "Create and execute marketing campaigns",
			TenantID: DemoTenantID, Privileges: []string{"priv-5", "priv-6"},
			CreatedAt: day("2024-02-01"), UpdatedAt: day("2024-05-20"),
		},
	}
}

func privileges() []models.Privilege {
	p := func(id, name, desc, category, created, updated string) models.Privilege {
		return models.Privilege{
			ID: id, Name: name, Description: desc, Category: category, TenantID: DemoTenantID,
			CreatedAt: day(created), UpdatedAt: day(updated),
		}
	}

	return []models.Privilege{
		p("priv-1", "Manage Users", "Create, update, and delete user accounts", "User Management", "2024-01-15", "2024-03-01"),
		p("priv-2", "View Reports", "Access system reports and analytics", "Reporting", "2024-01-15", "2024-03-01"),
		p("priv-3", "Manage Projects", "Create and manage development projects", "Project Management", "2024-01-20", "2024-04-10"),
		p("priv-4", "System Configuration", "Configure system settings and preferences", "System Administration", "2024-01-20", "2024-04-10"),
		p("priv-5", "Manage Campaigns", "Create and manage marketing campaigns", "Marketing", "2024-02-01", "2024-05-01"),
		p("priv-6", "Analytics Access", "Access marketing analytics and metrics", "Marketing", "2024-02-01", "2024-05-01"),
	}
}

func legalEntities() []models.LegalEntity {
	return []models.LegalEntity{
		{
			ID: "legal-1", Name: "Acme Corporation Inc.", Type: models.LegalCorporation,
			RegistrationNumber: "CORP-2024-001", TenantID: DemoTenantID, Status: "active",
			Address: models.Address{
				Street: "123 Business Ave", City: "San Francisco", State: "CA", ZipCode: "94105", Country: "United States",
			},
			CreatedAt: day("2024-01-15"), UpdatedAt: day("2024-05-01"),
		},
		{
			ID: "legal-2", Name: "Acme Subsidiary LLC", Type: models.LegalLLC,
			RegistrationNumber: "LLC-2024-002", TenantID: DemoTenantID, Status: "active",
			Address: models.Address{
				Street: "456 Tech Street", City: "Palo Alto", State: "CA", ZipCode: "94301", Country: "United States",
			},
			CreatedAt: day("2024-03-01"), UpdatedAt: day("2024-05-15"),
		},
	}
}

func auditHistory(now time.Time) []models.AuditLog {
	now = now.UTC().Truncate(time.Millisecond)

	return []models.AuditLog{
		{
			ID: "audit-2", TenantID: DemoTenantID, UserID: "user-2", UserName: "Jane Smith",
			Action: models.ActionCreate, ResourceType: models.ResourceOrganization,
			ResourceID: "org-4", ResourceName: "New Department",
			Timestamp: now.Add(-48 * time.Hour), IPAddress: "192.168.1.2",
		},
		{
			ID: "audit-1", TenantID: DemoTenantID, UserID: "user-1", UserName: "John Doe",
			Action: models.ActionUpdate, ResourceType: models.ResourceUser,
			ResourceID: "user-2", ResourceName: "Jane Smith",
			Changes: []models.Change{
				{Field: "status", OldValue: "inactive", NewValue: "active"},
				{Field: "role", OldValue: "user", NewValue: "admin"},
			},
			Timestamp: now.Add(-24 * time.Hour), IPAddress: "192.168.1.1", UserAgent: "Mozilla/5.0",
		},
		{
			ID: "audit-3", TenantID: DemoTenantID, UserID: "user-1", UserName: "John Doe",
			Action: models.ActionLogin, ResourceType: models.ResourceUser,
			ResourceID: "user-1", ResourceName: "John Doe",
			Timestamp: now.Add(-time.Hour), IPAddress: "192.168.1.1",
		},
	}
}
