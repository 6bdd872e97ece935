package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
	"github.com/persistorai/tenantadmin/internal/store"
)

func newTestStore(t *testing.T, p store.Persister) *store.Store {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return store.New(log, p)
}

func createUser(t *testing.T, s *store.Store, tenantID, username string) *models.User {
	t.Helper()

	u, err := s.Users.CreateUser(context.Background(), tenantID, models.CreateUserRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "First",
		LastName:  "Last",
		Status:    models.UserActive,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	return u
}

// memPersister records persisted documents and can be told to fail.
type memPersister struct {
	mu      sync.Mutex
	puts    int
	deletes int
	fail    error
	docs    map[string][]store.Document
}

func newMemPersister() *memPersister {
	return &memPersister{docs: make(map[string][]store.Document)}
}

func (m *memPersister) Put(_ context.Context, kind, tenantID, id string, doc any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return m.fail
	}

	m.puts++
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	for i, d := range m.docs[kind] {
		if d.TenantID == tenantID && d.ID == id {
			m.docs[kind][i].Data = data
			return nil
		}
	}

	m.docs[kind] = append(m.docs[kind], store.Document{TenantID: tenantID, ID: id, Data: data})

	return nil
}

func (m *memPersister) Delete(_ context.Context, kind, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return m.fail
	}

	m.deletes++
	for i, d := range m.docs[kind] {
		if d.TenantID == tenantID && d.ID == id {
			m.docs[kind] = append(m.docs[kind][:i], m.docs[kind][i+1:]...)
			break
		}
	}

	return nil
}

func (m *memPersister) LoadAll(_ context.Context, kind string) ([]store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]store.Document(nil), m.docs[kind]...), nil
}

func TestTenantIsolation(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	u := createUser(t, s, "tenant-a", "alice")

	if _, err := s.Users.GetUser(ctx, "tenant-b", u.ID); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("GetUser across tenants: err = %v, want ErrUserNotFound", err)
	}

	users, err := s.Users.ListUsers(ctx, "tenant-b")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}

	if len(users) != 0 {
		t.Errorf("ListUsers(tenant-b) = %d users, want 0", len(users))
	}

	status := models.UserSuspended
	if _, err := s.Users.UpdateUser(ctx, "tenant-b", u.ID, models.UpdateUserRequest{Status: &status}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateUser across tenants: err = %v, want ErrNotFound", err)
	}

	got, err := s.Users.GetUser(ctx, "tenant-a", u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	if got.Status != models.UserActive {
		t.Errorf("Status = %q after cross-tenant update, want unchanged %q", got.Status, models.UserActive)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t, nil)

	var want []string
	for i := range 5 {
		want = append(want, createUser(t, s, "t1", fmt.Sprintf("user%d", i)).ID)
	}

	users, err := s.Users.ListUsers(context.Background(), "t1")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}

	for i, u := range users {
		if u.ID != want[i] {
			t.Errorf("users[%d] = %s, want %s", i, u.ID, want[i])
		}
	}
}

func TestReturnedValuesAreCopies(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	u := createUser(t, s, "t1", "alice")
	if _, _, err := s.Users.AddRole(ctx, "t1", u.ID, "role-1"); err != nil {
		t.Fatalf("AddRole: %v", err)
	}

	got, err := s.Users.GetUser(ctx, "t1", u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	got.Roles[0] = "tampered"

	again, err := s.Users.GetUser(ctx, "t1", u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	if again.Roles[0] != "role-1" {
		t.Errorf("Roles[0] = %q, store state leaked through returned slice", again.Roles[0])
	}
}

func TestUpdateBumpsUpdatedAt(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	u := createUser(t, s, "t1", "alice")
	name := "Alicia"

	updated, err := s.Users.UpdateUser(ctx, "t1", u.ID, models.UpdateUserRequest{FirstName: &name})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if updated.FirstName != name {
		t.Errorf("FirstName = %q, want %q", updated.FirstName, name)
	}

	if updated.UpdatedAt.Before(u.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v < %v", updated.UpdatedAt, u.UpdatedAt)
	}

	if !updated.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("CreatedAt changed on update")
	}

	if updated.TenantID != "t1" {
		t.Errorf("TenantID = %q, want t1", updated.TenantID)
	}
}

func TestRoleToggleIdempotence(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	u := createUser(t, s, "t1", "alice")

	tests := []struct {
		name        string
		op          func() (*models.User, bool, error)
		wantChanged bool
		wantRoles   int
	}{
		{"first assign", func() (*models.User, bool, error) { return s.Users.AddRole(ctx, "t1", u.ID, "role-1") }, true, 1},
		{"repeat assign", func() (*models.User, bool, error) { return s.Users.AddRole(ctx, "t1", u.ID, "role-1") }, false, 1},
		{"remove", func() (*models.User, bool, error) { return s.Users.RemoveRole(ctx, "t1", u.ID, "role-1") }, true, 0},
		{"repeat remove", func() (*models.User, bool, error) { return s.Users.RemoveRole(ctx, "t1", u.ID, "role-1") }, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := tt.op()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}

			if len(got.Roles) != tt.wantRoles {
				t.Errorf("len(Roles) = %d, want %d", len(got.Roles), tt.wantRoles)
			}
		})
	}
}

func TestAddRoleUnknownUser(t *testing.T) {
	s := newTestStore(t, nil)

	_, _, err := s.Users.AddRole(context.Background(), "t1", "user-missing", "role-1")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestConcurrentToggles(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	u := createUser(t, s, "t1", "alice")

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, _ = s.Users.AddRole(ctx, "t1", u.ID, fmt.Sprintf("role-%d", i))
		}(i)
	}
	wg.Wait()

	got, err := s.Users.GetUser(ctx, "t1", u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	if len(got.Roles) != 50 {
		t.Errorf("len(Roles) = %d after 50 concurrent assigns, want 50", len(got.Roles))
	}
}

func TestPrivilegeLinkIdempotence(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	r, err := s.Roles.CreateRole(ctx, "t1", models.CreateRoleRequest{Name: "Editor"})
	if err != nil {
		t.Fatalf("CreateRole: %v", err)
	}

	for range 2 {
		if _, _, err := s.Roles.AddPrivilege(ctx, "t1", r.ID, "priv-1"); err != nil {
			t.Fatalf("AddPrivilege: %v", err)
		}
	}

	got, err := s.Roles.GetRole(ctx, "t1", r.ID)
	if err != nil {
		t.Fatalf("GetRole: %v", err)
	}

	if len(got.Privileges) != 1 {
		t.Errorf("Privileges = %v, want exactly one", got.Privileges)
	}

	_, changed, err := s.Roles.RemovePrivilege(ctx, "t1", r.ID, "priv-unknown")
	if err != nil {
		t.Fatalf("RemovePrivilege: %v", err)
	}

	if changed {
		t.Error("removing an unlinked privilege reported a change")
	}
}

func TestMissingReferences(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	r, err := s.Roles.CreateRole(ctx, "t1", models.CreateRoleRequest{Name: "Viewer"})
	if err != nil {
		t.Fatalf("CreateRole: %v", err)
	}

	if got := s.Roles.MissingRole("t1", []string{r.ID}); got != "" {
		t.Errorf("MissingRole(existing) = %q, want empty", got)
	}

	if got := s.Roles.MissingRole("t1", []string{r.ID, "role-ghost"}); got != "role-ghost" {
		t.Errorf("MissingRole = %q, want role-ghost", got)
	}

	if got := s.Roles.MissingRole("t2", []string{r.ID}); got != r.ID {
		t.Errorf("MissingRole in other tenant = %q, want %q", got, r.ID)
	}
}

func TestOrganizationParentChecks(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	root, err := s.Organizations.CreateOrganization(ctx, "t1", models.CreateOrganizationRequest{
		Name: "Root", Type: models.OrgDivision,
	})
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}

	child, err := s.Organizations.CreateOrganization(ctx, "t1", models.CreateOrganizationRequest{
		Name: "Child", Type: models.OrgTeam, ParentID: root.ID,
	})
	if err != nil {
		t.Fatalf("CreateOrganization child: %v", err)
	}

	tests := []struct {
		name     string
		id       string
		parentID string
	}{
		{"self parent", root.ID, root.ID},
		{"cycle", root.ID, child.ID},
		{"dangling", child.ID, "org-ghost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := tt.parentID
			_, err := s.Organizations.UpdateOrganization(ctx, "t1", tt.id, models.UpdateOrganizationRequest{ParentID: &parent})
			if !models.IsValidation(err) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}

	if _, err := s.Organizations.CreateOrganization(ctx, "t1", models.CreateOrganizationRequest{
		Name: "Orphan", Type: models.OrgTeam, ParentID: "org-ghost",
	}); !models.IsValidation(err) {
		t.Errorf("create with dangling parent: err = %v, want ValidationError", err)
	}

	if n := s.Organizations.CountOrganizations("t1"); n != 2 {
		t.Errorf("CountOrganizations = %d, want 2", n)
	}
}

func TestDeleteOrganization(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	o, err := s.Organizations.CreateOrganization(ctx, "t1", models.CreateOrganizationRequest{Name: "Ops", Type: models.OrgTeam})
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}

	if _, err := s.Organizations.DeleteOrganization(ctx, "t2", o.ID); !errors.Is(err, models.ErrOrganizationNotFound) {
		t.Errorf("delete across tenants: err = %v, want ErrOrganizationNotFound", err)
	}

	if _, err := s.Organizations.DeleteOrganization(ctx, "t1", o.ID); err != nil {
		t.Fatalf("DeleteOrganization: %v", err)
	}

	if _, err := s.Organizations.GetOrganization(ctx, "t1", o.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetOrganization after delete: err = %v, want ErrNotFound", err)
	}
}

func TestPersistFailureLeavesStateUnchanged(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)
	ctx := context.Background()

	u := createUser(t, s, "t1", "alice")

	p.fail = errors.New("disk full")

	if _, _, err := s.Users.AddRole(ctx, "t1", u.ID, "role-1"); err == nil {
		t.Fatal("AddRole succeeded with failing persister")
	}

	if _, err := s.Users.CreateUser(ctx, "t1", models.CreateUserRequest{
		Username: "bob", Email: "bob@example.com", FirstName: "Bob", LastName: "B",
	}); err == nil {
		t.Fatal("CreateUser succeeded with failing persister")
	}

	got, err := s.Users.GetUser(ctx, "t1", u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	if len(got.Roles) != 0 {
		t.Errorf("Roles = %v, want none after failed persist", got.Roles)
	}

	users, _ := s.Users.ListUsers(ctx, "t1")
	if len(users) != 1 {
		t.Errorf("ListUsers = %d users, want 1", len(users))
	}
}

func TestNoChangeSkipsPersist(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)
	ctx := context.Background()

	u := createUser(t, s, "t1", "alice")
	if _, _, err := s.Users.AddRole(ctx, "t1", u.ID, "role-1"); err != nil {
		t.Fatalf("AddRole: %v", err)
	}

	before := p.puts

	if _, _, err := s.Users.AddRole(ctx, "t1", u.ID, "role-1"); err != nil {
		t.Fatalf("AddRole repeat: %v", err)
	}

	if p.puts != before {
		t.Errorf("puts = %d, want %d (no-op must not persist)", p.puts, before)
	}
}

func TestLoadRebuildsFromPersister(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)
	ctx := context.Background()

	a := createUser(t, s, "t1", "alice")
	b := createUser(t, s, "t1", "bob")

	o, err := s.Organizations.CreateOrganization(ctx, "t1", models.CreateOrganizationRequest{Name: "Ops", Type: models.OrgTeam})
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}

	if _, err := s.Organizations.DeleteOrganization(ctx, "t1", o.ID); err != nil {
		t.Fatalf("DeleteOrganization: %v", err)
	}

	reloaded := newTestStore(t, p)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	users, _ := reloaded.Users.ListUsers(ctx, "t1")
	if len(users) != 2 || users[0].ID != a.ID || users[1].ID != b.ID {
		t.Errorf("reloaded users = %+v, want [%s %s]", users, a.ID, b.ID)
	}

	if n := reloaded.Organizations.CountOrganizations("t1"); n != 0 {
		t.Errorf("reloaded organizations = %d, want 0", n)
	}
}

func TestTenantsArePlatformScoped(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	created, err := s.Tenants.CreateTenant(ctx, models.CreateTenantRequest{Name: "Acme", Domain: "acme.example.com"})
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}

	tenants, err := s.Tenants.ListTenants(ctx)
	if err != nil {
		t.Fatalf("ListTenants: %v", err)
	}

	if len(tenants) != 1 || tenants[0].ID != created.ID {
		t.Errorf("ListTenants = %+v, want [%s]", tenants, created.ID)
	}

	if _, err := s.Tenants.GetTenant(ctx, "tenant-ghost"); !errors.Is(err, models.ErrTenantNotFound) {
		t.Errorf("GetTenant(missing): err = %v, want ErrTenantNotFound", err)
	}
}
