// Package store holds the tenant-partitioned entity collections.
//
// Each entity type lives in its own collection guarded by a RWMutex; every
// read-modify-write runs under the write lock. Reads return deep copies, so
// callers never share slices with the store. When a Persister is configured,
// every write is mirrored to it before the in-memory copy changes, and Load
// rebuilds the collections from it at startup.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultPersistTimeout = 10 * time.Second

// Collection kinds, used as the persistence partition key.
const (
	KindTenant       = "tenant"
	KindOrganization = "organization"
	KindUser         = "user"
	KindRole         = "role"
	KindPrivilege    = "privilege"
	KindLegalEntity  = "legal_entity"
	KindAudit        = "audit"
)

// Document is one persisted record.
type Document struct {
	TenantID string
	ID       string
	Data     []byte
}

// Persister mirrors committed writes to durable storage.
type Persister interface {
	Put(ctx context.Context, kind, tenantID, id string, doc any) error
	Delete(ctx context.Context, kind, tenantID, id string) error
	LoadAll(ctx context.Context, kind string) ([]Document, error)
}

// Store groups every collection behind one explicitly constructed object.
type Store struct {
	Tenants       *TenantStore
	Organizations *OrganizationStore
	Users         *UserStore
	Roles         *RoleStore
	Privileges    *PrivilegeStore
	LegalEntities *LegalEntityStore
	Audit         *AuditStore

	log *logrus.Logger
}

// New creates an empty Store. persister may be nil for a purely in-memory store.
func New(log *logrus.Logger, persister Persister) *Store {
	return &Store{
		Tenants:       NewTenantStore(persister),
		Organizations: NewOrganizationStore(persister),
		Users:         NewUserStore(persister),
		Roles:         NewRoleStore(persister),
		Privileges:    NewPrivilegeStore(persister),
		LegalEntities: NewLegalEntityStore(persister),
		Audit:         NewAuditStore(persister, log),
		log:           log,
	}
}

// Load rebuilds every collection from the persister. It is a no-op without one.
func (s *Store) Load(ctx context.Context) error {
	loaders := []struct {
		kind string
		load func(context.Context) (int, error)
	}{
		{KindTenant, s.Tenants.c.load},
		{KindOrganization, s.Organizations.c.load},
		{KindUser, s.Users.c.load},
		{KindRole, s.Roles.c.load},
		{KindPrivilege, s.Privileges.c.load},
		{KindLegalEntity, s.LegalEntities.c.load},
		{KindAudit, s.Audit.load},
	}

	for _, l := range loaders {
		n, err := l.load(ctx)
		if err != nil {
			return fmt.Errorf("loading %s records: %w", l.kind, err)
		}

		if n > 0 {
			s.log.WithFields(logrus.Fields{"kind": l.kind, "count": n}).Info("records loaded")
		}
	}

	return nil
}

// withTimeout bounds a single persistence call.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultPersistTimeout)
}

func now() time.Time {
	return time.Now().UTC()
}
