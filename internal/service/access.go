// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/auth"
	"github.com/persistorai/tenantadmin/internal/domain"
	"github.com/persistorai/tenantadmin/internal/models"
	"github.com/persistorai/tenantadmin/internal/store"
)

// Compile-time checks: *AccessService serves every entity interface.
var (
	_ domain.TenantService       = (*AccessService)(nil)
	_ domain.OrganizationService = (*AccessService)(nil)
	_ domain.UserService         = (*AccessService)(nil)
	_ domain.RoleService         = (*AccessService)(nil)
	_ domain.PrivilegeService    = (*AccessService)(nil)
	_ domain.LegalEntityService  = (*AccessService)(nil)
)

// AuditEnqueuer accepts audit jobs without blocking.
type AuditEnqueuer interface {
	Enqueue(job *AuditJob)
}

// EventPublisher fans change events out to subscribers of a tenant.
type EventPublisher interface {
	Publish(tenantID, eventType string, payload any)
}

// AccessService is the only door into the entity store. Every mutation is
// validated, checked for dangling references, audited and published.
type AccessService struct {
	store       *store.Store
	auditWorker AuditEnqueuer
	events      EventPublisher
	log         *logrus.Logger
}

// NewAccessService creates an AccessService. auditWorker and events may be nil.
func NewAccessService(st *store.Store, auditWorker AuditEnqueuer, events EventPublisher, log *logrus.Logger) *AccessService {
	return &AccessService{store: st, auditWorker: auditWorker, events: events, log: log}
}

// auditAsync enqueues an audit entry attributed to the actor in ctx
// (best-effort, non-blocking).
func (s *AccessService) auditAsync(
	ctx context.Context, tenantID, action, resourceType, resourceID, resourceName string, changes []models.Change,
) {
	if s.auditWorker == nil {
		return
	}

	s.auditWorker.Enqueue(&AuditJob{
		TenantID: tenantID,
		Entry:    newAuditEntry(ctx, action, resourceType, resourceID, resourceName, changes),
	})
}

// newAuditEntry stamps an entry with the actor in ctx and the current time.
func newAuditEntry(ctx context.Context, action, resourceType, resourceID, resourceName string, changes []models.Change) models.AuditLog {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		actor = auth.SystemActor
	}

	return models.AuditLog{
		UserID:       actor.UserID,
		UserName:     actor.UserName,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Changes:      changes,
		Timestamp:    time.Now().UTC().Truncate(time.Millisecond),
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	}
}

func (s *AccessService) publish(tenantID, eventType string, payload any) {
	if s.events == nil {
		return
	}

	s.events.Publish(tenantID, eventType, payload)
}

// track appends a Change when a scalar field differs.
func track[T comparable](changes []models.Change, field string, oldV, newV T) []models.Change {
	if oldV == newV {
		return changes
	}

	return append(changes, models.Change{Field: field, OldValue: oldV, NewValue: newV})
}

// trackIDs appends a Change when an id set differs.
func trackIDs(changes []models.Change, field string, oldV, newV []string) []models.Change {
	if slices.Equal(oldV, newV) {
		return changes
	}

	return append(changes, models.Change{Field: field, OldValue: slices.Clone(oldV), NewValue: slices.Clone(newV)})
}

// filterList keeps the items match accepts.
func filterList[E any](items []E, filter models.ListFilter, match func(*E) bool) []E {
	if filter.Empty() {
		return items
	}

	out := make([]E, 0, len(items))
	for i := range items {
		if match(&items[i]) {
			out = append(out, items[i])
		}
	}

	return out
}
