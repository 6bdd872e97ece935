package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/domain"
	"github.com/persistorai/tenantadmin/internal/models"
)

// AuditQueryStore is the data-access interface AuditService depends on.
// It reuses domain.AuditService since the method sets are identical, avoiding duplication.
type AuditQueryStore = domain.AuditService

// Compile-time check: *AuditService must satisfy domain.AuditService.
var _ domain.AuditService = (*AuditService)(nil)

// AuditService wraps AuditQueryStore with filter validation and logging for
// destructive operations.
type AuditService struct {
	store AuditQueryStore
	log   *logrus.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(store AuditQueryStore, log *logrus.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// RecordAudit stores an audit entry (pass-through to store).
func (s *AuditService) RecordAudit(ctx context.Context, tenantID string, entry models.AuditLog) (*models.AuditLog, error) {
	return s.store.RecordAudit(ctx, tenantID, entry)
}

// QueryAudit validates filters and returns matching entries, newest first.
func (s *AuditService) QueryAudit(
	ctx context.Context, tenantID string, filters models.AuditFilters,
) ([]models.AuditLog, bool, error) {
	if err := filters.Validate(); err != nil {
		return nil, false, err
	}

	return s.store.QueryAudit(ctx, tenantID, filters)
}

// PurgeOldEntries deletes audit entries older than retentionDays and logs the result.
func (s *AuditService) PurgeOldEntries(ctx context.Context, tenantID string, retentionDays int) (int, error) {
	if retentionDays < 1 {
		return 0, models.NewValidationError("retention_days", "must be at least 1")
	}

	deleted, err := s.store.PurgeOldEntries(ctx, tenantID, retentionDays)
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id":      tenantID,
		"retention_days": retentionDays,
		"deleted":        deleted,
	}).Info("audit.purge")

	return deleted, nil
}
