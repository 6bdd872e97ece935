package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/domain"
	"github.com/persistorai/tenantadmin/internal/metrics"
	"github.com/persistorai/tenantadmin/internal/models"
)

// Auditor is an alias for the canonical domain.Auditor interface.
type Auditor = domain.Auditor

// AuditJob is a single audit entry waiting to be recorded.
type AuditJob struct {
	TenantID string
	Entry    models.AuditLog
}

// AuditWorker buffers audit entries and writes them via a single worker goroutine.
type AuditWorker struct {
	auditor Auditor
	events  EventPublisher
	log     *logrus.Logger
	jobs    chan *AuditJob
}

// NewAuditWorker creates an AuditWorker with the given queue capacity.
// Recorded entries are published as "audit.create" events when events is non-nil.
func NewAuditWorker(auditor Auditor, events EventPublisher, log *logrus.Logger, queueSize int) *AuditWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}

	return &AuditWorker{
		auditor: auditor,
		events:  events,
		log:     log,
		jobs:    make(chan *AuditJob, queueSize),
	}
}

// Enqueue adds an audit job. Non-blocking; drops the job if the queue is full.
func (w *AuditWorker) Enqueue(job *AuditJob) {
	select {
	case w.jobs <- job:
		metrics.AuditQueueDepth.Set(float64(len(w.jobs)))
	default:
		metrics.AuditEntriesTotal.WithLabelValues("dropped").Inc()
		w.log.WithFields(logrus.Fields{
			"tenant_id": job.TenantID,
			"action":    job.Entry.Action,
			"resource":  job.Entry.ResourceType,
		}).Warn("audit queue full, dropping entry")
	}
}

// Run processes audit jobs until the context is cancelled, then drains remaining jobs.
func (w *AuditWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case job := <-w.jobs:
			w.process(job)
		}
	}
}

func (w *AuditWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.process(job)
		default:
			return
		}
	}
}

func (w *AuditWorker) process(job *AuditJob) {
	metrics.AuditQueueDepth.Set(float64(len(w.jobs)))

	rec, err := w.auditor.RecordAudit(context.Background(), job.TenantID, job.Entry)
	if err != nil {
		metrics.AuditEntriesTotal.WithLabelValues("failed").Inc()
		w.log.WithError(err).WithField("tenant_id", job.TenantID).Warn("audit record failed")

		return
	}

	metrics.AuditEntriesTotal.WithLabelValues("recorded").Inc()

	if w.events != nil {
		w.events.Publish(job.TenantID, "audit.create", rec)
	}
}
