package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain"
)

type auditStore interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// AuditService writes audit entries asynchronously so request latency never
// pays for the audit insert. Entries are dropped with a warning when the
// buffer is full; auditing is best-effort, not a write-ahead log.
type AuditService struct {
	store   auditStore
	log     *zap.Logger
	entries chan domain.AuditLog

	closeOnce sync.Once
	done      chan struct{}
}

func NewAuditService(store auditStore, log *zap.Logger) *AuditService {
	s := &AuditService{
		store:   store,
		log:     log,
		entries: make(chan domain.AuditLog, 256),
		done:    make(chan struct{}),
	}
	go s.worker()
	return s
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.store.Create(ctx, &entry); err != nil {
			s.log.Warn("audit write failed",
				zap.String("username", entry.Username),
				zap.String("action", string(entry.Action)),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Record enqueues an audit entry without blocking the caller.
func (s *AuditService) Record(entry domain.AuditLog) {
	select {
	case s.entries <- entry:
	default:
		s.log.Warn("audit buffer full, dropping entry",
			zap.String("username", entry.Username),
			zap.String("action", string(entry.Action)),
		)
	}
}

// Close stops accepting entries and waits for the worker to drain.
func (s *AuditService) Close() {
	s.closeOnce.Do(func() {
		close(s.entries)
	})
	<-s.done
}
