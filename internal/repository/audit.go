package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/syncura360/api/internal/domain"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create writes outside any caller transaction on purpose. Audit entries
// record attempts, not outcomes, so a rolled-back operation still leaves a
// trace.
func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}
