package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/quantifyme-backend/internal/domain"
)

// CreateInterpretation stores an interpretation of one entry version.
func CreateInterpretation(ctx context.Context, db *gorm.DB, in *domain.Interpretation) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(in).Error
}

// LatestInterpretation returns the newest interpretation recorded for an
// entry version in the given locale.
func LatestInterpretation(ctx context.Context, db *gorm.DB, entryID, locale string) (*domain.Interpretation, error) {
	var in domain.Interpretation
	err := db.WithContext(ctx).
		Where("entry_id = ? AND locale = ?", entryID, locale).
		Order("created_at DESC").
		First(&in).Error
	if err != nil {
		return nil, err
	}
	return &in, nil
}
