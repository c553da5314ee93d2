package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/quantifyme-backend/internal/domain"
)

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetOrCreateUser returns the user with the given (normalized) email,
// creating it if needed. created reports whether a row was inserted.
func GetOrCreateUser(ctx context.Context, db *gorm.DB, email string) (u *domain.User, created bool, err error) {
	email = NormalizeEmail(email)
	if u, err = GetUserByEmail(ctx, db, email); err == nil {
		return u, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	u = &domain.User{ID: uuid.NewString(), Email: email, CreatedAt: now, UpdatedAt: now}
	if err = db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			// lost a race with a concurrent create
			u, err = GetUserByEmail(ctx, db, email)
			return u, false, err
		}
		return nil, false, err
	}
	return u, true, nil
}

// GetUser fetches a user by ID.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches a user by normalized email.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SetPremium updates the premium flag and returns the updated user.
func SetPremium(ctx context.Context, db *gorm.DB, id string, premium bool) (*domain.User, error) {
	res := db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_premium": premium, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetUser(ctx, db, id)
}
