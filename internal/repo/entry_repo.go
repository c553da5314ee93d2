// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the entry store: an append-only log of
// scored daily entries keyed by (user_id, day, version).
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
//
// Error semantics:
//   - A day with no rows yields ErrNotFound.
//   - Recording a day that already exists yields ErrDuplicate; the stored
//     versions are left untouched.
//   - Other DB errors are propagated as-is.
//
// Range and latest queries only ever return the current (highest) version
// of each day.
package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/quantifyme-backend/internal/domain"
)

// currentVersion restricts a query on entries to the highest version per day.
const currentVersion = "entries.version = (SELECT MAX(e2.version) FROM entries e2 WHERE e2.user_id = entries.user_id AND e2.day = entries.day)"

// CreateEntry records version 1 of a new day. The unique index on
// (user_id, day, version) serializes concurrent submissions: exactly one
// wins and the others get ErrDuplicate.
func CreateEntry(ctx context.Context, db *gorm.DB, e *domain.Entry) error {
	prepare(e)
	e.Version = 1
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// AppendVersion records a correction as version max+1 for (e.UserID, e.Day).
// It returns ErrNotFound if the day has never been recorded and
// ErrDuplicate if a concurrent correction claimed the same version.
func AppendVersion(ctx context.Context, db *gorm.DB, e *domain.Entry) error {
	prepare(e)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var top sql.NullInt64
		if err := tx.Model(&domain.Entry{}).
			Where("user_id = ? AND day = ?", e.UserID, e.Day).
			Select("MAX(version)").
			Row().Scan(&top); err != nil {
			return err
		}
		if !top.Valid {
			return ErrNotFound
		}
		e.Version = int(top.Int64) + 1
		if err := tx.Create(e).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
}

// GetCurrentEntry returns the highest version recorded for (userID, day).
func GetCurrentEntry(ctx context.Context, db *gorm.DB, userID, day string) (*domain.Entry, error) {
	var e domain.Entry
	err := db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("version DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEntryByID returns one stored version by primary key, scoped to userID.
func GetEntryByID(ctx context.Context, db *gorm.DB, userID, id string) (*domain.Entry, error) {
	var e domain.Entry
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListVersions returns every version of a day, oldest first.
func ListVersions(ctx context.Context, db *gorm.DB, userID, day string) ([]domain.Entry, error) {
	var out []domain.Entry
	err := db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("version ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// ListRange returns the current version of each day in [from, to]
// (YYYY-MM-DD, inclusive; an empty bound is open), ordered by day.
func ListRange(ctx context.Context, db *gorm.DB, userID, from, to string, desc bool) ([]domain.Entry, error) {
	q := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(currentVersion)
	if from != "" {
		q = q.Where("day >= ?", from)
	}
	if to != "" {
		q = q.Where("day <= ?", to)
	}
	if desc {
		q = q.Order("day DESC")
	} else {
		q = q.Order("day ASC")
	}
	var out []domain.Entry
	err := q.Find(&out).Error
	return out, err
}

// ListLatest returns the current version of the n most recent days,
// newest first.
func ListLatest(ctx context.Context, db *gorm.DB, userID string, n int) ([]domain.Entry, error) {
	var out []domain.Entry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(currentVersion).
		Order("day DESC").
		Limit(n).
		Find(&out).Error
	return out, err
}

// EntryExists reports whether any version is recorded for (userID, day).
func EntryExists(ctx context.Context, db *gorm.DB, userID, day string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Entry{}).
		Where("user_id = ? AND day = ?", userID, day).
		Count(&n).Error
	return n > 0, err
}

// DeleteDay removes every version of a day and its interpretations. It
// returns the number of entry rows removed, or ErrNotFound if none existed.
func DeleteDay(ctx context.Context, db *gorm.DB, userID, day string) (int64, error) {
	var removed int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND day = ?", userID, day).
			Delete(&domain.Interpretation{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND day = ?", userID, day).Delete(&domain.Entry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func prepare(e *domain.Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
}
