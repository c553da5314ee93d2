// Package domain defines the persistence models for users, scored daily
// entries, interpretations, and idempotency records. These types are mapped
// with GORM and form the data layer behind the entry store.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// User is an account identified by a normalized email.
//
// Fields:
//   - ID: UUID primary key (char(36)); also the value clients send as X-User-ID.
//   - Email: trimmed, lowercased, unique.
//   - IsPremium: enables live interpretation providers when premium gating is on.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	IsPremium bool      `json:"is_premium" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Entry is one version of a user's self-report for one calendar day, with
// the score computed when it was stored. Rows are append-only: a
// correction inserts Version+1 for the same (UserID, Day) and the highest
// version is the current one.
//
// Fields:
//   - Day: calendar day as YYYY-MM-DD (sorts lexically in date order).
//   - Mood / SleepHours / Stress / Focus: validated raw inputs.
//   - *Score: normalized components in [0,1], stress already inverted.
//   - Composite: Daily Cognitive Score in [0,100].
//   - Weights: snapshot of the weight set the score was computed with.
type Entry struct {
	ID      string `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID  string `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_entries_user_day_version,priority:1;index:idx_entries_user_day,priority:1"`
	Day     string `json:"day"     gorm:"type:char(10);not null;uniqueIndex:ux_entries_user_day_version,priority:2;index:idx_entries_user_day,priority:2"`
	Version int    `json:"version" gorm:"not null;default:1;uniqueIndex:ux_entries_user_day_version,priority:3;check:version >= 1"`

	Mood       float64 `json:"mood"        gorm:"not null"`
	SleepHours float64 `json:"sleep_hours" gorm:"not null"`
	Stress     float64 `json:"stress"      gorm:"not null"`
	Focus      float64 `json:"focus"       gorm:"not null"`

	MoodScore   float64 `json:"mood_score"   gorm:"not null"`
	SleepScore  float64 `json:"sleep_score"  gorm:"not null"`
	StressScore float64 `json:"stress_score" gorm:"not null"`
	FocusScore  float64 `json:"focus_score"  gorm:"not null"`

	Composite float64                                `json:"composite" gorm:"not null;check:composite >= 0 AND composite <= 100"`
	Weights   datatypes.JSONType[map[string]float64] `json:"weights"   swaggertype:"object"`
	ScoredAt  time.Time                              `json:"scored_at" gorm:"not null"`
	CreatedAt time.Time                              `json:"created_at"`
}

// TableName returns the database table name for Entry.
func (Entry) TableName() string { return "entries" }

// Interpretation is a natural-language reading of one entry version.
// Interpretations are cascade-deleted with their entry.
type Interpretation struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	EntryID   string    `json:"entry_id"   gorm:"type:char(36);not null;index"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index:idx_interp_user_day,priority:1"`
	Day       string    `json:"day"        gorm:"type:char(10);not null;index:idx_interp_user_day,priority:2"`
	Provider  string    `json:"provider"   gorm:"type:varchar(32);not null"`
	Locale    string    `json:"locale"     gorm:"type:varchar(8);not null;default:'en'"`
	Text      string    `json:"text"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Entry Entry `json:"-" gorm:"foreignKey:EntryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Interpretation.
func (Interpretation) TableName() string { return "interpretations" }

// Idempotency records the outcome of a processed write keyed by
// (user_id, scope, key), where scope is the route template. A retry with
// the same key replays the original resource instead of writing again.
type Idempotency struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	UserID     string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_idem_user_scope_key,priority:1"`
	Scope      string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idem_user_scope_key,priority:2"`
	Key        string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idem_user_scope_key,priority:3"`
	ResourceID string    `gorm:"type:varchar(64);not null"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
