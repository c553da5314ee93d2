package services

import (
	"context"
	"errors"
	"net/mail"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/quantifyme-backend/internal/domain"
	"github.com/tbourn/quantifyme-backend/internal/repo"
)

// UserService manages accounts keyed by normalized email.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService { return &UserService{DB: db} }

// GetOrCreate returns the account for email, creating it on first use.
func (s *UserService) GetOrCreate(ctx context.Context, email string) (*domain.User, bool, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "GetOrCreate")
	defer span.End()

	email = repo.NormalizeEmail(email)
	if a, err := mail.ParseAddress(email); err != nil || a.Address != email {
		return nil, false, ErrInvalidEmail
	}
	u, created, err := repo.GetOrCreateUser(ctx, s.DB, email)
	if err != nil {
		return nil, false, err
	}
	span.SetAttributes(attribute.String("user.id", u.ID), attribute.Bool("user.created", created))
	return u, created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// SetPremium toggles the premium flag.
func (s *UserService) SetPremium(ctx context.Context, id string, premium bool) (*domain.User, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "SetPremium",
		trace.WithAttributes(attribute.String("user.id", id), attribute.Bool("user.premium", premium)),
	)
	defer span.End()

	u, err := repo.SetPremium(ctx, s.DB, id, premium)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}
