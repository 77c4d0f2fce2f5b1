package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arcana-edu/tarot-lms-api/internal/dto"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
	"github.com/arcana-edu/tarot-lms-api/internal/repository"
)

// ErrMissingSubject indicates the token carried no usable subject claim.
var ErrMissingSubject = errors.New("identity token subject is required")

// ExternalClaims carries the identity-provider claims the application trusts.
type ExternalClaims struct {
	Subject       string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

// IdentityService resolves externally-issued identities to local user records,
// provisioning a record on first sight.
type IdentityService interface {
	ResolveOrProvision(ctx context.Context, claims ExternalClaims) (dto.UserResponse, error)
}

type identityService struct {
	users  repository.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewIdentityService constructs an IdentityService instance.
func NewIdentityService(users repository.UserRepository, logger zerolog.Logger) IdentityService {
	return &identityService{
		users:  users,
		logger: logger.With().Str("component", "identity_service").Logger(),
		now:    time.Now,
	}
}

// ResolveOrProvision looks up the user by external subject id and creates a
// local record when none exists. The unique index on auth0_id makes the
// first-login race benign: the loser of a concurrent create re-fetches and
// returns the winner's row.
func (s *identityService) ResolveOrProvision(ctx context.Context, claims ExternalClaims) (dto.UserResponse, error) {
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return dto.UserResponse{}, ErrMissingSubject
	}

	user, err := s.users.GetByAuth0ID(ctx, subject)
	if err == nil {
		now := s.now()
		user.LastLoginAt = &now
		if err := s.users.Update(ctx, &user); err != nil {
			return dto.UserResponse{}, err
		}
		return dto.NewUserResponse(user), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	user = s.buildUser(subject, claims)
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, fetchErr := s.users.GetByAuth0ID(ctx, subject)
			if fetchErr != nil {
				return dto.UserResponse{}, fetchErr
			}
			return dto.NewUserResponse(existing), nil
		}
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("subject", subject).Msg("user provisioned")

	return dto.NewUserResponse(user), nil
}

func (s *identityService) buildUser(subject string, claims ExternalClaims) models.User {
	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = strings.TrimSpace(claims.Email)
	}
	if name == "" {
		name = "New User"
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		email = strings.ReplaceAll(subject, "|", ".") + "@placeholder.invalid"
	}

	firstName, lastName := splitName(name)

	now := s.now()
	user := models.User{
		Auth0ID:     &subject,
		Name:        name,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Picture:     claims.Picture,
		Role:        models.RoleStudent,
		IsActive:    true,
		LastLoginAt: &now,
	}

	if claims.EmailVerified {
		user.EmailVerifiedAt = &now
	}

	return user
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
