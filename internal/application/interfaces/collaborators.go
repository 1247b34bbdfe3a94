package interfaces

import (
	"context"
	"time"

	"stock-tracker-api/internal/domain/entities"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	GenerateToken(user *entities.User) (string, error)
	ParseToken(token string) (*entities.AuthUser, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// ExternalIdentity holds the verified claims of a third-party identity token.
type ExternalIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// IdentityVerifier checks a third-party identity token and returns its verified claims.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*ExternalIdentity, error)
}

// ProfileCache is a best-effort cache of public user profiles.
type ProfileCache interface {
	GetProfile(ctx context.Context, userId uint) (*entities.User, error)
	SetProfile(ctx context.Context, user *entities.User, ttl time.Duration) error
	DeleteProfile(ctx context.Context, userId uint) error
}

// EventPublisher publishes domain events. Implementations must not block on delivery.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type Mailer interface {
	SendWelcome(ctx context.Context, recipientEmail, name string) error
}
