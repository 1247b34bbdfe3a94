package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"stock-tracker-api/internal/application/command"
	"stock-tracker-api/internal/application/interfaces"
	"stock-tracker-api/internal/application/mapper"
	"stock-tracker-api/internal/application/query"
	"stock-tracker-api/internal/application/validation"
	"stock-tracker-api/internal/domain"
	"stock-tracker-api/internal/domain/entities"
	"stock-tracker-api/internal/domain/repositories"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUseGoogleSignIn    = "This account uses Google sign-in. Please log in with Google."
	msgInvalidGoogleToken = "Invalid Google token"
	msgUserExists         = "User already exists"

	welcomeMailTimeout = 10 * time.Second
)

type AuthService struct {
	userRepo   repositories.UserRepository
	tokens     interfaces.TokenService
	hasher     interfaces.PasswordHasher
	identity   interfaces.IdentityVerifier
	profiles   interfaces.ProfileCache
	events     interfaces.EventPublisher
	mailer     interfaces.Mailer
	profileTTL time.Duration

	dummyHashOnce sync.Once
	dummyHash     string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens interfaces.TokenService,
	hasher interfaces.PasswordHasher,
	identity interfaces.IdentityVerifier,
	profiles interfaces.ProfileCache,
	events interfaces.EventPublisher,
	mailer interfaces.Mailer,
	profileTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		hasher:     hasher,
		identity:   identity,
		profiles:   profiles,
		events:     events,
		mailer:     mailer,
		profileTTL: profileTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, registerCommand *command.RegisterUserCommand) (*command.AuthCommandResult, error) {
	registerCommand.Email = strings.TrimSpace(registerCommand.Email)
	if err := validation.Struct(registerCommand); err != nil {
		return nil, err
	}
	email := normalizeEmail(registerCommand.Email)

	// Check if user already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("register: find by email: %w", err))
	}
	if existingUser != nil {
		return nil, domain.Conflict(msgUserExists)
	}

	hash, err := s.hasher.Hash(registerCommand.Password)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("register: hash password: %w", err))
	}

	newUser := entities.NewPasswordUser(email, hash, trimmedOrNil(registerCommand.Name))
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("register: %w", err))
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		// A concurrent registration won the unique index.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict(msgUserExists)
		}
		return nil, domain.Internal(fmt.Errorf("register: create user: %w", err))
	}
	if createdUser == nil {
		return nil, domain.Internal(errors.New("register: created user not found"))
	}

	result, err := s.issue(createdUser, "User registered successfully")
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, EventUserRegistered, UserEvent{UserId: createdUser.Id, Email: createdUser.Email})
	s.sendWelcome(createdUser)

	return result, nil
}

func (s *AuthService) Login(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.AuthCommandResult, error) {
	loginCommand.Email = strings.TrimSpace(loginCommand.Email)
	if err := validation.Struct(loginCommand); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(loginCommand.Email))
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("login: find by email: %w", err))
	}
	if user == nil {
		// Spend the same hashing time as a real comparison.
		_ = s.hasher.Compare(s.fallbackHash(), loginCommand.Password)
		return nil, domain.Unauthorized(msgInvalidCredentials)
	}

	if !user.HasPassword() {
		return nil, domain.Unauthorized(msgUseGoogleSignIn)
	}

	if err := s.hasher.Compare(*user.PasswordHash, loginCommand.Password); err != nil {
		return nil, domain.Unauthorized(msgInvalidCredentials)
	}

	return s.issue(user, "Login successful")
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, googleCommand *command.GoogleLoginCommand) (*command.AuthCommandResult, error) {
	if err := validation.Struct(googleCommand); err != nil {
		return nil, err
	}

	identity, err := s.identity.Verify(ctx, googleCommand.Credential)
	if err != nil {
		log.Printf("[auth] google token rejected: %v", err)
		return nil, domain.Upstream(msgInvalidGoogleToken, err)
	}
	if identity.Email == "" || !identity.EmailVerified {
		return nil, domain.Upstream(msgInvalidGoogleToken, errors.New("identity has no verified email"))
	}

	email := normalizeEmail(identity.Email)
	name := trimmedOrNil(&identity.Name)
	avatar := trimmedOrNil(&identity.Picture)

	user, err := s.userRepo.FindByGoogleIdOrEmail(ctx, identity.Subject, email)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("google login: lookup: %w", err))
	}

	switch {
	case user == nil:
		user, err = s.createGoogleUser(ctx, identity.Subject, email, name, avatar)
		if err != nil {
			return nil, err
		}

	case !user.IsGoogleLinked():
		user, err = s.linkGoogleAccount(ctx, user, identity.Subject, name, avatar)
		if err != nil {
			return nil, err
		}

	case *user.GoogleId != identity.Subject:
		return nil, domain.Conflict("Email is linked to a different Google account")
	}

	return s.issue(user, "Google login successful")
}

func (s *AuthService) createGoogleUser(ctx context.Context, googleId, email string, name, avatar *string) (*entities.User, error) {
	validatedUser, err := entities.NewValidatedUser(entities.NewGoogleUser(email, googleId, name, avatar))
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("google login: %w", err))
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if errors.Is(err, domain.ErrDuplicate) {
		// Another request created the account first; use its row.
		createdUser, err = s.userRepo.FindByGoogleIdOrEmail(ctx, googleId, email)
		if err == nil && createdUser == nil {
			err = errors.New("account vanished after duplicate insert")
		}
		if err == nil && (createdUser.GoogleId == nil || *createdUser.GoogleId != googleId) {
			return nil, domain.Conflict(msgUserExists)
		}
	}
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("google login: create user: %w", err))
	}

	publish(ctx, s.events, EventUserGoogleCreated, UserEvent{UserId: createdUser.Id, Email: createdUser.Email})
	return createdUser, nil
}

func (s *AuthService) linkGoogleAccount(ctx context.Context, user *entities.User, googleId string, name, avatar *string) (*entities.User, error) {
	validatedUser, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("google login: %w", err))
	}
	if err := validatedUser.LinkGoogle(googleId, name, avatar); err != nil {
		return nil, domain.Internal(fmt.Errorf("google login: link: %w", err))
	}

	linkedUser, err := s.userRepo.LinkGoogleAccount(ctx, validatedUser)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("Google account is already linked to another user")
		}
		return nil, domain.Internal(fmt.Errorf("google login: link: %w", err))
	}
	if linkedUser == nil {
		return nil, domain.Internal(errors.New("google login: linked user not found"))
	}

	if s.profiles != nil {
		if err := s.profiles.DeleteProfile(ctx, linkedUser.Id); err != nil {
			log.Printf("[auth] failed to evict cached profile %d: %v", linkedUser.Id, err)
		}
	}
	publish(ctx, s.events, EventUserGoogleLinked, UserEvent{UserId: linkedUser.Id, Email: linkedUser.Email})
	return linkedUser, nil
}

// GetProfile reads through the profile cache.
func (s *AuthService) GetProfile(ctx context.Context, userId uint) (*query.UserQueryResult, error) {
	if s.profiles != nil {
		cachedUser, err := s.profiles.GetProfile(ctx, userId)
		if err != nil {
			log.Printf("[auth] profile cache read failed: %v", err)
		}
		if cachedUser != nil {
			return &query.UserQueryResult{User: mapper.NewUserResultFromEntity(cachedUser)}, nil
		}
	}

	user, err := s.userRepo.FindById(ctx, userId)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("profile: find by id: %w", err))
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	if s.profiles != nil {
		if err := s.profiles.SetProfile(ctx, user, s.profileTTL); err != nil {
			log.Printf("[auth] failed to cache user profile: %v", err)
		}
	}

	return &query.UserQueryResult{User: mapper.NewUserResultFromEntity(user)}, nil
}

func (s *AuthService) issue(user *entities.User, message string) (*command.AuthCommandResult, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("issue token: %w", err))
	}
	return &command.AuthCommandResult{
		Message: message,
		Token:   token,
		User:    mapper.NewUserResultFromEntity(user),
	}, nil
}

// sendWelcome mails in the background; failures are only logged.
func (s *AuthService) sendWelcome(user *entities.User) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), welcomeMailTimeout)
		defer cancel()
		if err := s.mailer.SendWelcome(ctx, user.Email, user.DisplayName()); err != nil {
			log.Printf("[auth] welcome mail to user %d failed: %v", user.Id, err)
		}
	}()
}

func (s *AuthService) fallbackHash() string {
	s.dummyHashOnce.Do(func() {
		hash, err := s.hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

var _ interfaces.AuthService = (*AuthService)(nil)
