package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-tracker-api/internal/application/command"
	"stock-tracker-api/internal/application/interfaces"
	"stock-tracker-api/internal/application/services"
	"stock-tracker-api/internal/domain"
	"stock-tracker-api/internal/domain/entities"
	"stock-tracker-api/internal/domain/repositories"
	"stock-tracker-api/internal/infrastructure"
)

func strPtr(s string) *string { return &s }

func requireKind(t *testing.T, err error, kind domain.Kind) *domain.Error {
	t.Helper()
	require.Error(t, err)
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, kind, domainErr.Kind, "unexpected error: %v", err)
	return domainErr
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	registered, err := f.service.Register(ctx, &command.RegisterUserCommand{
		Email:    " Ann@Example.com ",
		Password: "secret1",
		Name:     strPtr("Ann"),
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", registered.Message)
	require.NotNil(t, registered.User)
	assert.Equal(t, "ann@example.com", registered.User.Email)
	assert.Equal(t, "Ann", *registered.User.Name)

	caller, err := f.tokens.ParseToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, caller.Id)
	assert.Equal(t, "ann@example.com", caller.Email)

	loggedIn, err := f.service.Login(ctx, &command.LoginUserCommand{Email: "ANN@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", loggedIn.Message)
	assert.Equal(t, registered.User.Id, loggedIn.User.Id)

	caller, err = f.tokens.ParseToken(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, caller.Id)

	assert.Contains(t, f.events.Subjects(), services.EventUserRegistered)
	require.Eventually(t, func() bool {
		return len(f.mailer.Recipients()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "ann@example.com", f.mailer.Recipients()[0])
}

func TestAuthService_RegisterRejectsInvalidInput(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(context.Background(), &command.RegisterUserCommand{
		Email:    "not-an-email",
		Password: "123",
	})
	domainErr := requireKind(t, err, domain.KindValidation)

	fields := map[string]string{}
	for _, fe := range domainErr.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "Please provide a valid email", fields["email"])
	assert.Contains(t, fields, "password")
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.service.Register(ctx, &command.RegisterUserCommand{Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.service.Register(ctx, &command.RegisterUserCommand{Email: "DUP@example.com", Password: "secret2"})
	domainErr := requireKind(t, err, domain.KindConflict)
	assert.Equal(t, "User already exists", domainErr.Message)
}

func TestAuthService_LoginFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.service.Register(ctx, &command.RegisterUserCommand{Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassword := f.service.Login(ctx, &command.LoginUserCommand{Email: "bob@example.com", Password: "nope"})
	_, unknownEmail := f.service.Login(ctx, &command.LoginUserCommand{Email: "ghost@example.com", Password: "nope"})

	first := requireKind(t, wrongPassword, domain.KindUnauthorized)
	second := requireKind(t, unknownEmail, domain.KindUnauthorized)
	assert.Equal(t, "Invalid credentials", first.Message)
	assert.Equal(t, first.Message, second.Message)
}

func TestAuthService_LoginGoogleOnlyAccount(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.verifier.identities["cred"] = &interfaces.ExternalIdentity{
		Subject: "g-1", Email: "gina@example.com", EmailVerified: true, Name: "Gina",
	}

	_, err := f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{Credential: "cred"})
	require.NoError(t, err)

	_, err = f.service.Login(ctx, &command.LoginUserCommand{Email: "gina@example.com", Password: "whatever"})
	domainErr := requireKind(t, err, domain.KindUnauthorized)
	assert.Equal(t, "This account uses Google sign-in. Please log in with Google.", domainErr.Message)
}

func TestAuthService_GoogleLoginCreatesThenReuses(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.verifier.identities["cred"] = &interfaces.ExternalIdentity{
		Subject: "g-2", Email: "Carl@Example.com", EmailVerified: true, Name: "Carl", Picture: "https://img.example.com/c.png",
	}

	first, err := f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{Credential: "cred"})
	require.NoError(t, err)
	assert.Equal(t, "Google login successful", first.Message)
	assert.Equal(t, "carl@example.com", first.User.Email)
	require.NotNil(t, first.User.Avatar)
	assert.Equal(t, "https://img.example.com/c.png", *first.User.Avatar)

	second, err := f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{Credential: "cred"})
	require.NoError(t, err)
	assert.Equal(t, first.User.Id, second.User.Id)

	created := 0
	for _, s := range f.events.Subjects() {
		if s == services.EventUserGoogleCreated {
			created++
		}
	}
	assert.Equal(t, 1, created)
}

func TestAuthService_GoogleLoginLinksPasswordAccount(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	registered, err := f.service.Register(ctx, &command.RegisterUserCommand{Email: "dana@example.com", Password: "secret1"})
	require.NoError(t, err)

	f.verifier.identities["cred"] = &interfaces.ExternalIdentity{
		Subject: "g-3", Email: "dana@example.com", EmailVerified: true, Name: "Dana G",
	}
	linked, err := f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{Credential: "cred"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, linked.User.Id)
	assert.Equal(t, "Dana G", *linked.User.Name)
	assert.Contains(t, f.events.Subjects(), services.EventUserGoogleLinked)

	stored, err := f.users.FindByEmail(ctx, "dana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsGoogleLinked())

	// The password keeps working after linking.
	_, err = f.service.Login(ctx, &command.LoginUserCommand{Email: "dana@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestAuthService_GoogleLoginDifferentSubjectConflicts(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.verifier.identities["first"] = &interfaces.ExternalIdentity{Subject: "g-4", Email: "eve@example.com", EmailVerified: true}
	f.verifier.identities["second"] = &interfaces.ExternalIdentity{Subject: "g-5", Email: "eve@example.com", EmailVerified: true}

	_, err := f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{Credential: "first"})
	require.NoError(t, err)

	_, err = f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{Credential: "second"})
	requireKind(t, err, domain.KindConflict)
}

func TestAuthService_GoogleLoginRejectedToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{Credential: "forged"})
	domainErr := requireKind(t, err, domain.KindUpstream)
	assert.Equal(t, "Invalid Google token", domainErr.Message)

	_, err = f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{})
	requireKind(t, err, domain.KindValidation)

	f.verifier.identities["unverified"] = &interfaces.ExternalIdentity{Subject: "g-6", Email: "x@example.com"}
	_, err = f.service.LoginWithGoogle(ctx, &command.GoogleLoginCommand{Credential: "unverified"})
	requireKind(t, err, domain.KindUpstream)
}

func TestAuthService_GetProfileUsesCache(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	registered, err := f.service.Register(ctx, &command.RegisterUserCommand{Email: "fay@example.com", Password: "secret1"})
	require.NoError(t, err)

	profile, err := f.service.GetProfile(ctx, registered.User.Id)
	require.NoError(t, err)
	assert.Equal(t, "fay@example.com", profile.User.Email)
	assert.Zero(t, f.cache.hits)

	profile, err = f.service.GetProfile(ctx, registered.User.Id)
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, profile.User.Id)
	assert.Equal(t, 1, f.cache.hits)

	_, err = f.service.GetProfile(ctx, registered.User.Id+1000)
	requireKind(t, err, domain.KindNotFound)
}

func TestAuthService_RegisterPasswordLength(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.service.Register(ctx, &command.RegisterUserCommand{
		Email:    "long@example.com",
		Password: strings.Repeat("a", 80),
	})
	domainErr := requireKind(t, err, domain.KindValidation)
	require.Len(t, domainErr.Fields, 1)
	assert.Equal(t, "password", domainErr.Fields[0].Field)

	password := strings.Repeat("a", 72)
	_, err = f.service.Register(ctx, &command.RegisterUserCommand{Email: "edge@example.com", Password: password})
	require.NoError(t, err)
	_, err = f.service.Login(ctx, &command.LoginUserCommand{Email: "edge@example.com", Password: password})
	assert.NoError(t, err)
}

// lateDuplicateUsers misses on lookup but loses the insert to the unique index,
// as a request does when another registration for the same email commits first.
type lateDuplicateUsers struct {
	repositories.UserRepository
}

func (lateDuplicateUsers) FindByEmail(context.Context, string) (*entities.User, error) {
	return nil, nil
}

func (lateDuplicateUsers) Create(context.Context, *entities.ValidatedUser) (*entities.User, error) {
	return nil, fmt.Errorf("%w: users_email_key", domain.ErrDuplicate)
}

func TestAuthService_RegisterConstraintViolationIsConflict(t *testing.T) {
	events := &recordingPublisher{}
	mailer := &recordingMailer{}
	svc := services.NewAuthService(
		lateDuplicateUsers{},
		infrastructure.NewJWTService(testSecret, infrastructure.DefaultTokenTTL),
		infrastructure.NewBcryptHasher(4),
		&fakeVerifier{},
		nil,
		events,
		mailer,
		time.Minute,
	)

	_, err := svc.Register(context.Background(), &command.RegisterUserCommand{Email: "race@example.com", Password: "secret1"})
	domainErr := requireKind(t, err, domain.KindConflict)
	assert.Equal(t, "User already exists", domainErr.Message)
	assert.Empty(t, events.Subjects())
	assert.Empty(t, mailer.Recipients())
}
