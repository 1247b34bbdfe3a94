package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stock-tracker-api/internal/application/interfaces"
	"stock-tracker-api/internal/application/services"
	"stock-tracker-api/internal/domain/entities"
	"stock-tracker-api/internal/domain/repositories"
	"stock-tracker-api/internal/infrastructure"
	"stock-tracker-api/internal/infrastructure/db/dbtest"
	"stock-tracker-api/internal/infrastructure/db/postgres"
)

const testSecret = "test-secret-for-services-0123456789"

type fakeVerifier struct {
	identities map[string]*interfaces.ExternalIdentity
}

func (f *fakeVerifier) Verify(_ context.Context, idToken string) (*interfaces.ExternalIdentity, error) {
	identity, ok := f.identities[idToken]
	if !ok {
		return nil, errors.New("token rejected")
	}
	return identity, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *recordingPublisher) Subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.subjects...)
}

type recordingMailer struct {
	mu         sync.Mutex
	recipients []string
}

func (m *recordingMailer) SendWelcome(_ context.Context, recipientEmail, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipients = append(m.recipients, recipientEmail)
	return nil
}

func (m *recordingMailer) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recipients...)
}

type memoryProfileCache struct {
	mu       sync.Mutex
	profiles map[uint]entities.User
	hits     int
}

func newMemoryProfileCache() *memoryProfileCache {
	return &memoryProfileCache{profiles: make(map[uint]entities.User)}
}

func (c *memoryProfileCache) GetProfile(_ context.Context, userId uint) (*entities.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.profiles[userId]
	if !ok {
		return nil, nil
	}
	c.hits++
	return &u, nil
}

func (c *memoryProfileCache) SetProfile(_ context.Context, user *entities.User, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[user.Id] = *user
	return nil
}

func (c *memoryProfileCache) DeleteProfile(_ context.Context, userId uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.profiles, userId)
	return nil
}

type authFixture struct {
	service  *services.AuthService
	users    repositories.UserRepository
	tokens   *infrastructure.JWTService
	verifier *fakeVerifier
	events   *recordingPublisher
	mailer   *recordingMailer
	cache    *memoryProfileCache
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userRepo := postgres.NewUserRepository(dbtest.Open(t))
	f := &authFixture{
		users:    userRepo,
		tokens:   infrastructure.NewJWTService(testSecret, infrastructure.DefaultTokenTTL),
		verifier: &fakeVerifier{identities: map[string]*interfaces.ExternalIdentity{}},
		events:   &recordingPublisher{},
		mailer:   &recordingMailer{},
		cache:    newMemoryProfileCache(),
	}
	f.service = services.NewAuthService(
		userRepo,
		f.tokens,
		infrastructure.NewBcryptHasher(bcrypt.MinCost),
		f.verifier,
		f.cache,
		f.events,
		f.mailer,
		time.Minute,
	)
	return f
}
