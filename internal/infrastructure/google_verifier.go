package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"

	"stock-tracker-api/internal/application/interfaces"
)

var errGoogleNotConfigured = errors.New("google sign-in is not configured")

// GoogleVerifier validates Google ID tokens against Google's published keys.
type GoogleVerifier struct {
	clientId  string
	validator *idtoken.Validator
}

func NewGoogleVerifier(ctx context.Context, clientId string) (*GoogleVerifier, error) {
	validator, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("create google token validator: %w", err)
	}
	return &GoogleVerifier{clientId: clientId, validator: validator}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, idToken string) (*interfaces.ExternalIdentity, error) {
	if g.clientId == "" {
		return nil, errGoogleNotConfigured
	}

	payload, err := g.validator.Validate(ctx, idToken, g.clientId)
	if err != nil {
		return nil, err
	}
	return identityFromClaims(payload.Subject, payload.Claims)
}

// identityFromClaims requires a subject and a verified email.
func identityFromClaims(subject string, claims map[string]interface{}) (*interfaces.ExternalIdentity, error) {
	if subject == "" {
		return nil, errors.New("token has no subject")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, errors.New("token has no email claim")
	}

	// Google sends email_verified as a bool, older tokens as a string.
	verified := false
	switch v := claims["email_verified"].(type) {
	case bool:
		verified = v
	case string:
		verified = strings.EqualFold(v, "true")
	}
	if !verified {
		return nil, errors.New("token email is not verified")
	}

	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &interfaces.ExternalIdentity{
		Subject:       subject,
		Email:         email,
		EmailVerified: verified,
		Name:          name,
		Picture:       picture,
	}, nil
}
