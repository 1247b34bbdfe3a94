package entities

import (
	"errors"
	"strings"
	"time"
)

// User is an account that can authenticate with a password, a Google identity, or both.
type User struct {
	Id           uint
	Email        string
	PasswordHash *string
	GoogleId     *string
	Name         *string
	AvatarURL    *string
	CreatedAt    time.Time
}

func NewPasswordUser(email, passwordHash string, name *string) *User {
	return &User{
		Email:        strings.TrimSpace(email),
		PasswordHash: &passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
	}
}

func NewGoogleUser(email, googleId string, name, avatarURL *string) *User {
	return &User{
		Email:     strings.TrimSpace(email),
		GoogleId:  &googleId,
		Name:      name,
		AvatarURL: avatarURL,
		CreatedAt: time.Now(),
	}
}

func (u *User) validate() error {
	if u.Email == "" {
		return errors.New("email must not be empty")
	}
	if !u.HasPassword() && !u.IsGoogleLinked() {
		return errors.New("user needs a password or a linked Google account")
	}
	return nil
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) IsGoogleLinked() bool {
	return u.GoogleId != nil && *u.GoogleId != ""
}

// LinkGoogle attaches a Google identity and its profile fields. The password hash is left as is.
func (u *User) LinkGoogle(googleId string, name, avatarURL *string) {
	u.GoogleId = &googleId
	if name != nil {
		u.Name = name
	}
	if avatarURL != nil {
		u.AvatarURL = avatarURL
	}
}

// DisplayName returns the name or an empty string.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}
