package entities

// ValidatedUser is a User that satisfied the credential invariant at construction time.
// Repositories only persist validated users.
type ValidatedUser struct {
	*User
}

func NewValidatedUser(user *User) (*ValidatedUser, error) {
	if err := user.validate(); err != nil {
		return nil, err
	}

	return &ValidatedUser{User: user}, nil
}

func (vu *ValidatedUser) GetUser() *User {
	return vu.User
}

func (vu *ValidatedUser) LinkGoogle(googleId string, name, avatarURL *string) error {
	vu.User.LinkGoogle(googleId, name, avatarURL)

	// Re-validate after update
	return vu.User.validate()
}
