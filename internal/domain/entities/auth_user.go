package entities

// AuthUser is the identity carried by a verified bearer token.
// It is only built by the token verifier, never from request input.
type AuthUser struct {
	Id    uint
	Email string
}
