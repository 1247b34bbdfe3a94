package common

// UserResult is the public view of a user.
type UserResult struct {
	Id     uint    `json:"id"`
	Email  string  `json:"email"`
	Name   *string `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}
