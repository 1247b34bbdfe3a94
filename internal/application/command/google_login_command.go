package command

type GoogleLoginCommand struct {
	Credential string `json:"credential" validate:"required"`
}
