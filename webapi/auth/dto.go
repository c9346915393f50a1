package auth

// LoginInput represents the login form body.
type LoginInput struct {
	Document string `json:"document" form:"document" validate:"required,max=18"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

// RegisterInput represents the registration form body. The confirmation field
// keeps the original form's name.
type RegisterInput struct {
	Name            string `json:"name" form:"name" validate:"required,max=255"`
	Document        string `json:"document" form:"document" validate:"required,max=18"`
	Email           string `json:"email" form:"email" validate:"required,email,max=255"`
	Password        string `json:"password" form:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm-password-register" form:"confirm-password-register" validate:"required"`
}
