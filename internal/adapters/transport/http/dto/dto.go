package dto

type RegisterDTO struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Mobile   string `json:"mobile"   validate:"required,e164ish"`
	Password string `json:"password" validate:"required"`
}

// Login and forgot-password validate presence only: a present-but-bogus
// email must fall through to the generic credential/reset responses, not
// to a format error the caller could probe with.
type LoginDTO struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" validate:"required"`
}

// VerifyTokenDTO carries a body-supplied token; a bearer Authorization
// header takes precedence when both are present.
type VerifyTokenDTO struct {
	Token string `json:"token" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
