package domain

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	FirstName      string `json:"firstName" validate:"min=2"`
	LastName       string `json:"lastName" validate:"min=2"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"password"`
	Phone          string `json:"phone" validate:"min=10"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Role           string `json:"roleTypes"`
}

// WithDefaults returns a copy of r with an empty Role set to DefaultRole.
func (r RegisterRequest) WithDefaults() RegisterRequest {
	if r.Role == "" {
		r.Role = DefaultRole
	}
	return r
}

// Credentials is the payload for exchanging email and password for a token.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the body returned by the token endpoint.
// Servers have used both "jwtToken" and "token" for the credential.
type TokenResponse struct {
	JWTToken string `json:"jwtToken,omitempty"`
	Token    string `json:"token,omitempty"`
	User     *User  `json:"user,omitempty"`
}

// AccessToken returns the bearer token, preferring jwtToken over token.
func (t TokenResponse) AccessToken() string {
	if t.JWTToken != "" {
		return t.JWTToken
	}
	return t.Token
}
