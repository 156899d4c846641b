package domain

import "testing"

func TestTokenResponseAccessToken(t *testing.T) {
	tests := []struct {
		name string
		resp TokenResponse
		want string
	}{
		{"jwtToken only", TokenResponse{JWTToken: "t1"}, "t1"},
		{"token only", TokenResponse{Token: "t2"}, "t2"},
		{"both prefers jwtToken", TokenResponse{JWTToken: "t1", Token: "t2"}, "t1"},
		{"neither", TokenResponse{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resp.AccessToken(); got != tc.want {
				t.Errorf("AccessToken() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRegisterRequestWithDefaults(t *testing.T) {
	r := RegisterRequest{Email: "a@b.com"}.WithDefaults()
	if r.Role != DefaultRole {
		t.Errorf("Role = %q, want %q", r.Role, DefaultRole)
	}

	r = RegisterRequest{Role: "ADMIN"}.WithDefaults()
	if r.Role != "ADMIN" {
		t.Errorf("Role = %q, want explicit role kept", r.Role)
	}
}

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{Email: "a@b.com", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{User{Email: "a@b.com", FirstName: "Ada"}, "Ada"},
		{User{Email: "a@b.com"}, "a@b.com"},
	}
	for _, tc := range tests {
		if got := tc.user.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tc.user, got, tc.want)
		}
	}
}
