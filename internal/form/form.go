// Package form holds the client-side validation rules for the account forms.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/naveenspark/sesame/pkg/domain"
)

// PasswordSymbols is the set of symbols a password may contain; at least one
// is required.
const PasswordSymbols = "@$!%*?&"

const minPasswordLen = 8

// Errors maps a field name to the message shown under it.
// A nil Errors means the form is valid.
type Errors map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("form: register password rule: %v", err))
	}
	return v
}

// ValidPassword reports whether pw is at least eight characters drawn from
// letters, digits and PasswordSymbols, with at least one lowercase letter,
// one uppercase letter, one digit and one symbol.
func ValidPassword(pw string) bool {
	if len(pw) < minPasswordLen {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r > unicode.MaxASCII:
			return false
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}

// Registration validates an account creation request.
func Registration(req domain.RegisterRequest) Errors {
	return check(req)
}

// Login validates login credentials.
func Login(email, password string) Errors {
	return check(domain.Credentials{Email: strings.TrimSpace(email), Password: password})
}

// Code validates an account validation code.
func Code(code string) Errors {
	if strings.TrimSpace(code) == "" {
		return Errors{"code": "validation code is required"}
	}
	return nil
}

func check(s any) Errors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Errors{"": err.Error()}
	}
	out := make(Errors, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fieldError(fe)
		}
	}
	return out
}

// fieldError converts a single validation failure into a human-readable message.
func fieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "firstName":
		return "first name must be at least 2 characters"
	case "lastName":
		return "last name must be at least 2 characters"
	case "phone":
		return "phone number must be at least 10 digits"
	case "password":
		if fe.Tag() == "required" {
			return "password is required"
		}
		return fmt.Sprintf("password must be at least %d characters with an uppercase letter, a lowercase letter, a digit and one of %s", minPasswordLen, PasswordSymbols)
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
