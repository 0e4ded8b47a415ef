package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

const (
	// Go's regexp has no lookaheads, hence regexp2.
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

	maxNameLength     = 30
	maxEmailLength    = 255
	maxPasswordLength = 128
)

var passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

var (
	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	FamilyName      string `json:"family_name"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, validation.RuneLength(1, maxEmailLength), is.Email),
		validation.Field(&req.Password, validation.Required, validation.RuneLength(1, maxPasswordLength)),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.FirstName, validation.RuneLength(0, maxNameLength)),
		validation.Field(&req.FamilyName, validation.RuneLength(0, maxNameLength)),
	)
	if err != nil {
		return err
	}

	if ok, _ := passwordExp.MatchString(req.Password); !ok {
		return validation.Errors{"password": errInvalidPassword}
	}

	if req.Password != req.ConfirmPassword {
		return validation.Errors{"confirm_password": errConfirmPasswordMismatch}
	}

	return nil
}

func (req *SignupRequest) ToDomain() domain.User {
	return domain.User{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		FamilyName: req.FamilyName,
		IsActive:   true,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
