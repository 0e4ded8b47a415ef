package request

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

const maxIntroductionLength = 1000

var errNotUpdatableHere = errors.New("can not be changed with this request")

// UpdateUserRequest changes profile fields. Email and password are only
// decoded so that a request carrying them can be refused.
type UpdateUserRequest struct {
	FirstName    *string          `json:"first_name"`
	FamilyName   *string          `json:"family_name"`
	Introduction *string          `json:"introduction"`
	IsGuide      *bool            `json:"is_guide"`
	Email        *json.RawMessage `json:"email,omitempty" swaggerignore:"true"`
	Password     *json.RawMessage `json:"password,omitempty" swaggerignore:"true"`
}

func (req *UpdateUserRequest) Validate() error {
	refused := validation.Errors{}
	if req.Email != nil {
		refused["email"] = errNotUpdatableHere
	}
	if req.Password != nil {
		refused["password"] = errNotUpdatableHere
	}
	if len(refused) > 0 {
		return refused
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.RuneLength(0, maxNameLength)),
		validation.Field(&req.FamilyName, validation.RuneLength(0, maxNameLength)),
		validation.Field(&req.Introduction, validation.RuneLength(0, maxIntroductionLength)),
	)
}

func (req *UpdateUserRequest) ToPatch() domain.UserPatch {
	return domain.UserPatch{
		FirstName:    req.FirstName,
		FamilyName:   req.FamilyName,
		Introduction: req.Introduction,
		IsGuide:      req.IsGuide,
	}
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

func (req *UpdateEmailRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, validation.RuneLength(1, maxEmailLength), is.Email),
	)
}
