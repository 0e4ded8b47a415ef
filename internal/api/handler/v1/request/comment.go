package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

func (req *CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Comment, validation.Required, validation.RuneLength(1, domain.MaxCommentLength)),
	)
}
