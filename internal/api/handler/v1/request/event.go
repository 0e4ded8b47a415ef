package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 2000
	maxAddressLength     = 255
)

var errInvalidEventStatus = errors.New("must be 0 (private), 1 (public) or 2 (cancel)")

func validEventStatus(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(v) {
		return nil
	}

	if s, ok := v.(string); !ok || !domain.EventStatus(s).Valid() {
		return errInvalidEventStatus
	}

	return nil
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Organizer   uint   `json:"organizer"`
	EventTime   string `json:"event_time" example:"2024-05-01T10:00:00+09:00"`
	Address     string `json:"address"`
	Fee         int    `json:"fee"`
	Status      string `json:"status" enums:"0,1,2"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, maxTitleLength)),
		validation.Field(&req.Description, validation.Required, validation.RuneLength(1, maxDescriptionLength)),
		validation.Field(&req.Organizer, validation.Required),
		validation.Field(&req.EventTime, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&req.Address, validation.Required, validation.RuneLength(1, maxAddressLength)),
		validation.Field(&req.Fee, validation.Min(domain.MinEventFee), validation.Max(domain.MaxEventFee)),
		validation.Field(&req.Status, validation.By(validEventStatus)),
	)
}

// ToDomain must only be called after Validate succeeded.
func (req *CreateEventRequest) ToDomain() domain.Event {
	eventTime, _ := time.Parse(time.RFC3339, req.EventTime)

	return domain.Event{
		Title:       req.Title,
		Description: req.Description,
		OrganizerID: req.Organizer,
		EventTime:   eventTime,
		Address:     req.Address,
		Fee:         req.Fee,
		Status:      domain.EventStatus(req.Status),
		IsActive:    true,
	}
}

// UpdateEventRequest is a partial update; absent keys are left alone.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventTime   *string `json:"event_time"`
	Address     *string `json:"address"`
	Fee         *int    `json:"fee"`
	Status      *string `json:"status"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.RuneLength(1, maxTitleLength)),
		validation.Field(&req.Description, validation.NilOrNotEmpty, validation.RuneLength(1, maxDescriptionLength)),
		validation.Field(&req.EventTime, validation.NilOrNotEmpty, validation.Date(time.RFC3339)),
		validation.Field(&req.Address, validation.NilOrNotEmpty, validation.RuneLength(1, maxAddressLength)),
		validation.Field(&req.Fee, validation.Min(domain.MinEventFee), validation.Max(domain.MaxEventFee)),
		validation.Field(&req.Status, validation.NilOrNotEmpty, validation.By(validEventStatus)),
	)
}

// ToPatch must only be called after Validate succeeded.
func (req *UpdateEventRequest) ToPatch() domain.EventPatch {
	patch := domain.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Fee:         req.Fee,
	}
	if req.EventTime != nil {
		eventTime, _ := time.Parse(time.RFC3339, *req.EventTime)
		patch.EventTime = &eventTime
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		patch.Status = &status
	}

	return patch
}
