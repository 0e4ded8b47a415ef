package service

import (
	"errors"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/repository"
)

var (
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrForbidden       = errors.New("you do not have permission to perform this action")

	ErrUserNotFound        = repository.ErrUserNotFound
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrEventNotFound       = repository.ErrEventNotFound
	ErrCommentNotFound     = repository.ErrCommentNotFound
	ErrParticipantNotFound = repository.ErrParticipantNotFound

	ErrAlreadyParticipating = repository.ErrParticipantExists
	ErrOrganizerMismatch    = errors.New("organizer must be the requesting user")
	ErrWrongPassword        = errors.New("wrong password")

	ErrInvalidDateRange = domain.ErrInvalidDateRange
	ErrPageOutOfRange   = domain.ErrPageOutOfRange
)
