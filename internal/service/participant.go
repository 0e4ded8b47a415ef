package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/repository"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Participant, error)
	FindJoinedByEvent(ctx context.Context, eventID uint) ([]domain.ParticipantWithUser, error)
	UpdateStatus(ctx context.Context, id uint, status domain.ParticipantStatus) (domain.Participant, error)
}

type ParticipantService struct {
	repo   ParticipantRepository
	events EventFinder
}

func NewParticipantService(repo ParticipantRepository, events EventFinder) *ParticipantService {
	return &ParticipantService{
		repo:   repo,
		events: events,
	}
}

// ListParticipants returns the users currently joined to the event.
func (s *ParticipantService) ListParticipants(ctx context.Context, eventID uint) ([]domain.ParticipantWithUser, error) {
	participants, err := s.repo.FindJoinedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindJoinedByEvent -> %w", err)
	}

	return participants, nil
}

// Join records actor as a participant. A user has at most one participant
// row per event; a second join fails with ErrAlreadyParticipating even when
// two requests race, because the insert hits the unique index.
func (s *ParticipantService) Join(ctx context.Context, actor *domain.User, eventID uint) (domain.Participant, error) {
	if !domain.IsAuthenticated(actor) {
		return domain.Participant{}, ErrUnauthenticated
	}

	event, err := s.events.FindActiveByID(ctx, eventID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.events.FindActiveByID -> %w", err)
	}
	if !event.Open() {
		return domain.Participant{}, ErrForbidden
	}

	_, err = s.repo.FindByEventAndUser(ctx, eventID, actor.ID)
	switch {
	case err == nil:
		return domain.Participant{}, ErrAlreadyParticipating
	case !errors.Is(err, repository.ErrParticipantNotFound):
		return domain.Participant{}, fmt.Errorf("s.repo.FindByEventAndUser -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Participant{
		EventID: eventID,
		UserID:  actor.ID,
		Status:  domain.ParticipantStatusJoin,
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// SetStatus switches actor's existing participation between joined and
// cancelled. Re-applying the current status is accepted. Switching back to
// joined needs the event to still be open, cancelling does not.
func (s *ParticipantService) SetStatus(ctx context.Context, actor *domain.User, eventID uint, status domain.ParticipantStatus) (domain.Participant, error) {
	if !domain.IsAuthenticated(actor) {
		return domain.Participant{}, ErrUnauthenticated
	}

	participant, err := s.repo.FindByEventAndUser(ctx, eventID, actor.ID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.FindByEventAndUser -> %w", err)
	}

	if status == domain.ParticipantStatusJoin && !participant.IsJoined() {
		event, err := s.events.FindActiveByID(ctx, eventID)
		if err != nil {
			return domain.Participant{}, fmt.Errorf("s.events.FindActiveByID -> %w", err)
		}
		if !event.Open() {
			return domain.Participant{}, ErrForbidden
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, participant.ID, status)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return updated, nil
}
