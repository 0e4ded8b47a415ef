package repository

import (
	"context"
	"fmt"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/repository/dao"
)

var (
	ErrParticipantExists   = dao.ErrParticipantExists
	ErrParticipantNotFound = dao.ErrParticipantNotFound
)

type ParticipantDAO interface {
	Insert(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.Participant, error)
	FindJoinedByEvent(ctx context.Context, eventID uint) ([]dao.Participant, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dao.Participant, error)
	CountJoined(ctx context.Context, eventIDs []uint) (map[uint]int64, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, dao.Participant{
		EventID:  participant.EventID,
		UserID:   participant.UserID,
		Status:   string(domain.ParticipantStatusJoin),
		IsActive: true,
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return participantDaoToDomain(created), nil
}

func (r *ParticipantRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Participant, error) {
	found, err := r.dao.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByEventAndUser -> %w", err)
	}

	return participantDaoToDomain(found), nil
}

func (r *ParticipantRepository) FindJoinedByEvent(ctx context.Context, eventID uint) ([]domain.ParticipantWithUser, error) {
	found, err := r.dao.FindJoinedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindJoinedByEvent -> %w", err)
	}

	out := make([]domain.ParticipantWithUser, 0, len(found))
	for _, p := range found {
		out = append(out, domain.ParticipantWithUser{
			Participant: participantDaoToDomain(p),
			User:        userDaoToDomain(p.User),
		})
	}

	return out, nil
}

func (r *ParticipantRepository) UpdateStatus(ctx context.Context, id uint, status domain.ParticipantStatus) (domain.Participant, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return participantDaoToDomain(updated), nil
}

func (r *ParticipantRepository) CountJoined(ctx context.Context, eventIDs []uint) (map[uint]int64, error) {
	counts, err := r.dao.CountJoined(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountJoined -> %w", err)
	}

	return counts, nil
}

func participantDaoToDomain(p dao.Participant) domain.Participant {
	return domain.Participant{
		ID:        p.ID,
		EventID:   p.EventID,
		UserID:    p.UserID,
		Status:    domain.ParticipantStatus(p.Status),
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
