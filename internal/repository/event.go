package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindActiveByID(ctx context.Context, id uint) (dao.Event, error)
	FindActiveInRange(ctx context.Context, from, to time.Time, limit, offset int) ([]dao.Event, int64, error)
	FindActiveByOrganizer(ctx context.Context, organizerID uint, limit, offset int) ([]dao.Event, int64, error)
	FindJoinedByUser(ctx context.Context, userID uint, limit, offset int) ([]dao.Event, int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Event, error)
	Deactivate(ctx context.Context, id uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Title:       event.Title,
		Description: event.Description,
		OrganizerID: event.OrganizerID,
		Image:       event.Image,
		EventTime:   event.EventTime,
		Address:     event.Address,
		Fee:         event.Fee,
		Status:      string(event.Status),
		IsActive:    true,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) FindActiveByID(ctx context.Context, id uint) (domain.EventDetail, error) {
	found, err := r.dao.FindActiveByID(ctx, id)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("r.dao.FindActiveByID -> %w", err)
	}

	return eventDetailDaoToDomain(found), nil
}

func (r *EventRepository) FindActiveInRange(ctx context.Context, dr domain.DateRange, p domain.Pagination) ([]domain.Event, int64, error) {
	found, total, err := r.dao.FindActiveInRange(ctx, dr.From, dr.To, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindActiveInRange -> %w", err)
	}

	return eventsDaoToDomain(found), total, nil
}

func (r *EventRepository) FindActiveByOrganizer(ctx context.Context, organizerID uint, p domain.Pagination) ([]domain.Event, int64, error) {
	found, total, err := r.dao.FindActiveByOrganizer(ctx, organizerID, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindActiveByOrganizer -> %w", err)
	}

	return eventsDaoToDomain(found), total, nil
}

func (r *EventRepository) FindJoinedByUser(ctx context.Context, userID uint, p domain.Pagination) ([]domain.Event, int64, error) {
	found, total, err := r.dao.FindJoinedByUser(ctx, userID, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindJoinedByUser -> %w", err)
	}

	return eventsDaoToDomain(found), total, nil
}

func (r *EventRepository) Update(ctx context.Context, id uint, patch domain.EventPatch) (domain.EventDetail, error) {
	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.EventTime != nil {
		fields["event_time"] = *patch.EventTime
	}
	if patch.Address != nil {
		fields["address"] = *patch.Address
	}
	if patch.Fee != nil {
		fields["fee"] = *patch.Fee
	}
	if patch.Status != nil {
		fields["status"] = string(*patch.Status)
	}

	return r.update(ctx, id, fields)
}

func (r *EventRepository) UpdateImage(ctx context.Context, id uint, key string) (domain.EventDetail, error) {
	return r.update(ctx, id, map[string]interface{}{"image": key})
}

func (r *EventRepository) update(ctx context.Context, id uint, fields map[string]interface{}) (domain.EventDetail, error) {
	if len(fields) == 0 {
		return r.FindActiveByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventDetailDaoToDomain(updated), nil
}

func (r *EventRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		OrganizerID: e.OrganizerID,
		Image:       e.Image,
		EventTime:   e.EventTime,
		Address:     e.Address,
		Fee:         e.Fee,
		Status:      domain.EventStatus(e.Status),
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func eventDetailDaoToDomain(e dao.Event) domain.EventDetail {
	return domain.EventDetail{
		Event:     eventDaoToDomain(e),
		Organizer: userDaoToDomain(e.Organizer),
	}
}

func eventsDaoToDomain(events []dao.Event) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, eventDaoToDomain(e))
	}

	return out
}
