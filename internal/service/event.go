package service

import (
	"context"
	"fmt"
	"time"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/storage"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindActiveByID(ctx context.Context, id uint) (domain.EventDetail, error)
	FindActiveInRange(ctx context.Context, dr domain.DateRange, p domain.Pagination) ([]domain.Event, int64, error)
	FindActiveByOrganizer(ctx context.Context, organizerID uint, p domain.Pagination) ([]domain.Event, int64, error)
	FindJoinedByUser(ctx context.Context, userID uint, p domain.Pagination) ([]domain.Event, int64, error)
	Update(ctx context.Context, id uint, patch domain.EventPatch) (domain.EventDetail, error)
	UpdateImage(ctx context.Context, id uint, key string) (domain.EventDetail, error)
	Deactivate(ctx context.Context, id uint) error
}

type ParticipantCounter interface {
	CountJoined(ctx context.Context, eventIDs []uint) (map[uint]int64, error)
}

type UserFinder interface {
	FindActiveByID(ctx context.Context, id uint) (domain.User, error)
}

type EventService struct {
	repo         EventRepository
	participants ParticipantCounter
	users        UserFinder
	store        ImageStore
	loc          *time.Location
}

// NewEventService builds the service. loc is the zone list date ranges are
// interpreted in.
func NewEventService(repo EventRepository, participants ParticipantCounter, users UserFinder, store ImageStore, loc *time.Location) *EventService {
	if loc == nil {
		loc = time.UTC
	}

	return &EventService{
		repo:         repo,
		participants: participants,
		users:        users,
		store:        store,
		loc:          loc,
	}
}

// ListEvents pages through active events held between start and end, both
// YYYY-MM-DD and inclusive.
func (s *EventService) ListEvents(ctx context.Context, start, end string, p domain.Pagination) (domain.Page[domain.EventSummary], error) {
	dr, err := domain.NewDateRange(start, end, s.loc)
	if err != nil {
		return domain.Page[domain.EventSummary]{}, err
	}

	events, total, err := s.repo.FindActiveInRange(ctx, dr, p)
	if err != nil {
		return domain.Page[domain.EventSummary]{}, fmt.Errorf("s.repo.FindActiveInRange -> %w", err)
	}

	return s.summarize(ctx, events, total, p)
}

func (s *EventService) CreateEvent(ctx context.Context, actor *domain.User, organizerID uint, event domain.Event) (domain.EventDetail, error) {
	if !domain.IsAuthenticated(actor) {
		return domain.EventDetail{}, ErrUnauthenticated
	}
	if !domain.IsGuide(actor) {
		return domain.EventDetail{}, ErrForbidden
	}
	if organizerID != actor.ID {
		return domain.EventDetail{}, ErrOrganizerMismatch
	}

	event.OrganizerID = actor.ID
	if event.Status == "" {
		event.Status = domain.EventStatusPrivate
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return domain.EventDetail{Event: created, Organizer: *actor}, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.EventDetail, error) {
	event, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.repo.FindActiveByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, actor *domain.User, id uint, patch domain.EventPatch) (domain.EventDetail, error) {
	if _, err := s.ownedEvent(ctx, actor, id); err != nil {
		return domain.EventDetail{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteEvent deactivates the event for its organizer or staff. Comments and
// participants are kept.
func (s *EventService) DeleteEvent(ctx context.Context, actor *domain.User, id uint) error {
	if !domain.IsAuthenticated(actor) {
		return ErrUnauthenticated
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	if !domain.IsEventOwner(actor, event.Event) && !domain.IsStaff(actor) {
		return ErrForbidden
	}

	if err = s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}

func (s *EventService) UploadEventImage(ctx context.Context, actor *domain.User, id uint, upload domain.Upload) (domain.EventDetail, error) {
	event, err := s.ownedEvent(ctx, actor, id)
	if err != nil {
		return domain.EventDetail{}, err
	}

	key, err := s.store.Save(ctx, storage.KindEvent, upload)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	updated, err := s.repo.UpdateImage(ctx, id, key)
	if err != nil {
		discard(ctx, s.store, key)
		return domain.EventDetail{}, fmt.Errorf("s.repo.UpdateImage -> %w", err)
	}

	discard(ctx, s.store, event.Image)

	return updated, nil
}

func (s *EventService) ListOrganizedEvents(ctx context.Context, userID uint, p domain.Pagination) (domain.Page[domain.EventSummary], error) {
	if _, err := s.users.FindActiveByID(ctx, userID); err != nil {
		return domain.Page[domain.EventSummary]{}, fmt.Errorf("s.users.FindActiveByID -> %w", err)
	}

	events, total, err := s.repo.FindActiveByOrganizer(ctx, userID, p)
	if err != nil {
		return domain.Page[domain.EventSummary]{}, fmt.Errorf("s.repo.FindActiveByOrganizer -> %w", err)
	}

	return s.summarize(ctx, events, total, p)
}

// ListJoinedEvents pages through the events the user has joined, leaving out
// private ones.
func (s *EventService) ListJoinedEvents(ctx context.Context, userID uint, p domain.Pagination) (domain.Page[domain.EventSummary], error) {
	if _, err := s.users.FindActiveByID(ctx, userID); err != nil {
		return domain.Page[domain.EventSummary]{}, fmt.Errorf("s.users.FindActiveByID -> %w", err)
	}

	events, total, err := s.repo.FindJoinedByUser(ctx, userID, p)
	if err != nil {
		return domain.Page[domain.EventSummary]{}, fmt.Errorf("s.repo.FindJoinedByUser -> %w", err)
	}

	return s.summarize(ctx, events, total, p)
}

func (s *EventService) ownedEvent(ctx context.Context, actor *domain.User, id uint) (domain.EventDetail, error) {
	if !domain.IsAuthenticated(actor) {
		return domain.EventDetail{}, ErrUnauthenticated
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return domain.EventDetail{}, err
	}

	if !domain.IsEventOwner(actor, event.Event) {
		return domain.EventDetail{}, ErrForbidden
	}

	return event, nil
}

func (s *EventService) summarize(ctx context.Context, events []domain.Event, total int64, p domain.Pagination) (domain.Page[domain.EventSummary], error) {
	if err := p.Check(total); err != nil {
		return domain.Page[domain.EventSummary]{}, err
	}

	ids := make([]uint, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	counts, err := s.participants.CountJoined(ctx, ids)
	if err != nil {
		return domain.Page[domain.EventSummary]{}, fmt.Errorf("s.participants.CountJoined -> %w", err)
	}

	items := make([]domain.EventSummary, 0, len(events))
	for _, e := range events {
		items = append(items, domain.EventSummary{Event: e, ParticipantCount: counts[e.ID]})
	}

	return domain.Page[domain.EventSummary]{Items: items, Total: total, Pagination: p}, nil
}
