package service

import (
	"context"
	"fmt"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment domain.EventComment) (domain.CommentWithAuthor, error)
	FindActiveByID(ctx context.Context, id uint) (domain.CommentWithAuthor, error)
	FindActiveByEvent(ctx context.Context, eventID uint, p domain.Pagination) ([]domain.CommentWithAuthor, int64, error)
	UpdateStatus(ctx context.Context, id uint, status domain.CommentStatus) (domain.CommentWithAuthor, error)
	Deactivate(ctx context.Context, id uint) error
}

type EventFinder interface {
	FindActiveByID(ctx context.Context, id uint) (domain.EventDetail, error)
}

type CommentService struct {
	repo   CommentRepository
	events EventFinder
}

func NewCommentService(repo CommentRepository, events EventFinder) *CommentService {
	return &CommentService{
		repo:   repo,
		events: events,
	}
}

func (s *CommentService) ListComments(ctx context.Context, eventID uint, p domain.Pagination) (domain.Page[domain.CommentWithAuthor], error) {
	if _, err := s.validEvent(ctx, eventID); err != nil {
		return domain.Page[domain.CommentWithAuthor]{}, err
	}

	comments, total, err := s.repo.FindActiveByEvent(ctx, eventID, p)
	if err != nil {
		return domain.Page[domain.CommentWithAuthor]{}, fmt.Errorf("s.repo.FindActiveByEvent -> %w", err)
	}

	if err = p.Check(total); err != nil {
		return domain.Page[domain.CommentWithAuthor]{}, err
	}

	return domain.Page[domain.CommentWithAuthor]{Items: comments, Total: total, Pagination: p}, nil
}

func (s *CommentService) CreateComment(ctx context.Context, actor *domain.User, eventID uint, text string) (domain.CommentWithAuthor, error) {
	if !domain.IsAuthenticated(actor) {
		return domain.CommentWithAuthor{}, ErrUnauthenticated
	}

	event, err := s.validEvent(ctx, eventID)
	if err != nil {
		return domain.CommentWithAuthor{}, err
	}
	if !event.Open() {
		return domain.CommentWithAuthor{}, ErrForbidden
	}

	created, err := s.repo.Create(ctx, domain.EventComment{
		EventID: eventID,
		UserID:  actor.ID,
		Comment: text,
	})
	if err != nil {
		return domain.CommentWithAuthor{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// MarkEdited flips the comment to the edited status, which masks its text
// on display. Applying it again is a no-op.
func (s *CommentService) MarkEdited(ctx context.Context, actor *domain.User, eventID, commentID uint) (domain.CommentWithAuthor, error) {
	comment, err := s.manageableComment(ctx, actor, eventID, commentID)
	if err != nil {
		return domain.CommentWithAuthor{}, err
	}

	comment.MarkEdited()

	updated, err := s.repo.UpdateStatus(ctx, comment.ID, comment.Status)
	if err != nil {
		return domain.CommentWithAuthor{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return updated, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, actor *domain.User, eventID, commentID uint) error {
	comment, err := s.manageableComment(ctx, actor, eventID, commentID)
	if err != nil {
		return err
	}

	if err = s.repo.Deactivate(ctx, comment.ID); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}

func (s *CommentService) validEvent(ctx context.Context, eventID uint) (domain.EventDetail, error) {
	event, err := s.events.FindActiveByID(ctx, eventID)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.events.FindActiveByID -> %w", err)
	}

	if !domain.IsValidEvent(event.Event) {
		return domain.EventDetail{}, ErrForbidden
	}

	return event, nil
}

// manageableComment loads a comment of the event that actor may change: its
// author or staff.
func (s *CommentService) manageableComment(ctx context.Context, actor *domain.User, eventID, commentID uint) (domain.CommentWithAuthor, error) {
	if !domain.IsAuthenticated(actor) {
		return domain.CommentWithAuthor{}, ErrUnauthenticated
	}

	comment, err := s.repo.FindActiveByID(ctx, commentID)
	if err != nil {
		return domain.CommentWithAuthor{}, fmt.Errorf("s.repo.FindActiveByID -> %w", err)
	}
	if comment.EventID != eventID {
		return domain.CommentWithAuthor{}, ErrCommentNotFound
	}

	if !domain.IsEventAttributeOwner(actor, comment.UserID) && !domain.IsStaff(actor) {
		return domain.CommentWithAuthor{}, ErrForbidden
	}

	return comment, nil
}
