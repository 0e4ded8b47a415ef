package repository

import (
	"context"
	"fmt"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/repository/dao"
)

var ErrCommentNotFound = dao.ErrCommentNotFound

type CommentDAO interface {
	Insert(ctx context.Context, comment dao.EventComment) (dao.EventComment, error)
	FindActiveByID(ctx context.Context, id uint) (dao.EventComment, error)
	FindActiveByEvent(ctx context.Context, eventID uint, limit, offset int) ([]dao.EventComment, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dao.EventComment, error)
	Deactivate(ctx context.Context, id uint) error
}

type CommentRepository struct {
	dao CommentDAO
}

func NewCommentRepository(dao CommentDAO) *CommentRepository {
	return &CommentRepository{
		dao: dao,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment domain.EventComment) (domain.CommentWithAuthor, error) {
	created, err := r.dao.Insert(ctx, dao.EventComment{
		EventID:  comment.EventID,
		UserID:   comment.UserID,
		Comment:  comment.Comment,
		Status:   string(domain.CommentStatusDefault),
		IsActive: true,
	})
	if err != nil {
		return domain.CommentWithAuthor{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return commentDaoToDomain(created), nil
}

func (r *CommentRepository) FindActiveByID(ctx context.Context, id uint) (domain.CommentWithAuthor, error) {
	found, err := r.dao.FindActiveByID(ctx, id)
	if err != nil {
		return domain.CommentWithAuthor{}, fmt.Errorf("r.dao.FindActiveByID -> %w", err)
	}

	return commentDaoToDomain(found), nil
}

func (r *CommentRepository) FindActiveByEvent(ctx context.Context, eventID uint, p domain.Pagination) ([]domain.CommentWithAuthor, int64, error) {
	found, total, err := r.dao.FindActiveByEvent(ctx, eventID, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindActiveByEvent -> %w", err)
	}

	out := make([]domain.CommentWithAuthor, 0, len(found))
	for _, c := range found {
		out = append(out, commentDaoToDomain(c))
	}

	return out, total, nil
}

func (r *CommentRepository) UpdateStatus(ctx context.Context, id uint, status domain.CommentStatus) (domain.CommentWithAuthor, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.CommentWithAuthor{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return commentDaoToDomain(updated), nil
}

func (r *CommentRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func commentDaoToDomain(c dao.EventComment) domain.CommentWithAuthor {
	return domain.CommentWithAuthor{
		EventComment: domain.EventComment{
			ID:        c.ID,
			EventID:   c.EventID,
			UserID:    c.UserID,
			Comment:   c.Comment,
			Status:    domain.CommentStatus(c.Status),
			IsActive:  c.IsActive,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		Author: userDaoToDomain(c.User),
	}
}
