package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCommentNotFound = errors.New("comment not found")

type EventComment struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;index"`
	Event   Event `gorm:"constraint:OnDelete:CASCADE"`
	UserID  uint  `gorm:"not null;index"`
	User    User  `gorm:"constraint:OnDelete:CASCADE"`

	Comment  string `gorm:"size:500;not null"`
	Status   string `gorm:"type:varchar(1);not null;default:'0'"`
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		db: db,
	}
}

func (d *CommentDAO) Insert(ctx context.Context, comment EventComment) (EventComment, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&comment)
	if result.Error != nil {
		return EventComment{}, result.Error
	}

	return d.FindActiveByID(ctx, comment.ID)
}

// FindActiveByID returns an active comment with its author loaded.
func (d *CommentDAO) FindActiveByID(ctx context.Context, id uint) (EventComment, error) {
	var comment EventComment

	result := d.db.WithContext(ctx).Preload("User").Where("is_active = ?", true).First(&comment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventComment{}, ErrCommentNotFound
		}

		return EventComment{}, result.Error
	}

	return comment, nil
}

// FindActiveByEvent pages through an event's active comments, oldest update
// first, with their authors loaded.
func (d *CommentDAO) FindActiveByEvent(ctx context.Context, eventID uint, limit, offset int) ([]EventComment, int64, error) {
	q := d.db.WithContext(ctx).Model(&EventComment{}).
		Where("event_id = ?", eventID).
		Where("is_active = ?", true)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []EventComment
	result := q.Session(&gorm.Session{}).
		Preload("User").
		Order("updated_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return comments, total, nil
}

func (d *CommentDAO) UpdateStatus(ctx context.Context, id uint, status string) (EventComment, error) {
	result := d.db.WithContext(ctx).Model(&EventComment{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("status", status)
	if result.Error != nil {
		return EventComment{}, result.Error
	}

	return d.FindActiveByID(ctx, id)
}

func (d *CommentDAO) Deactivate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&EventComment{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}
