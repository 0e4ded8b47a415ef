package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrParticipantExists   = errors.New("participant already exists")
	ErrParticipantNotFound = errors.New("participant not found")
)

const uniqueParticipantEventUser = "uq_participants_event_user"

// Participant holds at most one row per (event, user) pair, enforced by the
// composite unique index so concurrent joins cannot both succeed.
type Participant struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:uq_participants_event_user,priority:1"`
	Event   Event `gorm:"constraint:OnDelete:CASCADE"`
	UserID  uint  `gorm:"not null;uniqueIndex:uq_participants_event_user,priority:2;index"`
	User    User  `gorm:"constraint:OnDelete:CASCADE"`

	Status   string `gorm:"type:varchar(1);not null;default:'1'"`
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) Insert(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&participant)
	if result.Error != nil {
		if isUniqueViolation(result.Error, uniqueParticipantEventUser) {
			return Participant{}, ErrParticipantExists
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

// FindJoinedByEvent lists active joined rows with their users, oldest
// update first.
func (d *ParticipantDAO) FindJoinedByEvent(ctx context.Context, eventID uint) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Where("status = ? AND is_active = ?", participantStatusJoin, true).
		Order("updated_at ASC, id ASC").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) UpdateStatus(ctx context.Context, id uint, status string) (Participant, error) {
	result := d.db.WithContext(ctx).Model(&Participant{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return Participant{}, result.Error
	}

	var participant Participant
	if err := d.db.WithContext(ctx).First(&participant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, err
	}

	return participant, nil
}

type joinedCount struct {
	EventID uint
	Count   int64
}

// CountJoined returns the number of active joined rows per event. Events
// without any are absent from the map.
func (d *ParticipantDAO) CountJoined(ctx context.Context, eventIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []joinedCount
	result := d.db.WithContext(ctx).Model(&Participant{}).
		Select("event_id, COUNT(*) AS count").
		Where("event_id IN ?", eventIDs).
		Where("status = ? AND is_active = ?", participantStatusJoin, true).
		Group("event_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		counts[row.EventID] = row.Count
	}

	return counts, nil
}
