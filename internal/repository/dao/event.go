package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEventNotFound = errors.New("event not found")

const (
	eventStatusPrivate    = "0"
	participantStatusJoin = "1"
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:2000;not null"`

	OrganizerID uint `gorm:"not null;index"`
	Organizer   User `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE"`

	Image     string    `gorm:"size:255;not null;default:''"`
	EventTime time.Time `gorm:"not null;index"`
	Address   string    `gorm:"size:255;not null"`
	Fee       int       `gorm:"not null;default:0;check:chk_events_fee,fee >= 0 AND fee <= 100000"`
	Status    string    `gorm:"type:varchar(1);not null;default:'0'"`
	IsActive  bool      `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

// FindByID returns the event whether or not it has been deactivated.
func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	return d.first(d.db.WithContext(ctx), id)
}

// FindActiveByID returns an active event with its organizer loaded.
func (d *EventDAO) FindActiveByID(ctx context.Context, id uint) (Event, error) {
	return d.first(d.db.WithContext(ctx).Preload("Organizer").Where("is_active = ?", true), id)
}

func (d *EventDAO) first(q *gorm.DB, id uint) (Event, error) {
	var event Event

	result := q.First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindActiveInRange pages through active events held between from and to
// inclusive, earliest first.
func (d *EventDAO) FindActiveInRange(ctx context.Context, from, to time.Time, limit, offset int) ([]Event, int64, error) {
	q := d.db.WithContext(ctx).Model(&Event{}).
		Where("is_active = ?", true).
		Where("event_time BETWEEN ? AND ?", from, to)

	return d.page(q, "event_time ASC, id ASC", limit, offset)
}

func (d *EventDAO) FindActiveByOrganizer(ctx context.Context, organizerID uint, limit, offset int) ([]Event, int64, error) {
	q := d.db.WithContext(ctx).Model(&Event{}).
		Where("is_active = ?", true).
		Where("organizer_id = ?", organizerID)

	return d.page(q, "event_time ASC, id ASC", limit, offset)
}

// FindJoinedByUser pages through the active, non-private events the user
// currently participates in.
func (d *EventDAO) FindJoinedByUser(ctx context.Context, userID uint, limit, offset int) ([]Event, int64, error) {
	q := d.db.WithContext(ctx).Model(&Event{}).
		Joins("JOIN participants ON participants.event_id = events.id").
		Where("participants.user_id = ?", userID).
		Where("participants.status = ?", participantStatusJoin).
		Where("participants.is_active = ?", true).
		Where("events.is_active = ?", true).
		Where("events.status <> ?", eventStatusPrivate)

	return d.page(q, "events.event_time ASC, events.id ASC", limit, offset)
}

func (d *EventDAO) page(q *gorm.DB, order string, limit, offset int) ([]Event, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	result := q.Session(&gorm.Session{}).Select("events.*").Order(order).Limit(limit).Offset(offset).Find(&events)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return events, total, nil
}

// Update writes the given columns of an active event and returns the fresh row.
func (d *EventDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Event, error) {
	if _, err := d.FindActiveByID(ctx, id); err != nil {
		return Event{}, err
	}

	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return d.FindActiveByID(ctx, id)
}

// Deactivate soft deletes the event only. Its comments and participants are
// left as they are.
func (d *EventDAO) Deactivate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
