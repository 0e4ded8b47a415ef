package domain

import (
	"errors"
	"fmt"
	"time"
)

type EventStatus string

const (
	EventStatusPrivate EventStatus = "0"
	EventStatusPublic  EventStatus = "1"
	EventStatusCancel  EventStatus = "2"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPrivate, EventStatusPublic, EventStatusCancel:
		return true
	}
	return false
}

const (
	MinEventFee = 0
	MaxEventFee = 100000

	dateLayout = "2006-01-02"
)

var ErrInvalidDateRange = errors.New("start and end must be dates formatted as YYYY-MM-DD")

type Event struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	OrganizerID uint        `json:"organizer"`
	Image       string      `json:"-"`
	EventTime   time.Time   `json:"event_time"`
	Address     string      `json:"address"`
	Fee         int         `json:"fee"`
	Status      EventStatus `json:"status"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Visible reports whether the event is live and shown to people other than
// its organizer.
func (e Event) Visible() bool {
	return e.IsActive && e.Status != EventStatusPrivate
}

// Open reports whether the event still takes new participants and comments.
func (e Event) Open() bool {
	return e.Visible() && e.Status != EventStatusCancel
}

// EventPatch is a partial update; nil fields are left untouched.
type EventPatch struct {
	Title       *string
	Description *string
	EventTime   *time.Time
	Address     *string
	Fee         *int
	Status      *EventStatus
}

// EventSummary is an event together with its joined participant count.
type EventSummary struct {
	Event
	ParticipantCount int64
}

// EventDetail is an event together with its organizer.
type EventDetail struct {
	Event
	Organizer User
}

// DateRange is an inclusive span of whole calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange parses two YYYY-MM-DD dates in loc and widens them to
// 00:00:00 of start through 23:59:59 of end.
func NewDateRange(start, end string, loc *time.Location) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, ErrInvalidDateRange
	}

	from, err := time.ParseInLocation(dateLayout, start, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("start %q: %w", start, ErrInvalidDateRange)
	}

	to, err := time.ParseInLocation(dateLayout, end, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("end %q: %w", end, ErrInvalidDateRange)
	}

	return DateRange{
		From: from,
		To:   time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, loc),
	}, nil
}
