package domain

import "time"

type ParticipantStatus string

const (
	ParticipantStatusCancel ParticipantStatus = "0"
	ParticipantStatusJoin   ParticipantStatus = "1"
)

type Participant struct {
	ID        uint              `json:"id"`
	EventID   uint              `json:"event"`
	UserID    uint              `json:"user"`
	Status    ParticipantStatus `json:"status"`
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// IsJoined reports whether the row counts towards the event's attendance.
func (p Participant) IsJoined() bool {
	return p.IsActive && p.Status == ParticipantStatusJoin
}

type ParticipantWithUser struct {
	Participant
	User User
}
