package response

import (
	"time"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

// BriefTimeLayout is how timestamps are shown to clients, in the
// configured zone.
const BriefTimeLayout = "2006-01-02 15:04:05"

// URLResolver turns a stored image key into a public URL, falling back to
// the placeholder path when the key is empty.
type URLResolver interface {
	URL(key, placeholder string) string
}

// Presenter maps domain values to response bodies. Every derived field
// (names, image URLs, brief timestamps) is computed here.
type Presenter struct {
	loc  *time.Location
	urls URLResolver
}

func NewPresenter(loc *time.Location, urls URLResolver) *Presenter {
	if loc == nil {
		loc = time.UTC
	}

	return &Presenter{
		loc:  loc,
		urls: urls,
	}
}

func (p *Presenter) brief(t time.Time) string {
	return t.In(p.loc).Format(BriefTimeLayout)
}

func (p *Presenter) iconURL(u domain.User) string {
	return p.urls.URL(u.Icon, domain.NoUserImage)
}

func (p *Presenter) imageURL(e domain.Event) string {
	return p.urls.URL(e.Image, domain.NoEventImage)
}

type BriefEvent struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Image            string `json:"image"`
	EventTime        string `json:"event_time"`
	Address          string `json:"address"`
	ParticipantCount int64  `json:"participant_count"`
}

func (p *Presenter) BriefEvent(e domain.EventSummary) BriefEvent {
	return BriefEvent{
		ID:               e.ID,
		Title:            e.Title,
		Image:            p.imageURL(e.Event),
		EventTime:        p.brief(e.EventTime),
		Address:          e.Address,
		ParticipantCount: e.ParticipantCount,
	}
}

type EventDetail struct {
	ID                uint               `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Organizer         uint               `json:"organizer"`
	OrganizerFullName string             `json:"organizer_full_name"`
	OrganizerIcon     string             `json:"organizer_icon"`
	Image             string             `json:"image"`
	EventTime         string             `json:"event_time"`
	Address           string             `json:"address"`
	Fee               int                `json:"fee"`
	Status            domain.EventStatus `json:"status"`
	BriefUpdatedAt    string             `json:"brief_updated_at"`
}

func (p *Presenter) EventDetail(e domain.EventDetail) EventDetail {
	return EventDetail{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		Organizer:         e.OrganizerID,
		OrganizerFullName: e.Organizer.FullName(),
		OrganizerIcon:     p.iconURL(e.Organizer),
		Image:             p.imageURL(e.Event),
		EventTime:         p.brief(e.EventTime),
		Address:           e.Address,
		Fee:               e.Fee,
		Status:            e.Status,
		BriefUpdatedAt:    p.brief(e.UpdatedAt),
	}
}

type Comment struct {
	ID             uint   `json:"id"`
	Event          uint   `json:"event"`
	User           uint   `json:"user"`
	FirstName      string `json:"first_name"`
	Icon           string `json:"icon"`
	Comment        string `json:"comment"`
	BriefUpdatedAt string `json:"brief_updated_at"`
}

func (p *Presenter) Comment(c domain.CommentWithAuthor) Comment {
	return Comment{
		ID:             c.ID,
		Event:          c.EventID,
		User:           c.UserID,
		FirstName:      c.Author.ShortName(),
		Icon:           p.iconURL(c.Author),
		Comment:        c.DisplayComment(),
		BriefUpdatedAt: p.brief(c.UpdatedAt),
	}
}

type Participant struct {
	User      uint   `json:"user"`
	FirstName string `json:"first_name"`
	Icon      string `json:"icon"`
}

func (p *Presenter) Participant(pu domain.ParticipantWithUser) Participant {
	return Participant{
		User:      pu.UserID,
		FirstName: pu.User.ShortName(),
		Icon:      p.iconURL(pu.User),
	}
}

type ParticipantStatus struct {
	Status domain.ParticipantStatus `json:"status"`
}

type UserProfile struct {
	ID           uint   `json:"id"`
	FirstName    string `json:"first_name"`
	FamilyName   string `json:"family_name"`
	Introduction string `json:"introduction"`
	IconURL      string `json:"icon_url"`
	IsGuide      bool   `json:"is_guide"`
}

func (p *Presenter) UserProfile(u domain.User) UserProfile {
	return UserProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		FamilyName:   u.FamilyName,
		Introduction: u.Introduction,
		IconURL:      p.iconURL(u),
		IsGuide:      u.IsGuide,
	}
}

// UserCard is the public view of a user shown next to their content.
type UserCard struct {
	ID           uint   `json:"id"`
	ShortName    string `json:"short_name"`
	Introduction string `json:"introduction"`
	IconURL      string `json:"icon_url"`
	IsGuide      bool   `json:"is_guide"`
}

func (p *Presenter) UserCard(u domain.User) UserCard {
	return UserCard{
		ID:           u.ID,
		ShortName:    u.ShortName(),
		Introduction: u.Introduction,
		IconURL:      p.iconURL(u),
		IsGuide:      u.IsGuide,
	}
}

type ShortName struct {
	ShortName string `json:"short_name"`
}

type Email struct {
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
