package domain

import "time"

const (
	DeletedUserName = "deleted user"
	NoName          = "noname"
)

type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	FamilyName   string    `json:"family_name"`
	Introduction string    `json:"introduction"`
	Icon         string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsGuide      bool      `json:"is_guide"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ShortName prefers the first name, then the family name.
func (u User) ShortName() string {
	switch {
	case !u.IsActive:
		return DeletedUserName
	case u.FirstName != "":
		return u.FirstName
	case u.FamilyName != "":
		return u.FamilyName
	default:
		return NoName
	}
}

// FullName is family name followed by first name, without a separator.
func (u User) FullName() string {
	switch {
	case !u.IsActive:
		return DeletedUserName
	case u.FamilyName != "" && u.FirstName != "":
		return u.FamilyName + u.FirstName
	case u.FirstName != "":
		return u.FirstName
	case u.FamilyName != "":
		return u.FamilyName
	default:
		return NoName
	}
}

// UserPatch carries the profile fields a user may change about themselves.
// Nil fields are left untouched.
type UserPatch struct {
	FirstName    *string
	FamilyName   *string
	Introduction *string
	IsGuide      *bool
}
