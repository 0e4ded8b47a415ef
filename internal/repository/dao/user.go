package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

const uniqueUserEmail = "uni_users_email"

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"size:255;unique;not null"`
	Password string `gorm:"not null"`

	FirstName    string `gorm:"size:30;not null;default:''"`
	FamilyName   string `gorm:"size:30;not null;default:''"`
	Introduction string `gorm:"size:1000;not null;default:''"`
	Icon         string `gorm:"size:255;not null;default:''"`

	IsActive bool `gorm:"not null;default:true"`
	IsStaff  bool `gorm:"not null;default:false"`
	IsGuide  bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error, uniqueUserEmail) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByID returns the user whether or not it has been deactivated.
func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindActiveByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Where("is_active = ?", true).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// Update writes the given columns of an active user and returns the fresh row.
func (d *UserDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (User, error) {
	if _, err := d.FindActiveByID(ctx, id); err != nil {
		return User{}, err
	}

	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if isUniqueViolation(result.Error, uniqueUserEmail) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return d.FindByID(ctx, id)
}

// Deactivate soft deletes the user together with the events they organize,
// their participations and their comments, in one transaction.
func (d *UserDAO) Deactivate(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&User{}).
			Where("id = ? AND is_active = ?", id, true).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		if err := tx.Model(&Event{}).Where("organizer_id = ?", id).Update("is_active", false).Error; err != nil {
			return err
		}

		if err := tx.Model(&Participant{}).Where("user_id = ?", id).Update("is_active", false).Error; err != nil {
			return err
		}

		return tx.Model(&EventComment{}).Where("user_id = ?", id).Update("is_active", false).Error
	})
}
