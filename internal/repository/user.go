package repository

import (
	"context"
	"fmt"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindActiveByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.User, error)
	Deactivate(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:        user.Email,
		Password:     user.Password,
		FirstName:    user.FirstName,
		FamilyName:   user.FamilyName,
		Introduction: user.Introduction,
		IsActive:     true,
		IsGuide:      user.IsGuide,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userDaoToDomain(created), nil
}

func (r *UserRepository) FindActiveByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindActiveByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindActiveByID -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error) {
	fields := map[string]interface{}{}
	if patch.FirstName != nil {
		fields["first_name"] = *patch.FirstName
	}
	if patch.FamilyName != nil {
		fields["family_name"] = *patch.FamilyName
	}
	if patch.Introduction != nil {
		fields["introduction"] = *patch.Introduction
	}
	if patch.IsGuide != nil {
		fields["is_guide"] = *patch.IsGuide
	}

	return r.update(ctx, id, fields)
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id uint, email string) (domain.User, error) {
	return r.update(ctx, id, map[string]interface{}{"email": email})
}

func (r *UserRepository) UpdateIcon(ctx context.Context, id uint, key string) (domain.User, error) {
	return r.update(ctx, id, map[string]interface{}{"icon": key})
}

func (r *UserRepository) update(ctx context.Context, id uint, fields map[string]interface{}) (domain.User, error) {
	if len(fields) == 0 {
		return r.FindActiveByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return userDaoToDomain(updated), nil
}

// Deactivate soft deletes the user and everything they own in one step.
func (r *UserRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:           u.ID,
		Email:        u.Email,
		Password:     u.Password,
		FirstName:    u.FirstName,
		FamilyName:   u.FamilyName,
		Introduction: u.Introduction,
		Icon:         u.Icon,
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		IsGuide:      u.IsGuide,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
