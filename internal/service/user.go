package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/storage"
)

type UserRepository interface {
	FindActiveByID(ctx context.Context, id uint) (domain.User, error)
	UpdateProfile(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error)
	UpdateEmail(ctx context.Context, id uint, email string) (domain.User, error)
	UpdateIcon(ctx context.Context, id uint, key string) (domain.User, error)
	Deactivate(ctx context.Context, id uint) error
}

// ImageStore persists uploaded images.
type ImageStore interface {
	Save(ctx context.Context, kind storage.Kind, upload domain.Upload) (string, error)
	Delete(ctx context.Context, key string) error
}

type UserService struct {
	repo  UserRepository
	store ImageStore
}

func NewUserService(repo UserRepository, store ImageStore) *UserService {
	return &UserService{
		repo:  repo,
		store: store,
	}
}

// GetUser returns an active user; deactivated users are not found.
func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindActiveByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, id uint, patch domain.UserPatch) (domain.User, error) {
	if err := authorizeSelf(actor, id); err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.UpdateProfile(ctx, id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetEmail(ctx context.Context, actor *domain.User, id uint) (string, error) {
	if err := authorizeSelf(actor, id); err != nil {
		return "", err
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return "", err
	}

	return user.Email, nil
}

func (s *UserService) UpdateEmail(ctx context.Context, actor *domain.User, id uint, email string) (domain.User, error) {
	if err := authorizeSelf(actor, id); err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.UpdateEmail(ctx, id, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateEmail -> %w", err)
	}

	return user, nil
}

// DeleteUser deactivates the user along with their events, participations
// and comments.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id uint) error {
	if err := authorizeSelf(actor, id); err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}

func (s *UserService) UploadIcon(ctx context.Context, actor *domain.User, id uint, upload domain.Upload) (domain.User, error) {
	if err := authorizeSelf(actor, id); err != nil {
		return domain.User{}, err
	}

	key, err := s.store.Save(ctx, storage.KindUser, upload)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	user, err := s.repo.UpdateIcon(ctx, id, key)
	if err != nil {
		discard(ctx, s.store, key)
		return domain.User{}, fmt.Errorf("s.repo.UpdateIcon -> %w", err)
	}

	discard(ctx, s.store, actor.Icon)

	return user, nil
}

func authorizeSelf(actor *domain.User, id uint) error {
	if !domain.IsAuthenticated(actor) {
		return ErrUnauthenticated
	}
	if !domain.IsSelf(actor, id) {
		return ErrForbidden
	}

	return nil
}

// discard removes a stored image that is no longer referenced. Failures are
// logged and swallowed.
func discard(ctx context.Context, store ImageStore, key string) {
	if key == "" {
		return
	}

	if err := store.Delete(ctx, key); err != nil {
		zap.L().Warn("failed to delete stored image", zap.String("key", key), zap.Error(err))
	}
}
