package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TaiyoMatsuda/board-app/internal/domain"
	"github.com/TaiyoMatsuda/board-app/internal/storage"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindActiveByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateEmail(ctx context.Context, id uint, email string) (domain.User, error) {
	args := m.Called(ctx, id, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateIcon(ctx context.Context, id uint, key string) (domain.User, error) {
	args := m.Called(ctx, id, key)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) Deactivate(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Save(ctx context.Context, kind storage.Kind, upload domain.Upload) (string, error) {
	args := m.Called(ctx, kind, upload)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(domain.Event), args.Error(1)
}

func (m *mockEventRepo) FindActiveByID(ctx context.Context, id uint) (domain.EventDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.EventDetail), args.Error(1)
}

func (m *mockEventRepo) FindActiveInRange(ctx context.Context, dr domain.DateRange, p domain.Pagination) ([]domain.Event, int64, error) {
	args := m.Called(ctx, dr, p)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockEventRepo) FindActiveByOrganizer(ctx context.Context, organizerID uint, p domain.Pagination) ([]domain.Event, int64, error) {
	args := m.Called(ctx, organizerID, p)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockEventRepo) FindJoinedByUser(ctx context.Context, userID uint, p domain.Pagination) ([]domain.Event, int64, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).([]domain.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockEventRepo) Update(ctx context.Context, id uint, patch domain.EventPatch) (domain.EventDetail, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.EventDetail), args.Error(1)
}

func (m *mockEventRepo) UpdateImage(ctx context.Context, id uint, key string) (domain.EventDetail, error) {
	args := m.Called(ctx, id, key)
	return args.Get(0).(domain.EventDetail), args.Error(1)
}

func (m *mockEventRepo) Deactivate(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockParticipantRepo struct{ mock.Mock }

func (m *mockParticipantRepo) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	args := m.Called(ctx, participant)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *mockParticipantRepo) FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Participant, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *mockParticipantRepo) FindJoinedByEvent(ctx context.Context, eventID uint) ([]domain.ParticipantWithUser, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.ParticipantWithUser), args.Error(1)
}

func (m *mockParticipantRepo) UpdateStatus(ctx context.Context, id uint, status domain.ParticipantStatus) (domain.Participant, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *mockParticipantRepo) CountJoined(ctx context.Context, eventIDs []uint) (map[uint]int64, error) {
	args := m.Called(ctx, eventIDs)
	return args.Get(0).(map[uint]int64), args.Error(1)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Create(ctx context.Context, comment domain.EventComment) (domain.CommentWithAuthor, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(domain.CommentWithAuthor), args.Error(1)
}

func (m *mockCommentRepo) FindActiveByID(ctx context.Context, id uint) (domain.CommentWithAuthor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.CommentWithAuthor), args.Error(1)
}

func (m *mockCommentRepo) FindActiveByEvent(ctx context.Context, eventID uint, p domain.Pagination) ([]domain.CommentWithAuthor, int64, error) {
	args := m.Called(ctx, eventID, p)
	return args.Get(0).([]domain.CommentWithAuthor), args.Get(1).(int64), args.Error(2)
}

func (m *mockCommentRepo) UpdateStatus(ctx context.Context, id uint, status domain.CommentStatus) (domain.CommentWithAuthor, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.CommentWithAuthor), args.Error(1)
}

func (m *mockCommentRepo) Deactivate(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

var (
	guide    = &domain.User{ID: 1, IsActive: true, IsGuide: true, FirstName: "Guide"}
	member   = &domain.User{ID: 2, IsActive: true, FirstName: "Member"}
	staff    = &domain.User{ID: 3, IsActive: true, IsStaff: true}
	inactive = &domain.User{ID: 4, IsGuide: true}
)

func eventDetail(id uint, status domain.EventStatus) domain.EventDetail {
	return domain.EventDetail{
		Event: domain.Event{
			ID:          id,
			Title:       "Morning hike",
			OrganizerID: guide.ID,
			Status:      status,
			IsActive:    true,
		},
		Organizer: *guide,
	}
}
