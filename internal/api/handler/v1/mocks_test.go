package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/api/middleware"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

var (
	jst = time.FixedZone("JST", 9*60*60)

	guideUser  = domain.User{ID: 1, Email: "guide@example.com", FirstName: "Taro", FamilyName: "Yamada", IsActive: true, IsGuide: true}
	memberUser = domain.User{ID: 2, Email: "member@example.com", FirstName: "Hanako", IsActive: true, Icon: "uploads/user/hanako.png"}
)

type fakeURLs struct{}

func (fakeURLs) URL(key, placeholder string) string {
	if key == "" {
		return "/static" + placeholder
	}
	return "/media/" + key
}

func testPresenter() *response.Presenter {
	return response.NewPresenter(jst, fakeURLs{})
}

// newRouter mounts handler at path. A non-zero userID is injected the way
// the authenticator does it.
func newRouter(method, path string, handler gin.HandlerFunc, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, path, func(ctx *gin.Context) {
		if userID != 0 {
			ctx.Set(middleware.UserIDKey, userID)
		}
		ctx.Next()
	}, handler)

	return r
}

func perform(r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func performUpload(r http.Handler, method, target, field string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, _ := mw.CreateFormFile(field, "image.png")
		_, _ = fw.Write(content)
	}
	_ = mw.Close()

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())

	return out
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, actor *domain.User, id uint, patch domain.UserPatch) (domain.User, error) {
	args := m.Called(ctx, actor, id, patch)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) GetEmail(ctx context.Context, actor *domain.User, id uint) (string, error) {
	args := m.Called(ctx, actor, id)
	return args.String(0), args.Error(1)
}

func (m *mockUserService) UpdateEmail(ctx context.Context, actor *domain.User, id uint, email string) (domain.User, error) {
	args := m.Called(ctx, actor, id, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, actor *domain.User, id uint) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *mockUserService) UploadIcon(ctx context.Context, actor *domain.User, id uint, upload domain.Upload) (domain.User, error) {
	args := m.Called(ctx, actor, id, upload)
	return args.Get(0).(domain.User), args.Error(1)
}

// withUsers registers the fixture users for actor lookups.
func withUsers() *mockUserService {
	users := &mockUserService{}
	users.On("GetUser", mock.Anything, guideUser.ID).Return(guideUser, nil)
	users.On("GetUser", mock.Anything, memberUser.ID).Return(memberUser, nil)

	return users
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) ListEvents(ctx context.Context, start, end string, p domain.Pagination) (domain.Page[domain.EventSummary], error) {
	args := m.Called(ctx, start, end, p)
	return args.Get(0).(domain.Page[domain.EventSummary]), args.Error(1)
}

func (m *mockEventService) CreateEvent(ctx context.Context, actor *domain.User, organizerID uint, event domain.Event) (domain.EventDetail, error) {
	args := m.Called(ctx, actor, organizerID, event)
	return args.Get(0).(domain.EventDetail), args.Error(1)
}

func (m *mockEventService) GetEvent(ctx context.Context, id uint) (domain.EventDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.EventDetail), args.Error(1)
}

func (m *mockEventService) UpdateEvent(ctx context.Context, actor *domain.User, id uint, patch domain.EventPatch) (domain.EventDetail, error) {
	args := m.Called(ctx, actor, id, patch)
	return args.Get(0).(domain.EventDetail), args.Error(1)
}

func (m *mockEventService) DeleteEvent(ctx context.Context, actor *domain.User, id uint) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *mockEventService) UploadEventImage(ctx context.Context, actor *domain.User, id uint, upload domain.Upload) (domain.EventDetail, error) {
	args := m.Called(ctx, actor, id, upload)
	return args.Get(0).(domain.EventDetail), args.Error(1)
}

func (m *mockEventService) ListOrganizedEvents(ctx context.Context, userID uint, p domain.Pagination) (domain.Page[domain.EventSummary], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(domain.Page[domain.EventSummary]), args.Error(1)
}

func (m *mockEventService) ListJoinedEvents(ctx context.Context, userID uint, p domain.Pagination) (domain.Page[domain.EventSummary], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(domain.Page[domain.EventSummary]), args.Error(1)
}

type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) ListComments(ctx context.Context, eventID uint, p domain.Pagination) (domain.Page[domain.CommentWithAuthor], error) {
	args := m.Called(ctx, eventID, p)
	return args.Get(0).(domain.Page[domain.CommentWithAuthor]), args.Error(1)
}

func (m *mockCommentService) CreateComment(ctx context.Context, actor *domain.User, eventID uint, text string) (domain.CommentWithAuthor, error) {
	args := m.Called(ctx, actor, eventID, text)
	return args.Get(0).(domain.CommentWithAuthor), args.Error(1)
}

func (m *mockCommentService) MarkEdited(ctx context.Context, actor *domain.User, eventID, commentID uint) (domain.CommentWithAuthor, error) {
	args := m.Called(ctx, actor, eventID, commentID)
	return args.Get(0).(domain.CommentWithAuthor), args.Error(1)
}

func (m *mockCommentService) DeleteComment(ctx context.Context, actor *domain.User, eventID, commentID uint) error {
	args := m.Called(ctx, actor, eventID, commentID)
	return args.Error(0)
}

type mockParticipantService struct {
	mock.Mock
}

func (m *mockParticipantService) ListParticipants(ctx context.Context, eventID uint) ([]domain.ParticipantWithUser, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.ParticipantWithUser), args.Error(1)
}

func (m *mockParticipantService) Join(ctx context.Context, actor *domain.User, eventID uint) (domain.Participant, error) {
	args := m.Called(ctx, actor, eventID)
	return args.Get(0).(domain.Participant), args.Error(1)
}

func (m *mockParticipantService) SetStatus(ctx context.Context, actor *domain.User, eventID uint, status domain.ParticipantStatus) (domain.Participant, error) {
	args := m.Called(ctx, actor, eventID, status)
	return args.Get(0).(domain.Participant), args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.Error(1)
}
