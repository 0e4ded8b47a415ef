package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Names(t *testing.T) {
	tests := []struct {
		name      string
		user      User
		shortName string
		fullName  string
	}{
		{"both names", User{IsActive: true, FirstName: "Taro", FamilyName: "Yamada"}, "Taro", "YamadaTaro"},
		{"first name only", User{IsActive: true, FirstName: "Taro"}, "Taro", "Taro"},
		{"family name only", User{IsActive: true, FamilyName: "Yamada"}, "Yamada", "Yamada"},
		{"no names", User{IsActive: true}, NoName, NoName},
		{"inactive", User{FirstName: "Taro", FamilyName: "Yamada"}, DeletedUserName, DeletedUserName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shortName, tt.user.ShortName())
			assert.Equal(t, tt.fullName, tt.user.FullName())
		})
	}
}

func TestEvent_VisibleAndOpen(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		visible bool
		open    bool
	}{
		{"public", Event{IsActive: true, Status: EventStatusPublic}, true, true},
		{"private", Event{IsActive: true, Status: EventStatusPrivate}, false, false},
		{"cancelled", Event{IsActive: true, Status: EventStatusCancel}, true, false},
		{"inactive public", Event{Status: EventStatusPublic}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, tt.event.Visible())
			assert.Equal(t, tt.visible, IsValidEvent(tt.event))
			assert.Equal(t, tt.open, tt.event.Open())
		})
	}
}

func TestEventStatus_Valid(t *testing.T) {
	assert.True(t, EventStatusPrivate.Valid())
	assert.True(t, EventStatusPublic.Valid())
	assert.True(t, EventStatusCancel.Valid())
	assert.False(t, EventStatus("3").Valid())
	assert.False(t, EventStatus("").Valid())
}

func TestNewDateRange(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	r, err := NewDateRange("2024-05-01", "2024-05-03", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, loc), r.From)
	assert.Equal(t, time.Date(2024, 5, 3, 23, 59, 59, 0, loc), r.To)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	for _, day := range []string{"2024-03-10", "2024-11-03"} {
		r, err := NewDateRange(day, day, ny)
		require.NoError(t, err)

		from, to := r.From.In(ny), r.To.In(ny)
		assert.Equal(t, day, from.Format("2006-01-02"))
		assert.Equal(t, 0, from.Hour())
		assert.Equal(t, day, to.Format("2006-01-02"), "end of %s", day)
		assert.Equal(t, "23:59:59", to.Format("15:04:05"), "end of %s", day)
	}

	for _, bad := range [][2]string{
		{"", "2024-05-03"},
		{"2024-05-01", ""},
		{"2024/05/01", "2024-05-03"},
		{"2024-05-01", "tomorrow"},
	} {
		_, err := NewDateRange(bad[0], bad[1], loc)
		assert.True(t, errors.Is(err, ErrInvalidDateRange), "start=%q end=%q", bad[0], bad[1])
	}
}

func TestEventComment_DisplayComment(t *testing.T) {
	c := EventComment{Comment: "see you there", Status: CommentStatusDefault}
	assert.Equal(t, "see you there", c.DisplayComment())

	c.MarkEdited()
	assert.Equal(t, CommentStatusEdited, c.Status)
	assert.Equal(t, "see you there", c.Comment)
	assert.Equal(t, DeletedCommentText, c.DisplayComment())

	c.MarkEdited()
	assert.Equal(t, CommentStatusEdited, c.Status)
}

func TestParticipant_IsJoined(t *testing.T) {
	assert.True(t, Participant{IsActive: true, Status: ParticipantStatusJoin}.IsJoined())
	assert.False(t, Participant{IsActive: true, Status: ParticipantStatusCancel}.IsJoined())
	assert.False(t, Participant{Status: ParticipantStatusJoin}.IsJoined())
}

func TestPermissions(t *testing.T) {
	owner := &User{ID: 1, IsActive: true, IsGuide: true}
	other := &User{ID: 2, IsActive: true}
	staff := &User{ID: 3, IsActive: true, IsStaff: true}
	gone := &User{ID: 1, IsGuide: true}
	event := Event{ID: 10, OrganizerID: 1}

	assert.False(t, IsAuthenticated(nil))
	assert.False(t, IsAuthenticated(gone))
	assert.True(t, IsAuthenticated(other))

	assert.True(t, IsGuide(owner))
	assert.False(t, IsGuide(other))
	assert.False(t, IsGuide(gone))
	assert.False(t, IsGuide(nil))

	assert.True(t, IsStaff(staff))
	assert.False(t, IsStaff(owner))

	assert.True(t, IsEventOwner(owner, event))
	assert.False(t, IsEventOwner(other, event))
	assert.False(t, IsEventOwner(nil, event))

	assert.True(t, IsSelf(other, 2))
	assert.False(t, IsSelf(other, 1))
	assert.False(t, IsSelf(nil, 0))

	assert.True(t, IsEventAttributeOwner(other, 2))
	assert.False(t, IsEventAttributeOwner(staff, 2))
}

func TestPagination(t *testing.T) {
	p := NewPagination(0, CommentPageSize)
	assert.Equal(t, FirstPage, p.Page)
	assert.Equal(t, 15, p.Limit())
	assert.Equal(t, 0, p.Offset())
	assert.NoError(t, p.Check(0))
	assert.False(t, p.HasPrevious())

	p = NewPagination(2, CommentPageSize)
	assert.Equal(t, 15, p.Offset())
	assert.True(t, p.HasPrevious())
	assert.True(t, p.HasNext(31))
	assert.False(t, p.HasNext(30))
	assert.NoError(t, p.Check(16))
	assert.ErrorIs(t, p.Check(15), ErrPageOutOfRange)

	all := NewPagination(3, UnlimitedPageSize)
	assert.Equal(t, -1, all.Limit())
	assert.Equal(t, 0, all.Offset())
	assert.NoError(t, all.Check(0))
	assert.False(t, all.HasNext(100))
}
