package domain

import "time"

type CommentStatus string

const (
	CommentStatusDefault CommentStatus = "0"
	CommentStatusEdited  CommentStatus = "1"
)

const (
	DeletedCommentText = "deleted comment"
	MaxCommentLength   = 500
)

type EventComment struct {
	ID        uint          `json:"id"`
	EventID   uint          `json:"event"`
	UserID    uint          `json:"user"`
	Comment   string        `json:"comment"`
	Status    CommentStatus `json:"status"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DisplayComment is what readers see: once a comment has left the default
// status its text is masked, whatever is stored.
func (c EventComment) DisplayComment() string {
	if c.Status == CommentStatusDefault {
		return c.Comment
	}
	return DeletedCommentText
}

// MarkEdited flags the comment without touching its text.
func (c *EventComment) MarkEdited() {
	c.Status = CommentStatusEdited
}

type CommentWithAuthor struct {
	EventComment
	Author User
}
