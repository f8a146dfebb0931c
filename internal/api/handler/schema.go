package handler

import (
	"time"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type attachmentRequest struct {
	Kind     string `json:"kind"     validate:"required"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"     validate:"required"`
}

func (a *attachmentRequest) toDomain() *domain.Attachment {
	if a == nil {
		return nil
	}
	return &domain.Attachment{Kind: a.Kind, Name: a.Name, MimeType: a.MimeType, Data: a.Data}
}

type loginRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"     validate:"required,oneof=ADMIN FRIEND"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string            `json:"token"`
	ExpiresIn int64             `json:"expires_in"`
	User      domain.PublicUser `json:"user"`
}

type sessionResponse struct {
	View string             `json:"view"`
	User *domain.PublicUser `json:"user,omitempty"`
}

// upsertRecordRequest carries a partial record. Absent fields keep their
// stored value.
type upsertRecordRequest struct {
	UserID           string    `json:"userId"`
	Date             string    `json:"date"             validate:"required,datetime=2006-01-02"`
	TasksCompleted   *[]string `json:"tasksCompleted"`
	TimeSpentMinutes *int      `json:"timeSpentMinutes" validate:"omitempty,min=0"`
	Remarks          *string   `json:"remarks"`
	DayJournal       *string   `json:"dayJournal"`
	Mood             *string   `json:"mood"`
}

func (r upsertRecordRequest) toPatch() domain.RecordPatch {
	return domain.RecordPatch{
		UserID:           r.UserID,
		Date:             r.Date,
		TasksCompleted:   r.TasksCompleted,
		TimeSpentMinutes: r.TimeSpentMinutes,
		Remarks:          r.Remarks,
		DayJournal:       r.DayJournal,
		Mood:             r.Mood,
	}
}

type sendMessageRequest struct {
	ReceiverID string             `json:"receiverId"`
	Content    string             `json:"content"`
	Attachment *attachmentRequest `json:"attachment"`
}

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"memberIds"`
}

type updateMembersRequest struct {
	MemberIDs []string `json:"memberIds" validate:"required"`
}

type groupPostRequest struct {
	Content    string             `json:"content"`
	Attachment *attachmentRequest `json:"attachment"`
}

type statusRequest struct {
	Content    string             `json:"content"`
	Attachment *attachmentRequest `json:"attachment"`
}

type textResponse struct {
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}
