package domain

import (
	"slices"
	"time"
)

// GroupPost is an append-only entry owned by its Group.
type GroupPost struct {
	ID         string      `json:"id"`
	Content    string      `json:"content"`
	Attachment *Attachment `json:"attachment,omitempty"`
	AuthorID   string      `json:"authorId"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Group is a named set of users sharing a post stream.
type Group struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	MemberIDs   []string    `json:"memberIds"`
	Posts       []GroupPost `json:"posts"`
}

// HasMember reports whether userID is in the group.
func (g Group) HasMember(userID string) bool {
	return slices.Contains(g.MemberIDs, userID)
}
