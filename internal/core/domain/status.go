package domain

import "time"

// StatusUpdate is a broadcast post. UserName is a snapshot taken at post time.
type StatusUpdate struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	UserName   string      `json:"userName"`
	Content    string      `json:"content,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}
