package state

import "github.com/kinshiplabs/tracker/internal/core/domain"

// UploadStatus appends a status update snapshotting the session user's name.
func UploadStatus(s domain.AppState, env Env, content string, attachment *domain.Attachment) (domain.AppState, domain.StatusUpdate, error) {
	user, err := Session(s)
	if err != nil {
		return s, domain.StatusUpdate{}, err
	}

	status := domain.StatusUpdate{
		ID:         env.newID(),
		UserID:     user.ID,
		UserName:   user.Name,
		Content:    content,
		Attachment: attachment,
		Timestamp:  env.now(),
	}
	next := s.Clone()
	next.Statuses = append(next.Statuses, status)
	return next, status, nil
}
