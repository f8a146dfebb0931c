package state

import (
	"slices"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// AddGroup appends a group with no posts.
func AddGroup(s domain.AppState, env Env, name, description string, memberIDs []string) (domain.AppState, domain.Group, error) {
	group := domain.Group{
		ID:          env.newID(),
		Name:        name,
		Description: description,
		MemberIDs:   uniqueIDs(memberIDs),
		Posts:       []domain.GroupPost{},
	}
	next := s.Clone()
	next.Groups = append(next.Groups, group)
	return next, group, nil
}

// PostToGroup appends a post by the session user to groupID.
func PostToGroup(s domain.AppState, env Env, groupID, content string, attachment *domain.Attachment) (domain.AppState, domain.GroupPost, error) {
	author, err := Session(s)
	if err != nil {
		return s, domain.GroupPost{}, err
	}
	idx := groupIndex(s, groupID)
	if idx < 0 {
		return s, domain.GroupPost{}, domain.ErrGroupNotFound
	}

	post := domain.GroupPost{
		ID:         env.newID(),
		Content:    content,
		Attachment: attachment,
		AuthorID:   author.ID,
		Timestamp:  env.now(),
	}
	next := s.Clone()
	g := next.Groups[idx]
	g.Posts = append(slices.Clone(g.Posts), post)
	next.Groups[idx] = g
	return next, post, nil
}

// UpdateGroupMembers replaces the member list of groupID wholesale.
func UpdateGroupMembers(s domain.AppState, groupID string, memberIDs []string) (domain.AppState, domain.Group, error) {
	idx := groupIndex(s, groupID)
	if idx < 0 {
		return s, domain.Group{}, domain.ErrGroupNotFound
	}
	next := s.Clone()
	g := next.Groups[idx]
	g.MemberIDs = uniqueIDs(memberIDs)
	next.Groups[idx] = g
	return next, g, nil
}

func groupIndex(s domain.AppState, id string) int {
	return slices.IndexFunc(s.Groups, func(g domain.Group) bool { return g.ID == id })
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
