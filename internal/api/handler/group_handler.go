package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/ports"
)

type GroupHandler struct {
	tracker ports.TrackerService
}

func NewGroupHandler(tracker ports.TrackerService) *GroupHandler {
	return &GroupHandler{tracker: tracker}
}

// Create handles POST /v1/groups.
//
// @Summary      Create a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGroupRequest  true  "Group"
// @Success      201   {object}  domain.Group
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/groups [post]
func (h *GroupHandler) Create(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	var req createGroupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	group, err := h.tracker.AddGroup(c.Request().Context(), req.Name, req.Description, req.MemberIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, group)
}

// List handles GET /v1/groups.
//
// @Summary      Groups visible to the caller
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Group
// @Router       /v1/groups [get]
func (h *GroupHandler) List(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	groups, err := h.tracker.Groups()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// UpdateMembers handles PUT /v1/groups/:id/members. The list replaces the
// current membership.
//
// @Summary      Replace group membership
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Group id"
// @Param        body  body      updateMembersRequest  true  "New member ids"
// @Success      200   {object}  domain.Group
// @Failure      404   {object}  errorResponse
// @Router       /v1/groups/{id}/members [put]
func (h *GroupHandler) UpdateMembers(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	var req updateMembersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	group, err := h.tracker.UpdateGroupMembers(c.Request().Context(), c.Param("id"), req.MemberIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

// Post handles POST /v1/groups/:id/posts.
//
// @Summary      Post to a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Group id"
// @Param        body  body      groupPostRequest  true  "Post"
// @Success      201   {object}  domain.GroupPost
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/groups/{id}/posts [post]
func (h *GroupHandler) Post(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	var req groupPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.tracker.PostToGroup(c.Request().Context(), c.Param("id"), req.Content, req.Attachment.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}
