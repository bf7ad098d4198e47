package handler

import (
	identityapp "github.com/eyedist/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler handles account administration
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateUserRequest true "User"
// @Success      201 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// GetByID godoc
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Name or email"
// @Param        role      query string false "Role"
// @Param        active    query bool   false "Active"
// @Success      200 {object} dto.Response{data=[]identityapp.UserResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter identityapp.UserListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, filter.ListQuery)
}

// Update godoc
// @Summary      Update user
// @Description  Edit an account. Deactivating a user or resetting the password revokes their tokens.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string true "User ID" format(uuid)
// @Param        request body identityapp.UpdateUserRequest true "Changes"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req identityapp.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete godoc
// @Summary      Delete user
// @Tags         users
// @Param        id path string true "User ID" format(uuid)
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
