package user

import (
	"github.com/gin-gonic/gin"

	"github.com/sabasm/user/internal/domain"
	"github.com/sabasm/user/internal/pkg"
)

// errUserNotFound is the API response for a missing user.
var errUserNotFound = domain.NewAppError(domain.CodeNotFound, "user not found", domain.ErrNotFound)

// UserHandler handles REST API requests for the user resource.
type UserHandler struct {
	svc domain.UserService
}

// NewUserHandler creates a new UserHandler with the given service.
func NewUserHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.AddUser(c.Request.Context(), req.Username, req.Email, req.PhoneNumber, req.ID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, user)
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if user == nil {
		pkg.Error(c, errUserNotFound)
		return
	}

	pkg.Success(c, user)
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	params, err := pkg.ParsePageParams(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	result, err := h.svc.GetAllUsers(c.Request.Context(), params)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PATCH /api/v1/users/:id. Only the supplied fields change.
// PUT is routed here too and is treated as PATCH: omitted fields are kept, not
// cleared.
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if user == nil {
		pkg.Error(c, errUserNotFound)
		return
	}

	pkg.Success(c, user)
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	deleted, err := h.svc.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if !deleted {
		pkg.Error(c, errUserNotFound)
		return
	}

	pkg.Success(c, DeleteUserResponse{Deleted: true})
}
