package user

import "github.com/sabasm/user/internal/domain"

// CreateUserRequest represents the input for creating a new user.
type CreateUserRequest struct {
	ID          string `json:"id" form:"id" binding:"omitempty,max=36"`
	Username    string `json:"username" form:"username" binding:"max=255"`
	Email       string `json:"email" form:"email" binding:"max=255"`
	PhoneNumber string `json:"phone_number" form:"phone_number" binding:"max=64"`
}

// UpdateUserRequest represents a partial update. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Username    *string `json:"username" binding:"omitempty,max=255"`
	Email       *string `json:"email" binding:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=64"`
}

// toUpdate converts the request into a domain.UserUpdate.
func (r UpdateUserRequest) toUpdate() domain.UserUpdate {
	return domain.UserUpdate{
		Username:    r.Username,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}

// DeleteUserResponse is returned by a successful delete.
type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}
