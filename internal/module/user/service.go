package user

import (
	"context"

	"github.com/sabasm/user/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// AddUser builds a User and persists it via the repository. An empty id is
// replaced by a generated one. Usernames and emails are not checked for
// uniqueness.
func (s *userService) AddUser(ctx context.Context, username, email, phoneNumber, id string) (*domain.User, error) {
	user := domain.NewUser(username, email, phoneNumber, domain.WithID(id))
	return s.repo.Create(ctx, user)
}

// GetUserByID retrieves a user by ID. A missing user yields nil without error.
func (s *userService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser loads the existing user, applies the set fields of update, and
// persists the result. A missing user yields nil without error.
func (s *userService) UpdateUser(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.UpdateTimestamp()
	update.UpdatedAt = &existing.UpdatedAt

	return s.repo.Update(ctx, id, update)
}

// DeleteUser removes a user by ID and reports whether it existed.
func (s *userService) DeleteUser(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// GetAllUsers returns one page of users. The full collection is loaded and
// sliced on every call.
func (s *userService) GetAllUsers(ctx context.Context, params domain.PageParams) (*domain.PageResult[*domain.User], error) {
	if params.Page < 1 {
		return nil, domain.ErrInvalidPage
	}
	if params.Limit < 1 {
		return nil, domain.ErrInvalidLimit
	}

	users, err := s.repo.FindAll(ctx, params.Filter)
	if err != nil {
		return nil, err
	}

	return paginate(users, params.Page, params.Limit), nil
}

// paginate slices items into the requested 1-based page. page and limit must
// be at least 1.
func paginate[T any](items []T, page, limit int) *domain.PageResult[T] {
	total := len(items)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	data := []T{}
	if page <= totalPages {
		start := (page - 1) * limit
		end := min(start+limit, total)
		data = append(data, items[start:end]...)
	}

	return &domain.PageResult[T]{
		Data:        data,
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
