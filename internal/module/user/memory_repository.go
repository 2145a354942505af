package user

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sabasm/user/internal/domain"
)

// MemoryRepository implements domain.UserRepository with a process-local map.
// Stored users are never handed out directly: every method returns a copy.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string
}

var _ domain.UserRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*domain.User)}
}

// Create stores user. Creating an id that already exists replaces the stored
// user without changing its position in FindAll.
func (r *MemoryRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		r.order = append(r.order, user.ID)
	}
	r.users[user.ID] = user.Clone()
	return user.Clone(), nil
}

// Update merges update into the stored user and returns the result.
func (r *MemoryRepository) Update(_ context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	merged := existing.Clone()
	update.Apply(merged)
	if update.UpdatedAt == nil || !merged.UpdatedAt.After(existing.UpdatedAt) {
		merged.UpdatedAt = domain.NextTimestamp(existing.UpdatedAt, time.Now())
	}

	r.users[id] = merged
	return merged.Clone(), nil
}

// FindByID returns the user with the given id, or nil.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.users[id].Clone(), nil
}

// Delete removes the user with the given id and reports whether it existed.
func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true, nil
}

// FindAll returns the users matching filter in insertion order.
func (r *MemoryRepository) FindAll(_ context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.users[id]
		if matchesFilter(u, filter) {
			users = append(users, u.Clone())
		}
	}
	return users, nil
}

// matchesFilter applies the same field rules as the GORM filter scope.
func matchesFilter(u *domain.User, filter domain.UserFilter) bool {
	for key, value := range filter {
		like := strings.HasSuffix(key, "__like")
		field := strings.TrimSuffix(key, "__like")

		got, ok := fieldValue(u, field)
		if !ok {
			continue
		}
		if like {
			if !strings.Contains(strings.ToLower(got), strings.ToLower(value)) {
				return false
			}
		} else if got != value {
			return false
		}
	}
	return true
}

// fieldValue returns the value of a filterable column.
func fieldValue(u *domain.User, field string) (string, bool) {
	switch field {
	case "id":
		return u.ID, true
	case "username":
		return u.Username, true
	case "email":
		return u.Email, true
	case "phone_number":
		return u.PhoneNumber, true
	default:
		return "", false
	}
}
