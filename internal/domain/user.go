package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system.
type User struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Username    string    `gorm:"size:255;not null" json:"username"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	PhoneNumber string    `gorm:"size:64;not null" json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserOption overrides a default applied by NewUser.
type UserOption func(*User)

// WithID sets the user ID instead of generating one. An empty id is ignored.
func WithID(id string) UserOption {
	return func(u *User) {
		if id != "" {
			u.ID = id
		}
	}
}

// WithCreatedAt sets the creation time. A zero time is ignored.
func WithCreatedAt(t time.Time) UserOption {
	return func(u *User) {
		if !t.IsZero() {
			u.CreatedAt = t
		}
	}
}

// WithUpdatedAt sets the last-modified time. A zero time is ignored.
func WithUpdatedAt(t time.Time) UserOption {
	return func(u *User) {
		if !t.IsZero() {
			u.UpdatedAt = t
		}
	}
}

// NewUser builds a User. Without options the ID is a random UUID and both
// timestamps are the current time.
func NewUser(username, email, phoneNumber string, opts ...UserOption) *User {
	now := time.Now()
	u := &User{
		Username:    username,
		Email:       email,
		PhoneNumber: phoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.UpdatedAt.Before(u.CreatedAt) {
		u.UpdatedAt = u.CreatedAt
	}
	return u
}

// UserData is the plain, partial projection of a User exchanged at storage
// and transport boundaries. Nil fields are absent.
type UserData struct {
	ID          *string    `json:"id,omitempty"`
	Username    *string    `json:"username,omitempty"`
	Email       *string    `json:"email,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// FromData rebuilds a User from a partial projection. Missing strings become
// empty and missing id or timestamps are defaulted as in NewUser.
func FromData(data UserData) *User {
	var opts []UserOption
	if data.ID != nil {
		opts = append(opts, WithID(*data.ID))
	}
	if data.CreatedAt != nil {
		opts = append(opts, WithCreatedAt(*data.CreatedAt))
	}
	if data.UpdatedAt != nil {
		opts = append(opts, WithUpdatedAt(*data.UpdatedAt))
	}
	return NewUser(deref(data.Username), deref(data.Email), deref(data.PhoneNumber), opts...)
}

// ToData returns the full projection of u.
func (u *User) ToData() UserData {
	id, username, email, phone := u.ID, u.Username, u.Email, u.PhoneNumber
	createdAt, updatedAt := u.CreatedAt, u.UpdatedAt
	return UserData{
		ID:          &id,
		Username:    &username,
		Email:       &email,
		PhoneNumber: &phone,
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
	}
}

// UpdateTimestamp sets UpdatedAt to the current time. The new value is always
// strictly later than the previous one, even on a coarse clock.
func (u *User) UpdateTimestamp() {
	u.UpdatedAt = NextTimestamp(u.UpdatedAt, time.Now())
}

// Details returns a human-readable summary of the user.
func (u *User) Details() string {
	return fmt.Sprintf("User: %s, Email: %s, Phone: %s", u.Username, u.Email, u.PhoneNumber)
}

// Clone returns a detached copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// NextTimestamp returns now, or the microsecond after prev when now does not
// land on a later microsecond. Postgres keeps microseconds, so a smaller bump
// would be lost on a round trip.
func NextTimestamp(prev, now time.Time) time.Time {
	p := prev.Truncate(time.Microsecond)
	if now.Truncate(time.Microsecond).After(p) {
		return now
	}
	return p.Add(time.Microsecond)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UserUpdate carries a partial update. Nil fields are left unchanged.
type UserUpdate struct {
	Username    *string
	Email       *string
	PhoneNumber *string
	UpdatedAt   *time.Time
}

// Apply copies the set fields of p onto u.
func (p UserUpdate) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.UpdatedAt != nil {
		u.UpdatedAt = *p.UpdatedAt
	}
}

// UserFilter holds optional field conditions for FindAll. A key names a
// column for exact match, or a column followed by "__like" for a substring
// match. Unknown keys are ignored.
type UserFilter map[string]string

// UserRepository defines the data access interface for users.
//
// Absence is not an error: Update and FindByID return a nil user and Delete
// returns false when no user has the given id.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*User, error)
}

// UserService defines the business logic interface for users.
type UserService interface {
	AddUser(ctx context.Context, username, email, phoneNumber, id string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, update UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
	GetAllUsers(ctx context.Context, params PageParams) (*PageResult[*User], error)
}
