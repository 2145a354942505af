package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sabasm/user/internal/domain"
)

// --- failing repository ---

// failingRepo returns err from every operation.
type failingRepo struct {
	err error
}

func (f *failingRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, f.err
}

func (f *failingRepo) Update(context.Context, string, domain.UserUpdate) (*domain.User, error) {
	return nil, f.err
}

func (f *failingRepo) FindByID(context.Context, string) (*domain.User, error) {
	return nil, f.err
}

func (f *failingRepo) Delete(context.Context, string) (bool, error) {
	return false, f.err
}

func (f *failingRepo) FindAll(context.Context, domain.UserFilter) ([]*domain.User, error) {
	return nil, f.err
}

// seedUsers adds n users named user01..userNN through svc.
func seedUsers(t *testing.T, svc domain.UserService, n int) []*domain.User {
	t.Helper()
	users := make([]*domain.User, 0, n)
	for i := 1; i <= n; i++ {
		u, err := svc.AddUser(context.Background(),
			fmt.Sprintf("user%02d", i),
			fmt.Sprintf("user%02d@example.com", i),
			fmt.Sprintf("555-01%02d", i),
			"")
		if err != nil {
			t.Fatalf("AddUser %d: %v", i, err)
		}
		users = append(users, u)
	}
	return users
}

// --- tests ---

func TestUserService_AddUser(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	ctx := context.Background()

	user, err := svc.AddUser(ctx, "alice", "alice@example.com", "555-0100", "")
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated ID")
	}
	if user.Username != "alice" || user.Email != "alice@example.com" || user.PhoneNumber != "555-0100" {
		t.Errorf("got %+v", user)
	}

	got, err := svc.GetUserByID(ctx, user.ID)
	if err != nil || got == nil {
		t.Fatalf("GetUserByID = %v, %v", got, err)
	}
	if got.Username != "alice" {
		t.Errorf("stored Username = %q; want alice", got.Username)
	}
}

func TestUserService_AddUser_ExplicitID(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())

	user, err := svc.AddUser(context.Background(), "bob", "bob@example.com", "", "custom-id")
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if user.ID != "custom-id" {
		t.Errorf("ID = %q; want custom-id", user.ID)
	}
}

func TestUserService_AddUser_AllowsDuplicateUsernames(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	ctx := context.Background()

	a, err := svc.AddUser(ctx, "same", "same@example.com", "", "")
	if err != nil {
		t.Fatalf("first AddUser: %v", err)
	}
	b, err := svc.AddUser(ctx, "same", "same@example.com", "", "")
	if err != nil {
		t.Fatalf("second AddUser: %v", err)
	}
	if a.ID == b.ID {
		t.Error("expected distinct IDs")
	}
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())

	got, err := svc.GetUserByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestUserService_UpdateUser_EmailOnly(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	ctx := context.Background()

	original, err := svc.AddUser(ctx, "alice", "alice@example.com", "555-0100", "")
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}

	updated, err := svc.UpdateUser(ctx, original.ID, domain.UserUpdate{Email: strPtr("new@example.com")})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated user, got nil")
	}
	if updated.Email != "new@example.com" {
		t.Errorf("Email = %q; want new@example.com", updated.Email)
	}
	if updated.Username != "alice" || updated.PhoneNumber != "555-0100" {
		t.Errorf("unspecified fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(original.UpdatedAt) {
		t.Errorf("UpdatedAt %v not after %v", updated.UpdatedAt, original.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", original.CreatedAt, updated.CreatedAt)
	}
}

func TestUserService_UpdateUser_EmptyStringOverwrites(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	ctx := context.Background()

	original, _ := svc.AddUser(ctx, "alice", "alice@example.com", "555-0100", "")

	updated, err := svc.UpdateUser(ctx, original.ID, domain.UserUpdate{PhoneNumber: strPtr("")})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.PhoneNumber != "" {
		t.Errorf("PhoneNumber = %q; want empty", updated.PhoneNumber)
	}
}

func TestUserService_UpdateUser_RepeatedUpdatesAdvance(t *testing.T) {
	svc := NewUserService(WithTimestamps(NewMemoryRepository()))
	ctx := context.Background()

	user, _ := svc.AddUser(ctx, "alice", "alice@example.com", "", "")
	prev := user.UpdatedAt
	for i := 0; i < 20; i++ {
		updated, err := svc.UpdateUser(ctx, user.ID, domain.UserUpdate{Username: strPtr(fmt.Sprintf("alice%d", i))})
		if err != nil {
			t.Fatalf("UpdateUser %d: %v", i, err)
		}
		if !updated.UpdatedAt.After(prev) {
			t.Fatalf("update %d: UpdatedAt %v not after %v", i, updated.UpdatedAt, prev)
		}
		prev = updated.UpdatedAt
	}
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())

	got, err := svc.UpdateUser(context.Background(), "missing", domain.UserUpdate{Email: strPtr("x@example.com")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	ctx := context.Background()

	user, _ := svc.AddUser(ctx, "alice", "alice@example.com", "", "")

	deleted, err := svc.DeleteUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !deleted {
		t.Error("expected true for existing user")
	}

	deleted, err = svc.DeleteUser(ctx, "nonexistent-id")
	if err != nil {
		t.Fatalf("DeleteUser missing: %v", err)
	}
	if deleted {
		t.Error("expected false for missing user")
	}
}

func TestUserService_GetAllUsers_Pages(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	users := seedUsers(t, svc, 5)

	tests := []struct {
		name        string
		page, limit int
		wantIDs     []string
		totalPages  int
		hasNext     bool
		hasPrevious bool
	}{
		{"first page", 1, 2, []string{users[0].ID, users[1].ID}, 3, true, false},
		{"middle page", 2, 2, []string{users[2].ID, users[3].ID}, 3, true, true},
		{"last partial page", 3, 2, []string{users[4].ID}, 3, false, true},
		{"beyond last page", 4, 2, nil, 3, false, true},
		{"single page", 1, 10, []string{users[0].ID, users[1].ID, users[2].ID, users[3].ID, users[4].ID}, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetAllUsers(context.Background(), domain.PageParams{Page: tt.page, Limit: tt.limit})
			if err != nil {
				t.Fatalf("GetAllUsers: %v", err)
			}
			if result.Total != 5 {
				t.Errorf("Total = %d; want 5", result.Total)
			}
			if result.Page != tt.page || result.Limit != tt.limit {
				t.Errorf("Page/Limit = %d/%d; want %d/%d", result.Page, result.Limit, tt.page, tt.limit)
			}
			if result.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d; want %d", result.TotalPages, tt.totalPages)
			}
			if result.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v; want %v", result.HasNext, tt.hasNext)
			}
			if result.HasPrevious != tt.hasPrevious {
				t.Errorf("HasPrevious = %v; want %v", result.HasPrevious, tt.hasPrevious)
			}
			if result.Data == nil {
				t.Fatal("Data should never be nil")
			}
			if len(result.Data) != len(tt.wantIDs) {
				t.Fatalf("len(Data) = %d; want %d", len(result.Data), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if result.Data[i].ID != id {
					t.Errorf("Data[%d].ID = %q; want %q", i, result.Data[i].ID, id)
				}
			}
		})
	}
}

func TestUserService_GetAllUsers_Empty(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())

	result, err := svc.GetAllUsers(context.Background(), domain.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if len(result.Data) != 0 || result.Data == nil {
		t.Errorf("Data = %v; want empty non-nil", result.Data)
	}
	if result.Total != 0 || result.TotalPages != 0 {
		t.Errorf("Total/TotalPages = %d/%d; want 0/0", result.Total, result.TotalPages)
	}
	if result.HasNext || result.HasPrevious {
		t.Errorf("HasNext/HasPrevious = %v/%v; want false/false", result.HasNext, result.HasPrevious)
	}
}

func TestUserService_GetAllUsers_InvalidParams(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())

	tests := []struct {
		name    string
		params  domain.PageParams
		wantMsg string
	}{
		{"zero page", domain.PageParams{Page: 0, Limit: 10}, "Page must be greater than 0"},
		{"negative page", domain.PageParams{Page: -1, Limit: 10}, "Page must be greater than 0"},
		{"zero limit", domain.PageParams{Page: 1, Limit: 0}, "Limit must be greater than 0"},
		{"both invalid reports page", domain.PageParams{Page: 0, Limit: 0}, "Page must be greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetAllUsers(context.Background(), tt.params)
			if result != nil {
				t.Errorf("expected nil result, got %+v", result)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var appErr *domain.AppError
			if !errors.As(err, &appErr) || appErr.Message != tt.wantMsg {
				t.Errorf("message = %q; want %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestUserService_GetAllUsers_Filter(t *testing.T) {
	svc := NewUserService(NewMemoryRepository())
	seedUsers(t, svc, 12)

	result, err := svc.GetAllUsers(context.Background(), domain.PageParams{
		Page:   1,
		Limit:  5,
		Filter: domain.UserFilter{"username__like": "user1"},
	})
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("Total = %d; want 3 (user10..user12)", result.Total)
	}
}

func TestUserService_RepositoryErrorsPropagate(t *testing.T) {
	boom := errors.New("storage offline")
	svc := NewUserService(&failingRepo{err: boom})
	ctx := context.Background()

	if _, err := svc.AddUser(ctx, "a", "b", "c", ""); !errors.Is(err, boom) {
		t.Errorf("AddUser err = %v", err)
	}
	if _, err := svc.GetUserByID(ctx, "x"); !errors.Is(err, boom) {
		t.Errorf("GetUserByID err = %v", err)
	}
	if _, err := svc.UpdateUser(ctx, "x", domain.UserUpdate{}); !errors.Is(err, boom) {
		t.Errorf("UpdateUser err = %v", err)
	}
	if _, err := svc.DeleteUser(ctx, "x"); !errors.Is(err, boom) {
		t.Errorf("DeleteUser err = %v", err)
	}
	if _, err := svc.GetAllUsers(ctx, domain.PageParams{Page: 1, Limit: 1}); !errors.Is(err, boom) {
		t.Errorf("GetAllUsers err = %v", err)
	}
}

func TestPaginate_LargeValues(t *testing.T) {
	items := []int{1, 2, 3}
	maxInt := int(^uint(0) >> 1)

	result := paginate(items, maxInt, maxInt)
	if len(result.Data) != 0 {
		t.Errorf("len(Data) = %d; want 0", len(result.Data))
	}
	if result.TotalPages != 1 {
		t.Errorf("TotalPages = %d; want 1", result.TotalPages)
	}
	if result.HasNext {
		t.Error("HasNext should be false")
	}
}
