package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sabasm/user/internal/domain"
	"github.com/sabasm/user/internal/pkg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Allowed fields for filtering in FindAll queries.
var allowedFilterFields = []string{"id", "username", "email", "phone_number"}

// replaceOnConflict turns an insert of an existing id into a full replacement
// of the stored row.
var replaceOnConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "id"}},
	DoUpdates: clause.AssignmentColumns([]string{"username", "email", "phone_number", "created_at", "updated_at"}),
}

// GormRepository implements domain.UserRepository using GORM.
type GormRepository struct {
	db *gorm.DB
}

var _ domain.UserRepository = (*GormRepository)(nil)

// NewGormRepository creates a new GormRepository backed by the given GORM database.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create inserts user. Creating an id that already exists replaces the stored
// row.
func (r *GormRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.db.WithContext(ctx).Clauses(replaceOnConflict).Create(user).Error; err != nil {
		return nil, mapError(err)
	}
	return user.Clone(), nil
}

// Update writes the set fields of update to the row with the given id and
// returns the row as stored. A missing row yields nil.
func (r *GormRepository) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	var updated *domain.User
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(&domain.User{}).Where("id = ?", id).Updates(updateColumns(update)).Error; err != nil {
			return err
		}
		u, err := findByID(tx, id)
		if err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// FindByID retrieves a user by its primary key, or nil.
func (r *GormRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := findByID(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// Delete removes a user by ID and reports whether a row was affected.
func (r *GormRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if result.Error != nil {
		return false, mapError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FindAll returns every user matching filter, oldest first.
func (r *GormRepository) FindAll(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	users := make([]*domain.User, 0)
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(pkg.Filter(filter, allowedFilterFields)).
		Order("created_at asc").
		Order("id asc").
		Find(&users).Error; err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

func findByID(db *gorm.DB, id string) (*domain.User, error) {
	var user domain.User
	err := db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// updateColumns converts update into a column map. updated_at is always set.
func updateColumns(update domain.UserUpdate) map[string]any {
	cols := make(map[string]any, 4)
	if update.Username != nil {
		cols["username"] = *update.Username
	}
	if update.Email != nil {
		cols["email"] = *update.Email
	}
	if update.PhoneNumber != nil {
		cols["phone_number"] = *update.PhoneNumber
	}
	if update.UpdatedAt != nil {
		cols["updated_at"] = *update.UpdatedAt
	} else {
		cols["updated_at"] = time.Now()
	}
	return cols
}

// mapError converts GORM errors to domain errors: unique violations match
// domain.ErrAlreadyExists and everything else domain.ErrInternal. The original
// error stays reachable through errors.Is and errors.As.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.ErrAlreadyExists.Code, domain.ErrAlreadyExists.Message, err)
	}
	return domain.NewAppError(domain.ErrInternal.Code, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
