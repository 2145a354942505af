package pkg

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sabasm/user/internal/domain"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// reservedParams lists query parameter names used for pagination, not for filtering.
var reservedParams = map[string]bool{
	"page":  true,
	"limit": true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePageParams extracts pagination and filtering parameters from query params.
// Missing values take defaults and limit is capped at maxLimit. Values below 1
// are passed through so the service can reject them.
func ParsePageParams(c *gin.Context) (domain.PageParams, error) {
	page, err := queryInt(c, "page", defaultPage)
	if err != nil {
		return domain.PageParams{}, err
	}

	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil {
		return domain.PageParams{}, err
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := make(domain.UserFilter)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.PageParams{
		Page:   page,
		Limit:  limit,
		Filter: filter,
	}, nil
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewAppError(domain.CodeValidation, key+" must be an integer", nil)
	}
	return n, nil
}

// Filter returns a GORM scope that applies WHERE conditions for the given filters.
// Only filter keys present in the allowed list are applied; others are silently ignored.
// Keys ending with "__like" produce a case-insensitive substring match in which
// '%', '_' and '\' in the value match literally; others use exact match.
func Filter(filter map[string]string, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range filter {
			// Check for __like suffix.
			if strings.HasSuffix(key, "__like") {
				field := strings.TrimSuffix(key, "__like")
				if !validFieldName.MatchString(field) {
					continue
				}
				if !isAllowed(field, allowed) {
					continue
				}
				db = db.Where("LOWER("+field+") LIKE LOWER(?) ESCAPE '\\'", "%"+escapeLike(value)+"%")
			} else {
				if !validFieldName.MatchString(key) {
					continue
				}
				if !isAllowed(key, allowed) {
					continue
				}
				db = db.Where(key+" = ?", value)
			}
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// isAllowed checks if a field name is in the allowed list.
func isAllowed(field string, allowed []string) bool {
	return slices.Contains(allowed, field)
}
