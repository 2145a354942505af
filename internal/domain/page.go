package domain

// PageParams holds 1-based pagination parameters and an optional filter.
type PageParams struct {
	Page   int
	Limit  int
	Filter UserFilter
}

// PageResult is one page of a larger result set.
type PageResult[T any] struct {
	Data        []T  `json:"data"`
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}
