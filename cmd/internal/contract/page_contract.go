package contract

import "secretaria/cmd/internal/listing"

// PageResponse wraps a listing page. Message is only set when the list is empty.
type PageResponse[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	Sort       string `json:"sort"`
	Direction  string `json:"direction"`
	Message    string `json:"message,omitempty"`
}

func NewPageResponse[T any](p listing.Page[T], sort string, dir listing.Direction) *PageResponse[T] {
	resp := &PageResponse[T]{
		Items:      p.Items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		Sort:       sort,
		Direction:  dir.String(),
	}

	if len(p.Items) == 0 {
		resp.Message = listing.EmptyMessage
	}
	return resp
}
