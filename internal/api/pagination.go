package api

// Page is the paginated body the list and search endpoints return under the
// response envelope.
type Page[T any] struct {
	Results  []T     `json:"results"`
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// HasNext reports whether a next page link is present.
func (p *Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// HasPrevious reports whether a previous page link is present.
func (p *Page[T]) HasPrevious() bool {
	return p.Previous != nil && *p.Previous != ""
}
