// internal/api/types/response.go
package types

// ListResponse wraps list endpoints in a data envelope.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}
