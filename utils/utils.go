// Package utils provides small shared helpers
package utils

// ToPtr returns a pointer to the given value
func ToPtr[T any](v T) *T {
	return &v
}
