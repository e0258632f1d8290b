package utils

import "strings"

func Ptr[T any](v T) *T {
	return &v
}

// OrZero dereferences p, falling back to the zero value on nil.
func OrZero[T comparable](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// StringOrNil returns nil for an empty or all-whitespace string.
func StringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
