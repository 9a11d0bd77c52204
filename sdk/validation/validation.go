// Package validation holds small helpers for optional values and for strict
// type checks on loosely typed JSON input.
package validation

func StringPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}
