// Package repositories holds what every repository shares: the sentinel
// errors stores return and bridges map onto HTTP statuses.
package repositories

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
