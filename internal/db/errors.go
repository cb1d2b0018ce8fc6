package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrRunNotFound  = errors.New("upload run not found")
)
