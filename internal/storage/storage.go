package storage

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrDayNotFound      = errors.New("day not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrTableNotFound    = errors.New("table not found")
)
