package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidName   = errors.New("invalid name")
	ErrNameConflict  = errors.New("name conflict")
	ErrInvalidBackup = errors.New("invalid backup")
	ErrUnknownFormat = errors.New("unknown format")
)
