package library

import "errors"

var (
	ErrDuplicateResident  = errors.New("resident already exists")
	ErrResidentNotFound   = errors.New("resident not found")
	ErrInvalidKey         = errors.New("invalid key material")
	ErrSignatureFailure   = errors.New("signature failure")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidWallet      = errors.New("invalid wallet reference")
	ErrInvalidAmount      = errors.New("invalid amount")
)
