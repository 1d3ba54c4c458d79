package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUserExists         = errors.New("user already exists")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenExists        = errors.New("token already issued")
	ErrUnauthorized       = errors.New("unauthorized")
)
