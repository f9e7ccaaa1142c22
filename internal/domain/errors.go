package domain

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNegativeMagnitude = errors.New("boost magnitude must not be negative")
	ErrNegativeAmount    = errors.New("award amount must not be negative")
)
