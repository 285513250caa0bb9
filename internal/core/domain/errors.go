package domain

import "errors"

var (
	ErrInvalidRestaurant = errors.New("restaurant is not on the ballot")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrSessionNotFound   = errors.New("session not found")
	ErrStoreUnavailable  = errors.New("vote store unavailable")
	ErrInternal          = errors.New("internal server error")
)
