package domain

import "errors"

var (
	ErrInsufficientData = errors.New("insufficient data: fewer than 2 usable quotes")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrResultNotFound   = errors.New("arbitrage result not found")
)
