package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrTargetValueNotPositive = errors.New("objective target values must be larger than zero")
	ErrMultiplierNotPositive  = errors.New("objective multipliers must be larger than zero")
	ErrRelationNotUnique      = errors.New("the user already tracks this objective")
)
