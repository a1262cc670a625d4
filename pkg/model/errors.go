package model

import (
	"errors"
)

var (
	ErrAlreadyExists     = errors.New("object already exists")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSlotConflict      = errors.New("media slot conflicts with an existing slot")
)
