package repository

import "errors"

var (
	// ErrSessionNotFound is returned when a visitor has no stored quiz session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionConflict is returned when concurrent writers keep racing on
	// the same quiz session.
	ErrSessionConflict = errors.New("quiz session update conflict")
)
