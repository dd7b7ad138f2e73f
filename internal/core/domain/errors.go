package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// ForbiddenError carries a caller-safe reason for a 403, such as a setup key
// mismatch. errors.Is(err, ErrForbidden) matches it.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// ConflictError reports a uniqueness violation, either from the pre-insert
// check or translated from the database's unique index. The flags record
// which registration constraint fired; Field is set for staff accounts.
type ConflictError struct {
	Email      bool
	NationalID bool
	Field      string
}

func (e *ConflictError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("An account with this %s already exists.", e.Field)
	case e.Email && e.NationalID:
		return "A player with this email and national ID number already exists."
	case e.Email:
		return "A player with this email already exists."
	default:
		return "A player with this national ID number already exists."
	}
}
