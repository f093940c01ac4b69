package services

import (
	"context"
	"errors"
	"fmt"

	"resort-backend/repositories"
)

// Booking decision failures. Callers render these as rejections.
var (
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrConfiguration       = errors.New("resource configuration error")
)

var (
	ErrTimeout                 = errors.New("store timeout")
	ErrNotFound                = errors.New("not found")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
)

// storeErr surfaces store timeouts and expired contexts as ErrTimeout and
// leaves every other error untouched.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(err, repositories.ErrStoreTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// notFound maps a repository miss onto target, keeping other errors.
func notFound(err error, target error, format string, args ...any) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s", target, fmt.Sprintf(format, args...))
	}
	return storeErr(err)
}
