package services

import (
	"context"
	"log"

	"resort-backend/repositories"
)

// readWithRetry runs an idempotent read and repeats it once when the store
// reports a transient fault. Writes must not go through here.
func readWithRetry[T any](ctx context.Context, op string, fn func() (T, error)) (T, error) {
	v, err := fn()
	if err == nil || !repositories.IsTransient(err) || ctx.Err() != nil {
		return v, storeErr(err)
	}
	log.Printf("⚠️ Retrying %s: %v", op, err)
	v, err = fn()
	return v, storeErr(err)
}
