package redis

import (
	"errors"
	"fmt"

	"github.com/phrazzld/cunningbot/internal/redact"
	"github.com/phrazzld/cunningbot/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// MapError maps a Redis error to an appropriate store error.
// notFound is returned (wrapped) for redis.Nil; any other error becomes a
// StoreError whose message is scrubbed of credentials.
func MapError(err error, entity, operation string, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, goredis.Nil) {
		if notFound == nil {
			notFound = store.ErrNotFound
		}
		return notFound
	}

	// Domain and store sentinels pass through unchanged.
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrDuplicate) ||
		errors.Is(err, store.ErrConflict) || errors.Is(err, store.ErrInvalidEntity) {
		return err
	}

	return store.NewStoreError(entity, operation, "redis error", errors.New(redact.Error(err)))
}

func decodeError(entity string, err error) error {
	return fmt.Errorf("%w: corrupt %s record: %v", store.ErrInvalidEntity, entity, err)
}
