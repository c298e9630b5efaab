package query

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownInclude is returned if a query is asked to eagerly load a relation it does not know
var ErrUnknownInclude = errors.New("unknown include")

// UnknownIncludeError wraps ErrUnknownInclude with the offending relation path
func UnknownIncludeError(include Include) error {
	return fmt.Errorf("%w: %s", ErrUnknownInclude, include)
}

// Loader eagerly loads a relation into a batch of already materialized records.
// A loader has to issue a bounded amount of queries for the whole batch, never one per record.
type Loader[T any] func(ctx context.Context, records []T) error

// Loaders maps the relation paths of an entity to their loaders
type Loaders[T any] map[Include]Loader[T]

// Load runs the loaders of the given includes in order.
// Duplicate includes are loaded once.
func (loaders Loaders[T]) Load(ctx context.Context, records []T, includes []Include) error {
	if len(records) == 0 {
		return nil
	}
	done := make(map[Include]struct{}, len(includes))
	for _, include := range includes {
		if _, ok := done[include]; ok {
			continue
		}
		loader, ok := loaders[include]
		if !ok {
			return UnknownIncludeError(include)
		}
		if err := loader(ctx, records); err != nil {
			return err
		}
		done[include] = struct{}{}
	}
	return nil
}

// Validate reports the first include no loader is registered for
func (loaders Loaders[T]) Validate(includes []Include) error {
	for _, include := range includes {
		if _, ok := loaders[include]; !ok {
			return UnknownIncludeError(include)
		}
	}
	return nil
}
