package reference

import "context"

// Source fetches one reference list.
type Source interface {
	Fetch(ctx context.Context, entity Entity) ([]Item, error)
}
