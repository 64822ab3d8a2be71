package repositories

import (
	"context"

	m "inkfolio/internal/models"
)

// Store is the persistence contract every collection satisfies. No call is
// atomic with respect to any other call; callers that touch two stores get the
// partial-failure semantics documented in the services layer.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, record T) (T, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Store[m.User]
	GetByName(ctx context.Context, name string) (m.User, error)
}

type TattooStore interface {
	Store[m.Tattoo]
}
