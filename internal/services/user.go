package services

import (
	"context"
	"errors"
	"slices"

	"github.com/rs/zerolog/log"

	m "inkfolio/internal/models"
	r "inkfolio/internal/repositories"
	s "inkfolio/internal/shared"
)

// UserService owns the user-side relationship state: the favorites list and
// account deletion. Favoriting touches the tattoo store too (the per-tattoo
// counter), with the same sequential-write caveats as the tattoo lifecycle.
type UserService struct {
	users   r.UserStore
	tattoos r.TattooStore
	metrics *s.AppMetrics
}

func NewUserService(users r.UserStore, tattoos r.TattooStore, metrics *s.AppMetrics) *UserService {
	return &UserService{users: users, tattoos: tattoos, metrics: metrics}
}

func (u *UserService) ListUsers(ctx context.Context) ([]m.User, error) {
	return u.users.List(ctx)
}

func (u *UserService) GetUser(ctx context.Context, id string) (m.User, error) {
	return u.users.Get(ctx, id)
}

// AddFavorite appends tattooID to the user's favorites, deduplicated: marking
// an already-favorited tattoo is a no-op, not an error.
func (u *UserService) AddFavorite(ctx context.Context, userID, tattooID string) (m.User, error) {
	user, err := u.users.Get(ctx, userID)

	if err != nil {
		return m.User{}, err
	}

	tattoo, err := u.tattoos.Get(ctx, tattooID)

	if err != nil {
		return m.User{}, err
	}

	if slices.Contains(user.Favorites, tattooID) {
		return user, nil
	}

	user.AddFavorite(tattooID)

	updated, err := u.users.Update(ctx, userID, user)

	if err != nil {
		return m.User{}, err
	}

	tattoo.Favorites++

	if _, err := u.tattoos.Update(ctx, tattooID, tattoo); err != nil {
		return m.User{}, u.partialWrite("favorite.add", tattooID, err)
	}

	return updated, nil
}

// RemoveFavorite removes every occurrence of tattooID from the favorites
// list. Removing an absent favorite succeeds without touching the stores.
func (u *UserService) RemoveFavorite(ctx context.Context, userID, tattooID string) (m.User, error) {
	user, err := u.users.Get(ctx, userID)

	if err != nil {
		return m.User{}, err
	}

	if !slices.Contains(user.Favorites, tattooID) {
		return user, nil
	}

	user.RemoveFavorite(tattooID)

	updated, err := u.users.Update(ctx, userID, user)

	if err != nil {
		return m.User{}, err
	}

	tattoo, err := u.tattoos.Get(ctx, tattooID)

	if err != nil {
		// The tattoo may have been deleted since it was favorited; the list
		// entry was stale and removing it is the whole point.
		if errors.Is(err, m.ErrNotFound) {
			return updated, nil
		}

		return m.User{}, u.partialWrite("favorite.remove", tattooID, err)
	}

	if tattoo.Favorites > 0 {
		tattoo.Favorites--
	}

	if _, err := u.tattoos.Update(ctx, tattooID, tattoo); err != nil {
		return m.User{}, u.partialWrite("favorite.remove", tattooID, err)
	}

	return updated, nil
}

// DeleteUser removes the account. Owned tattoos are NOT cascade-deleted;
// their owner reference dangles, which is documented behavior.
func (u *UserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := u.users.Get(ctx, userID)

	if err != nil {
		return err
	}

	if len(user.Portfolio) > 0 {
		log.Warn().Str("user", userID).Int("tattoos", len(user.Portfolio)).
			Msg("Deleting account leaves owned tattoos orphaned")
	}

	return u.users.Delete(ctx, userID)
}

func (u *UserService) partialWrite(op, tattooID string, err error) error {
	log.Error().Err(err).Str("op", op).Str("tattoo", tattooID).Msg("Tattoo counter write failed after favorites commit")

	if u.metrics != nil {
		u.metrics.RecordPartialWrite(op)
	}

	return &m.PartialWriteError{Op: op, Err: err}
}
