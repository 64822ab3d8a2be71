package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	m "inkfolio/internal/models"
	r "inkfolio/internal/repositories"
	s "inkfolio/internal/shared"
)

// TattooRequest is the payload for creating a tattoo. The owner field is
// accepted for wire compatibility but never trusted; ownership is always
// assigned server-side from the authenticated path.
type TattooRequest struct {
	Owner  string `json:"owner,omitempty"`
	Design string `json:"design" validate:"required,min=2,max=255"`
	Style  string `json:"style,omitempty" validate:"max=100"`
	Image  string `json:"image,omitempty"`
}

// TattooPatch is the payload for updating a tattoo. All fields are optional;
// a claimed owner differing from the stored owner is rejected.
type TattooPatch struct {
	Owner  string `json:"owner,omitempty"`
	Design string `json:"design,omitempty" validate:"omitempty,min=2,max=255"`
	Style  string `json:"style,omitempty" validate:"max=100"`
	Image  string `json:"image,omitempty"`
}

// TattooService coordinates the tattoo lifecycle across the two stores: every
// mutation writes the tattoo store first and the owner's portfolio second.
// The two writes are not atomic; when the second one fails the error comes
// back as PartialWriteError so the divergence is visible to operators.
type TattooService struct {
	users   r.UserStore
	tattoos r.TattooStore
	metrics *s.AppMetrics
}

func NewTattooService(users r.UserStore, tattoos r.TattooStore, metrics *s.AppMetrics) *TattooService {
	return &TattooService{users: users, tattoos: tattoos, metrics: metrics}
}

func (t *TattooService) ListTattoos(ctx context.Context) ([]m.Tattoo, error) {
	return t.tattoos.List(ctx)
}

func (t *TattooService) GetTattoo(ctx context.Context, id string) (m.Tattoo, error) {
	return t.tattoos.Get(ctx, id)
}

// CreateTattoo persists a new tattoo under ownerID and appends it to the
// owner's portfolio. A tattoo-store failure aborts with no user mutation.
func (t *TattooService) CreateTattoo(ctx context.Context, ownerID string, params TattooRequest) (m.User, error) {
	owner, err := t.users.Get(ctx, ownerID)

	if err != nil {
		return m.User{}, err
	}

	if err := s.Validator.Struct(params); err != nil {
		return m.User{}, fmt.Errorf("%w: %w", m.ErrValidation, err)
	}

	created, err := t.tattoos.Create(ctx, m.Tattoo{
		Owner:  owner.ID,
		Design: params.Design,
		Style:  params.Style,
		Image:  params.Image,
	})

	if err != nil {
		return m.User{}, err
	}

	owner.AttachToPortfolio(created.ID)

	updated, err := t.users.Update(ctx, owner.ID, owner)

	if err != nil {
		return m.User{}, t.partialWrite("tattoo.create", created.ID, err)
	}

	return updated, nil
}

// UpdateTattoo patches a tattoo after checking authority against the STORED
// owner field, never against the caller-claimed one. The portfolio entry is
// re-appended through a persisted remove-then-append so it never duplicates.
func (t *TattooService) UpdateTattoo(ctx context.Context, requestedOwnerID, tattooID string, params TattooPatch) (m.User, error) {
	owner, err := t.users.Get(ctx, requestedOwnerID)

	if err != nil {
		return m.User{}, err
	}

	stored, err := t.tattoos.Get(ctx, tattooID)

	if err != nil {
		return m.User{}, err
	}

	if err := t.authorize(stored, owner.ID, params.Owner); err != nil {
		return m.User{}, err
	}

	if err := s.Validator.Struct(params); err != nil {
		return m.User{}, fmt.Errorf("%w: %w", m.ErrValidation, err)
	}

	stored.ApplyPatch(m.Tattoo{
		Design: params.Design,
		Style:  params.Style,
		Image:  params.Image,
	})

	if _, err := t.tattoos.Update(ctx, tattooID, stored); err != nil {
		return m.User{}, err
	}

	owner.AttachToPortfolio(tattooID)

	updated, err := t.users.Update(ctx, owner.ID, owner)

	if err != nil {
		return m.User{}, t.partialWrite("tattoo.update", tattooID, err)
	}

	return updated, nil
}

// DeleteTattoo removes a tattoo and detaches it from the owner's portfolio,
// persisting the filtered list.
func (t *TattooService) DeleteTattoo(ctx context.Context, requestedOwnerID, tattooID, claimedOwner string) (m.User, error) {
	owner, err := t.users.Get(ctx, requestedOwnerID)

	if err != nil {
		return m.User{}, err
	}

	stored, err := t.tattoos.Get(ctx, tattooID)

	if err != nil {
		return m.User{}, err
	}

	if err := t.authorize(stored, owner.ID, claimedOwner); err != nil {
		return m.User{}, err
	}

	if err := t.tattoos.Delete(ctx, tattooID); err != nil {
		return m.User{}, err
	}

	owner.DetachFromPortfolio(tattooID)

	updated, err := t.users.Update(ctx, owner.ID, owner)

	if err != nil {
		return m.User{}, t.partialWrite("tattoo.delete", tattooID, err)
	}

	return updated, nil
}

// authorize resolves authority from the stored tattoo. The claimed owner from
// the payload is checked as untrusted input; it can only reject, never grant.
func (t *TattooService) authorize(stored m.Tattoo, requestedOwnerID, claimedOwner string) error {
	if stored.Owner != requestedOwnerID {
		return fmt.Errorf("tattoo %s is not owned by user %s: %w", stored.ID, requestedOwnerID, m.ErrOwnershipMismatch)
	}

	if claimedOwner != "" && claimedOwner != stored.Owner {
		return fmt.Errorf("claimed owner %s differs from stored owner: %w", claimedOwner, m.ErrOwnershipMismatch)
	}

	return nil
}

func (t *TattooService) partialWrite(op, tattooID string, err error) error {
	log.Error().Err(err).Str("op", op).Str("tattoo", tattooID).Msg("Portfolio write failed after tattoo store commit")

	if t.metrics != nil {
		t.metrics.RecordPartialWrite(op)
	}

	return &m.PartialWriteError{Op: op, Err: err}
}
