package models

import (
	"slices"
	"time"
)

// User owns a portfolio of tattoo ids and keeps a separate favorites list.
// Portfolio entries must reference tattoos whose Owner is this user; favorites
// may reference any tattoo.
type User struct {
	ID                string `json:"id"`
	Name              string `json:"name" validate:"required,min=2,max=100"`
	Email             string `json:"email" validate:"required,email,max=255"`
	EncryptedPassword string `json:"-"`
	Image             string `json:"image,omitempty"`
	Portfolio         []string
	Favorites         []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AttachToPortfolio removes any stale occurrence of tattooID before appending,
// so the portfolio never holds duplicate references to the same tattoo.
func (u *User) AttachToPortfolio(tattooID string) {
	u.DetachFromPortfolio(tattooID)
	u.Portfolio = append(u.Portfolio, tattooID)
}

func (u *User) DetachFromPortfolio(tattooID string) {
	u.Portfolio = slices.DeleteFunc(slices.Clone(u.Portfolio), func(id string) bool {
		return id == tattooID
	})
}

func (u *User) AddFavorite(tattooID string) {
	if slices.Contains(u.Favorites, tattooID) {
		return
	}

	u.Favorites = append(u.Favorites, tattooID)
}

func (u *User) RemoveFavorite(tattooID string) {
	u.Favorites = slices.DeleteFunc(slices.Clone(u.Favorites), func(id string) bool {
		return id == tattooID
	})
}
