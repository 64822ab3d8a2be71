package models

import "time"

// Tattoo is a portfolio item. Owner is assigned by the server at creation time
// and never changes afterwards; client-supplied owner values are untrusted input.
type Tattoo struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Design    string `json:"design" validate:"required,min=2,max=255"`
	Style     string `json:"style,omitempty" validate:"max=100"`
	Image     string `json:"image,omitempty"`
	Favorites int    `json:"favorites"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyPatch merges the mutable fields of patch into the stored tattoo. Owner
// and ID are immutable and are never taken from the patch.
func (t *Tattoo) ApplyPatch(patch Tattoo) {
	if patch.Design != "" {
		t.Design = patch.Design
	}

	if patch.Style != "" {
		t.Style = patch.Style
	}

	if patch.Image != "" {
		t.Image = patch.Image
	}

	if patch.Favorites != 0 {
		t.Favorites = patch.Favorites
	}
}
