package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPatchMergesMutableFields(t *testing.T) {
	tattoo := Tattoo{
		ID:     "t1",
		Owner:  "u1",
		Design: "Original",
		Style:  "linework",
	}

	tattoo.ApplyPatch(Tattoo{Design: "Patched"})

	assert.Equal(t, "Patched", tattoo.Design)
	assert.Equal(t, "linework", tattoo.Style)
}

func TestApplyPatchNeverTouchesIdentity(t *testing.T) {
	tattoo := Tattoo{ID: "t1", Owner: "u1", Design: "Fixed"}

	tattoo.ApplyPatch(Tattoo{ID: "forged", Owner: "intruder", Style: "new-school"})

	assert.Equal(t, "t1", tattoo.ID)
	assert.Equal(t, "u1", tattoo.Owner)
	assert.Equal(t, "new-school", tattoo.Style)
}
