package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOwnerValidate(t *testing.T) {
	customerID := uint(1)
	token := "v1"
	empty := ""

	tests := []struct {
		name    string
		owner   Owner
		wantErr bool
	}{
		{"customer only", Owner{CustomerID: &customerID}, false},
		{"visitor only", Owner{VisitorID: &token}, false},
		{"neither", Owner{}, true},
		{"both", Owner{CustomerID: &customerID, VisitorID: &token}, true},
		{"empty visitor token counts as unset", Owner{VisitorID: &empty}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.owner.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOwner)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOwnerConstructors(t *testing.T) {
	assert.NoError(t, CustomerOwner(7).Validate())
	assert.NoError(t, VisitorOwner("v7").Validate())
	assert.True(t, VisitorOwner("").IsZero())
	assert.False(t, CustomerOwner(0).IsZero())
}

func TestViewDateOf_UsesUTCDay(t *testing.T) {
	// 23:30 in UTC+3 is still 20:30 UTC the same day.
	loc := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2026, 8, 29, 23, 30, 0, 0, loc)
	assert.Equal(t, "2026-08-29", ViewDateOf(local))

	// 01:30 in UTC+3 belongs to the previous UTC day.
	early := time.Date(2026, 8, 29, 1, 30, 0, 0, loc)
	assert.Equal(t, "2026-08-28", ViewDateOf(early))
}
