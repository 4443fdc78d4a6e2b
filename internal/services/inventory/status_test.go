package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		min      int
		expected Status
	}{
		{"empty", 0, 15, StatusOutOfStock},
		{"empty with zero minimum", 0, 0, StatusOutOfStock},
		{"below minimum", 8, 15, StatusLowStock},
		{"at minimum", 15, 15, StatusLowStock},
		{"above minimum", 16, 15, StatusInStock},
		{"zero minimum", 1, 0, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveStatus(tt.current, tt.min))
		})
	}
}

func TestDeriveStatus_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := rapid.IntRange(0, 100000).Draw(t, "current")
		min := rapid.IntRange(0, 100000).Draw(t, "min")

		got := DeriveStatus(current, min)

		switch {
		case current == 0:
			assert.Equal(t, StatusOutOfStock, got)
		case current <= min:
			assert.Equal(t, StatusLowStock, got)
		default:
			assert.Equal(t, StatusInStock, got)
		}
		assert.NotEqual(t, StatusDiscontinued, got)
	})
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusDiscontinued.Valid())
	assert.True(t, StatusLowStock.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestAdjustmentTypeAndReasonValid(t *testing.T) {
	assert.True(t, AdjustmentTransferIn.Valid())
	assert.False(t, AdjustmentType("shrink").Valid())
	assert.True(t, ReasonInventoryCount.Valid())
	assert.False(t, Reason("").Valid())
}
