package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Symmetric(t *testing.T) {
	d1 := Distance(10.8231, 106.6297, 10.7769, 106.7009)
	d2 := Distance(10.7769, 106.7009, 10.8231, 106.6297)
	assert.Equal(t, d1, d2)
}

func TestDistance_SamePointIsZero(t *testing.T) {
	assert.Zero(t, Distance(10.8231, 106.6297, 10.8231, 106.6297))
}

func TestDistance_HoChiMinhFixture(t *testing.T) {
	// HCMC center to the Thao Dien area.
	d := Distance(10.8231, 106.6297, 10.7769, 106.7009)
	assert.InDelta(t, 9.3, d, 0.1)
}

func TestDistance_KnownLongDistance(t *testing.T) {
	// Ho Chi Minh City to Hanoi, ~1140 km great-circle.
	d := Distance(10.8231, 106.6297, 21.0278, 105.8342)
	assert.InDelta(t, 1137, d, 20)
}

func TestRoundKm(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"rounds down", 7.94, 7.9},
		{"rounds up", 7.95, 8.0},
		{"exact", 8.0, 8.0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundKm(tt.in))
		})
	}
}
