package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_Domestic(t *testing.T) {
	t.Parallel()

	rates := Fallback("GB", "GB", NewWeight(10), 100)

	require.Len(t, rates, 5)
	assert.Equal(t, "Hermes", rates[0].Carrier)
	assert.InDelta(t, 88.0, rates[0].Price, 1e-9)
	assert.Equal(t, "UPS", rates[4].Carrier)
	assert.InDelta(t, 94.0, rates[4].Price, 1e-9)

	for i := 1; i < len(rates); i++ {
		assert.LessOrEqual(t, rates[i-1].Price, rates[i].Price)
	}
}

func TestFallback_InternationalHeavy(t *testing.T) {
	t.Parallel()

	rates := Fallback("GB", "FR", NewWeight(35), 100)

	require.Len(t, rates, 5)
	want := []struct {
		carrier string
		price   float64
	}{
		{"Royal Mail", 93 * 1.05},
		{"ParcelForce", 94 * 1.05},
		{"DHL Express", 95 * 1.05},
		{"FedEx", 96 * 1.05},
		{"UPS", 97 * 1.05},
	}
	for i, w := range want {
		assert.Equal(t, w.carrier, rates[i].Carrier)
		assert.InDelta(t, w.price, rates[i].Price, 1e-9)
	}
}

func TestFallback_Cases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		origin      string
		destination string
		weight      Weight
		baseline    float64
		wantLen     int
		wantFirst   float64
	}{
		{name: "non-GB domestic has no data", origin: "FR", destination: "FR", weight: NewWeight(5), baseline: 100},
		{name: "empty countries", origin: "", destination: "", weight: NewWeight(5), baseline: 100},
		{name: "international from unknown origin", origin: "ZZ", destination: "GB", weight: NewWeight(1), baseline: 100, wantLen: 5, wantFirst: 93},
		{name: "exactly thirty is not surcharged", origin: "GB", destination: "GB", weight: NewWeight(30), baseline: 100, wantLen: 5, wantFirst: 88},
		{name: "numeric string weight surcharged", origin: "GB", destination: "GB", weight: mustWeight(t, `"31"`), baseline: 100, wantLen: 5, wantFirst: 88 * 1.05},
		{name: "non-numeric weight not surcharged", origin: "GB", destination: "US", weight: mustWeight(t, `"heavy"`), baseline: 100, wantLen: 5, wantFirst: 93},
		{name: "custom baseline", origin: "GB", destination: "GB", weight: NewWeight(2), baseline: 50, wantLen: 5, wantFirst: 44},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rates := Fallback(tt.origin, tt.destination, tt.weight, tt.baseline)

			require.NotNil(t, rates)
			require.Len(t, rates, tt.wantLen)
			if tt.wantLen > 0 {
				assert.InDelta(t, tt.wantFirst, rates[0].Price, 1e-9)
			}
		})
	}
}

func mustWeight(t *testing.T, raw string) Weight {
	t.Helper()

	var w Weight
	require.NoError(t, w.UnmarshalJSON([]byte(raw)))
	return w
}
