package geo

import (
	"math"
	"testing"

	"address-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		lat1     float64
		lon1     float64
		lat2     float64
		lon2     float64
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			lat1:     35.681236,
			lon1:     139.767125,
			lat2:     35.681236,
			lon2:     139.767125,
			expected: 0,
			delta:    0,
		},
		{
			name:     "one degree of longitude on the equator",
			lat1:     0,
			lon1:     0,
			lat2:     0,
			lon2:     1,
			expected: 111.195,
			delta:    0.001,
		},
		{
			name:     "across the antimeridian",
			lat1:     0,
			lon1:     179.5,
			lat2:     0,
			lon2:     -179.5,
			expected: 111.195,
			delta:    0.001,
		},
		{
			name:     "pole to pole",
			lat1:     90,
			lon1:     0,
			lat2:     -90,
			lon2:     0,
			expected: math.Pi * EarthRadiusKm,
			delta:    1e-6,
		},
		{
			name:     "antipodal points on the equator",
			lat1:     0,
			lon1:     0,
			lat2:     0,
			lon2:     180,
			expected: math.Pi * EarthRadiusKm,
			delta:    1e-6,
		},
		{
			name:     "tokyo to osaka",
			lat1:     35.681236,
			lon1:     139.767125,
			lat2:     34.702485,
			lon2:     135.495951,
			expected: 403.06,
			delta:    0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

func TestDistance_NorthPole(t *testing.T) {
	got := Distance(90, 0, 89, 179)

	assert.False(t, math.IsNaN(got))
	assert.False(t, math.IsInf(got, 0))
	assert.Greater(t, got, 0.0)
	assert.InDelta(t, 111.195, got, 0.001)
}

func TestDistance_Symmetric(t *testing.T) {
	assert.InDelta(t, Distance(10, 20, -30, 40), Distance(-30, 40, 10, 20), 1e-9)
}

func sample() []models.Address {
	return []models.Address{
		{ID: 1, Name: "origin", Latitude: 0, Longitude: 0},
		{ID: 2, Name: "one degree east", Latitude: 0, Longitude: 1},
		{ID: 3, Name: "far away", Latitude: 45, Longitude: 90},
		{ID: 4, Name: "half degree north", Latitude: 0.5, Longitude: 0},
		{ID: 5, Name: "origin again", Latitude: 0, Longitude: 0},
	}
}

func ids(addresses []models.Address) []int64 {
	out := make([]int64, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, a.ID)
	}
	return out
}

func TestWithin(t *testing.T) {
	tests := []struct {
		name     string
		lat      float64
		lon      float64
		radius   float64
		input    []models.Address
		expected []int64
	}{
		{
			name:     "empty input",
			radius:   100,
			input:    nil,
			expected: []int64{},
		},
		{
			name:     "zero radius keeps coincident records",
			radius:   0,
			input:    sample(),
			expected: []int64{1, 5},
		},
		{
			name:     "50km excludes the record one degree away",
			radius:   50,
			input:    sample(),
			expected: []int64{1, 5},
		},
		{
			name:     "60km picks up the half degree record",
			radius:   60,
			input:    sample(),
			expected: []int64{1, 4, 5},
		},
		{
			name:     "150km includes the record one degree away",
			radius:   150,
			input:    sample(),
			expected: []int64{1, 2, 4, 5},
		},
		{
			name:     "negative radius matches nothing",
			radius:   -1,
			input:    sample(),
			expected: []int64{},
		},
		{
			name:     "NaN radius matches nothing",
			radius:   math.NaN(),
			input:    sample(),
			expected: []int64{},
		},
		{
			name:     "reference at the north pole",
			lat:      90,
			lon:      0,
			radius:   120,
			input:    []models.Address{{ID: 7, Latitude: 89, Longitude: 179}, {ID: 8, Latitude: 0, Longitude: 0}},
			expected: []int64{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Within(tt.lat, tt.lon, tt.radius, tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestWithin_CoincidentAlwaysIncluded(t *testing.T) {
	record := models.Address{ID: 1, Latitude: -33.8688, Longitude: 151.2093}

	for _, r := range []float64{0, 1e-9, 1, 1000, 40000} {
		got := Within(record.Latitude, record.Longitude, r, []models.Address{record})
		assert.Equal(t, []int64{1}, ids(got), "radius %v", r)
	}
}

func TestWithin_Idempotent(t *testing.T) {
	for _, r := range []float64{0, 50, 60, 150, 10000} {
		once := Within(0, 0, r, sample())
		twice := Within(0, 0, r, once)
		assert.Equal(t, once, twice, "radius %v", r)
	}
}

func TestWithin_Monotonic(t *testing.T) {
	radii := []float64{0, 10, 55.6, 60, 111, 112, 150, 5000, 20000}

	for i := 1; i < len(radii); i++ {
		smaller := Within(0, 0, radii[i-1], sample())
		larger := Within(0, 0, radii[i], sample())
		assert.Subset(t, ids(larger), ids(smaller), "%v ⊆ %v", radii[i-1], radii[i])
	}
}

func TestWithin_PreservesOrder(t *testing.T) {
	input := []models.Address{
		{ID: 9, Latitude: 0, Longitude: 0.2},
		{ID: 3, Latitude: 0, Longitude: 0.1},
		{ID: 7, Latitude: 10, Longitude: 10},
		{ID: 1, Latitude: 0, Longitude: 0.3},
	}

	got := Within(0, 0, 100, input)
	assert.Equal(t, []int64{9, 3, 1}, ids(got))
}

func TestWithin_DoesNotMutateInput(t *testing.T) {
	input := sample()
	before := append([]models.Address(nil), input...)

	_ = Within(0, 0, 60, input)
	assert.Equal(t, before, input)
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name        string
		lat         float64
		lon         float64
		expectError bool
	}{
		{name: "origin", lat: 0, lon: 0},
		{name: "north pole", lat: 90, lon: 0},
		{name: "south pole on the antimeridian", lat: -90, lon: -180},
		{name: "antimeridian", lat: 12.5, lon: 180},
		{name: "latitude too high", lat: 90.0001, lon: 0, expectError: true},
		{name: "latitude too low", lat: -91, lon: 0, expectError: true},
		{name: "longitude too high", lat: 0, lon: 180.5, expectError: true},
		{name: "longitude too low", lat: 0, lon: -181, expectError: true},
		{name: "NaN latitude", lat: math.NaN(), lon: 0, expectError: true},
		{name: "NaN longitude", lat: 0, lon: math.NaN(), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.lat, tt.lon)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
