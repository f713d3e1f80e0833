package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationAddress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		location Location
		expected string
	}{
		{
			name: "All values",
			location: Location{
				Street:      "Echterdinger Straße",
				HouseNumber: "57",
				Zip:         "70794",
				City:        "Filderstadt",
				Country:     "Deutschland",
			},
			expected: "Echterdinger Straße 57 70794 Filderstadt Deutschland",
		},
		{
			name: "Without country",
			location: Location{
				Street:      "Echterdinger Straße",
				HouseNumber: "57",
				Zip:         "70794",
				City:        "Filderstadt",
			},
			expected: "Echterdinger Straße 57 70794 Filderstadt",
		},
		{
			name: "House number in street",
			location: Location{
				Street: "Echterdinger Straße 57",
				Zip:    "70794",
				City:   "Filderstadt",
			},
			expected: "Echterdinger Straße 57 70794 Filderstadt",
		},
		{
			name:     "Empty",
			location: Location{},
			expected: "",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.location.Address())
		})
	}
}

func TestTimeBeginOffset(t *testing.T) {
	t.Parallel()

	offset, err := (&Time{TimeBegin: "08:30"}).BeginOffset()
	assert.NoError(t, err)
	assert.Equal(t, "8h30m0s", offset.String())

	offset, err = (*Time)(nil).BeginOffset()
	assert.NoError(t, err)
	assert.Zero(t, offset)

	_, err = (&Time{TimeBegin: "25:00"}).BeginOffset()
	assert.Error(t, err)

	_, err = (&Time{TimeBegin: "noon"}).BeginOffset()
	assert.Error(t, err)
}
