package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntList(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		query     string
		expected  []int
		respError bool
	}{
		{name: "Missing", query: "", expected: nil},
		{name: "Single", query: "pids=4", expected: []int{4}},
		{name: "Several", query: "pids=1,%202,,3", expected: []int{1, 2, 3}},
		{name: "Invalid", query: "pids=1,x", respError: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/days?"+tc.query, nil)

			got, err := IntList(req, "pids")
			if tc.respError {
				assert.EqualError(t, err, "invalid pids")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestInt(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/days?organizer=12&category=abc", nil)

	v, err := Int(req, "organizer")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = Int(req, "location")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = Int(req, "category")
	assert.Error(t, err)
}

func TestBool(t *testing.T) {
	t.Parallel()

	assert.True(t, Bool(httptest.NewRequest("GET", "/?free_entry=1", nil), "free_entry"))
	assert.True(t, Bool(httptest.NewRequest("GET", "/?free_entry=true", nil), "free_entry"))
	assert.False(t, Bool(httptest.NewRequest("GET", "/?free_entry=0", nil), "free_entry"))
	assert.False(t, Bool(httptest.NewRequest("GET", "/", nil), "free_entry"))
}
