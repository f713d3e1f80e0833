package findDaysByMonth

import (
	"errors"
	"events2/internal/http-server/handlers/day/findDaysByMonth/mocks"
	"events2/internal/lib/logger/handlers/slogdiscard"
	"events2/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFindDaysByMonthHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	december := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	january := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		query          string
		mockSetup      func(m *mocks.DaysInRangeGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "Success",
			query: "?year=2024&month=12&pids=4&categories=1,2",
			mockSetup: func(m *mocks.DaysInRangeGetter) {
				m.On("GetDaysInRange", mock.Anything, december, january, []int{4}, []int{1, 2}).
					Return([]models.DayInRange{
						{EventID: 3, Title: "Christmas concert", Day: time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","days":[{"event_id":3,"title":"Christmas concert","day":"2024-12-24T00:00:00Z"}]}`,
		},
		{
			name:  "No days",
			query: "?year=2024&month=12",
			mockSetup: func(m *mocks.DaysInRangeGetter) {
				m.On("GetDaysInRange", mock.Anything, december, january, []int(nil), []int(nil)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","days":[]}`,
		},
		{
			name:           "Missing month",
			query:          "?year=2024",
			mockSetup:      func(m *mocks.DaysInRangeGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Month is a required field"}`,
		},
		{
			name:           "Month out of range",
			query:          "?year=2024&month=13",
			mockSetup:      func(m *mocks.DaysInRangeGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Month is not valid"}`,
		},
		{
			name:           "Invalid year",
			query:          "?year=next&month=1",
			mockSetup:      func(m *mocks.DaysInRangeGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid year"}`,
		},
		{
			name:  "Storage error",
			query: "?year=2024&month=12",
			mockSetup: func(m *mocks.DaysInRangeGetter) {
				m.On("GetDaysInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get days"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewDaysInRangeGetter(t)
			tc.mockSetup(getter)

			handler := New(logger, getter, time.UTC)

			req, err := http.NewRequest(http.MethodGet, "/calendar/days"+tc.query, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
