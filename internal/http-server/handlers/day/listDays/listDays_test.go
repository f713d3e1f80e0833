package listDays

import (
	"encoding/json"
	"errors"
	"events2/internal/http-server/handlers/day/listDays/mocks"
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

func TestListDaysHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testDay := models.Day{
		ID:      1,
		Day:     time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC),
		DayTime: time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC),
		Event:   &models.Event{ID: 3, Title: "Christmas concert"},
	}

	testCases := []struct {
		name           string
		query          string
		mockSetup      func(m *mocks.DayLister)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:  "Default action",
			query: "",
			mockSetup: func(m *mocks.DayLister) {
				m.On("ListDays", mock.Anything, models.DayFilter{ListType: models.ListTypeList}).
					Return([]models.Day{testDay}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp DaysResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				require.Len(t, resp.Days, 1)
				assert.Equal(t, "Christmas concert", resp.Days[0].Event.Title)
			},
		},
		{
			name:  "Latest is merged and limited",
			query: "?action=listLatest",
			mockSetup: func(m *mocks.DayLister) {
				m.On("ListDays", mock.Anything, models.DayFilter{
					ListType:    models.ListTypeLatest,
					MergeEvents: true,
					Limit:       7,
				}).Return([]models.Day{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","days":[]}`,
		},
		{
			name:  "Filters",
			query: "?action=listThisWeek&organizer=5&category=1,2&pids=10",
			mockSetup: func(m *mocks.DayLister) {
				m.On("ListDays", mock.Anything, models.DayFilter{
					ListType:    models.ListTypeThisWeek,
					Organizer:   5,
					Categories:  []int{1, 2},
					StoragePIDs: []int{10},
				}).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","days":[]}`,
		},
		{
			name:           "Unknown action",
			query:          "?action=listAll",
			mockSetup:      func(m *mocks.DayLister) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Action must be one of [list listLatest listToday listThisWeek listRange]"}`,
		},
		{
			name:           "Invalid organizer",
			query:          "?organizer=abc",
			mockSetup:      func(m *mocks.DayLister) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid organizer"}`,
		},
		{
			name:           "Invalid pids",
			query:          "?pids=1,x",
			mockSetup:      func(m *mocks.DayLister) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid pids"}`,
		},
		{
			name:  "Storage error",
			query: "?action=listToday",
			mockSetup: func(m *mocks.DayLister) {
				m.On("ListDays", mock.Anything, mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to list days"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lister := mocks.NewDayLister(t)
			tc.mockSetup(lister)

			handler := New(logger, lister, 7)

			req, err := http.NewRequest(http.MethodGet, "/days"+tc.query, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
