package checkUpdate

import (
	"errors"
	"events2/internal/http-server/handlers/update/checkUpdate/mocks"
	"events2/internal/lib/logger/handlers/slogdiscard"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckUpdateHandler(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.AccessChecker)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Update available",
			mockSetup: func(m *mocks.AccessChecker) {
				m.On("Access", mock.Anything).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","access":true}`,
		},
		{
			name: "Nothing to update",
			mockSetup: func(m *mocks.AccessChecker) {
				m.On("Access", mock.Anything).Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","access":false}`,
		},
		{
			name: "Storage error",
			mockSetup: func(m *mocks.AccessChecker) {
				m.On("Access", mock.Anything).Return(false, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to check update"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			checker := mocks.NewAccessChecker(t)
			tc.mockSetup(checker)

			req, err := http.NewRequest(http.MethodGet, "/update", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			New(slogdiscard.NewDiscardLogger(), checker).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
