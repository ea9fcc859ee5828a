package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/cunningbot/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorResponse checks that a recorded response has the expected
// status and an error message containing expectedErrorMsgPart.
func AssertErrorResponse(
	t *testing.T,
	rec *httptest.ResponseRecorder,
	expectedStatus int,
	expectedErrorMsgPart string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, rec.Code,
		"Expected status code %d but got %d", expectedStatus, rec.Code)

	if expectedStatus == http.StatusNoContent {
		assert.Empty(t, rec.Body.Bytes(), "Expected empty body for 204 No Content")
		return
	}

	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp),
		"Failed to unmarshal error response: %s", rec.Body.String())

	assert.Contains(t, errResp.Error, expectedErrorMsgPart,
		"Expected error message to contain %q but got %q", expectedErrorMsgPart, errResp.Error)
}
