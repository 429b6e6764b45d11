package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medvoice/medvoice-api/pkg/errors"
)

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestRespondErrorUsesAppErrorStatus(t *testing.T) {
	c, w := testContext(t, "/")

	RespondError(c, apperrors.Forbidden(""))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not enough permissions")
	assert.Len(t, c.Errors, 1)
}

func TestRespondErrorWrapsUnknownErrors(t *testing.T) {
	c, w := testContext(t, "/")

	RespondError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestBoolQuery(t *testing.T) {
	c, _ := testContext(t, "/voices/doctor/x?note_created=true")
	v, err := BoolQuery(c, "note_created")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, *v)

	c, _ = testContext(t, "/voices/doctor/x?note_created=false")
	v, err = BoolQuery(c, "note_created")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.False(t, *v)

	c, _ = testContext(t, "/voices/doctor/x")
	v, err = BoolQuery(c, "note_created")
	require.NoError(t, err)
	assert.Nil(t, v)

	c, _ = testContext(t, "/voices/doctor/x?note_created=banana")
	_, err = BoolQuery(c, "note_created")
	assert.Error(t, err)
}
