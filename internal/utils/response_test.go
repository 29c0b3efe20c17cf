package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestSuccessEnvelope(t *testing.T) {
	c, rec := testContext(t)
	c.Set("request_id", "req-1234")

	Success(c, http.StatusOK, "ok", gin.H{"value": 42})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "ok", resp.Message)
	require.Nil(t, resp.Error)
	require.Equal(t, "req-1234", resp.Meta.RequestID)
	require.NotEmpty(t, resp.Meta.Timestamp)
}

func TestFromErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrAdminRequired, http.StatusForbidden, "ADMIN_REQUIRED"},
		{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{ErrCodeMismatch, http.StatusBadRequest, "CODE_MISMATCH"},
		{ErrCartEmpty, http.StatusBadRequest, "CART_EMPTY"},
		{ErrSearchUnavailable, http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE"},
	}

	for _, tc := range cases {
		c, rec := testContext(t)
		FromError(c, tc.err)

		require.Equal(t, tc.status, rec.Code, tc.code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		require.Equal(t, tc.code, resp.Error.Code)
	}
}

func TestFromErrorHidesUnknownErrors(t *testing.T) {
	c, rec := testContext(t)
	FromError(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
}
