package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-booking-api/internal/domain"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func TestErr_KindToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.Invalid("bad input"), http.StatusBadRequest},
		{domain.Unauthorized("no"), http.StatusUnauthorized},
		{domain.Forbidden("no"), http.StatusForbidden},
		{domain.NotFound("gone"), http.StatusNotFound},
		{domain.Conflict("event is at full capacity"), http.StatusBadRequest},
		{domain.Internal("boom", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := record(func(c *gin.Context) { Err(c, tc.err) })
		assert.Equal(t, tc.status, w.Code, tc.err.Error())

		var body Body
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.err.Error(), body.Message)
	}
}

func TestBindErr_FieldList(t *testing.T) {
	type in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	w := record(func(c *gin.Context) {
		c.Request = httptest.NewRequest(http.MethodPost, "/",
			strings.NewReader(`{"email":"not-an-email","password":"short"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		var v in
		err := c.ShouldBindJSON(&v)
		require.Error(t, err)
		BindErr(c, err)
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "validation failed", body.Message)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "Email", body.Errors[0].Field)
	assert.Equal(t, "email", body.Errors[0].Code)
	assert.Equal(t, "Password", body.Errors[1].Field)
	assert.Equal(t, "min", body.Errors[1].Code)
}

func TestPaged_Envelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Paged(c, "ok", []string{"a"}, Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3})
	})

	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 3, body.Pagination.TotalPages)
}
