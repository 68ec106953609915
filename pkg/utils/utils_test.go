package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-hub/pkg/errors"
)

type itemRequest struct {
	Name string `json:"name" validate:"required"`
}

type sampleRequest struct {
	Email  string        `json:"email" validate:"required,email"`
	Status string        `json:"status" validate:"omitempty,oneof=draft paid"`
	Items  []itemRequest `json:"items" validate:"required,dive"`
}

func TestValidateStruct_ReportsJSONPaths(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "nope", Status: "lost", Items: []itemRequest{{}}})

	got := map[string]string{}
	for _, e := range errs {
		got[e.Field] = e.Message
	}
	assert.Equal(t, "must be a valid email address", got["email"])
	assert.Equal(t, "must be one of: draft paid", got["status"])
	assert.Equal(t, "is required", got["items[0].name"])

	assert.Nil(t, ValidateStruct(&sampleRequest{Email: "a@b.co", Items: []itemRequest{{Name: "x"}}}))
}

func TestFormatValidationError_JSON(t *testing.T) {
	var req sampleRequest
	err := json.Unmarshal([]byte(`{"email": 5}`), &req)
	errs := FormatValidationError(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)

	err = json.Unmarshal([]byte(`{`), &req)
	errs = FormatValidationError(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
}

func TestError_UsesAppErrorCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{errors.ErrAccessDenied, http.StatusForbidden, "access denied"},
		{errors.NotFound("invoice"), http.StatusNotFound, "invoice not found"},
		{fmt.Errorf("raw failure"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		Error(c, tc.err)

		assert.Equal(t, tc.code, w.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Code)
		assert.Equal(t, tc.msg, resp.Message)
	}
}
