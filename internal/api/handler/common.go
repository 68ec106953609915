package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/api/middleware"
	pkgErrors "agency-hub/pkg/errors"
	"agency-hub/pkg/utils"
)

type validatable interface {
	Validate() []utils.FieldError
}

// bindJSON decodes and validates the body; on failure the response is already written
func bindJSON(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BindError(c, err)
		return false
	}
	if errs := req.Validate(); len(errs) > 0 {
		utils.ValidationError(c, errs)
		return false
	}
	return true
}

// bindQuery decodes query parameters
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		utils.BindError(c, err)
		return false
	}
	return true
}

// currentUserID the subject of the verified access token
func currentUserID(c *gin.Context) (string, bool) {
	claims, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return "", false
	}
	return claims.Subject, true
}
