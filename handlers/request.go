package handlers

import (
	"termcompass/models"
	"termcompass/services/apperr"
	"termcompass/services/authoring"
	"termcompass/services/validation"
	"termcompass/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bindJSON decodes the body into req and writes a validation error when that fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		utils.WriteError(c, apperr.Validation(validation.FieldErrors(err)...))
		return false
	}
	return true
}

// ownerFrom reads the identity the auth middleware left in the context.
func ownerFrom(c *gin.Context) authoring.Owner {
	owner := authoring.Owner{AccountID: c.GetString(utils.CtxAccountID)}
	if v, ok := c.Get(utils.CtxCategory); ok {
		if cat, ok := v.(models.UserCategory); ok {
			owner.Category = cat
		}
	}
	return owner
}
