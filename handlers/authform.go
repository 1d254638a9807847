package handlers

import (
	"net/http"

	"termcompass/services/authform"
	"termcompass/services/authmode"
	"termcompass/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthFormHandler struct {
	Service authform.AuthFormService
}

func NewAuthFormHandler(s authform.AuthFormService) *AuthFormHandler {
	return &AuthFormHandler{Service: s}
}

func (h *AuthFormHandler) respond(c *gin.Context, view authmode.View, err error) {
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": view})
}

// OpenFormHandler handles POST /api/auth/form.
func (h *AuthFormHandler) OpenFormHandler(c *gin.Context) {
	id, view, err := h.Service.Open(c.Request.Context())
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"formID": id, "form": view})
}

// GetFormHandler handles GET /api/auth/form/:formID.
func (h *AuthFormHandler) GetFormHandler(c *gin.Context) {
	view, err := h.Service.Get(c.Request.Context(), c.Param("formID"))
	h.respond(c, view, err)
}

// ToggleModeHandler handles POST /api/auth/form/:formID/toggle.
func (h *AuthFormHandler) ToggleModeHandler(c *gin.Context) {
	view, err := h.Service.ToggleMode(c.Request.Context(), c.Param("formID"))
	h.respond(c, view, err)
}

// AgreeHandler handles POST /api/auth/form/:formID/agree.
func (h *AuthFormHandler) AgreeHandler(c *gin.Context) {
	view, err := h.Service.Agree(c.Request.Context(), c.Param("formID"))
	h.respond(c, view, err)
}

// CancelHandler handles POST /api/auth/form/:formID/cancel.
func (h *AuthFormHandler) CancelHandler(c *gin.Context) {
	view, err := h.Service.Cancel(c.Request.Context(), c.Param("formID"))
	h.respond(c, view, err)
}

// SelectCategoryHandler handles PUT /api/auth/form/:formID/category.
func (h *AuthFormHandler) SelectCategoryHandler(c *gin.Context) {
	var req struct {
		Category string `json:"category" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.Service.SelectCategory(c.Request.Context(), c.Param("formID"), req.Category)
	h.respond(c, view, err)
}

// SetFieldHandler handles PUT /api/auth/form/:formID/field.
func (h *AuthFormHandler) SetFieldHandler(c *gin.Context) {
	var req struct {
		Field string `json:"field" binding:"required,oneof=email password passwordConfirm additionalInfo businessNumber"`
		Value string `json:"value"`
	}
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.Service.SetField(c.Request.Context(), c.Param("formID"), authmode.Field(req.Field), req.Value)
	h.respond(c, view, err)
}

// SubmitHandler handles POST /api/auth/form/:formID/submit.
func (h *AuthFormHandler) SubmitHandler(c *gin.Context) {
	formID := c.Param("formID")
	resp, err := h.Service.Submit(c.Request.Context(), formID)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	getLogger(c).Info("Signed in through auth form", zap.String("formID", formID), zap.String("accountID", resp.ID))
	c.JSON(http.StatusOK, resp)
}

// CloseFormHandler handles DELETE /api/auth/form/:formID.
func (h *AuthFormHandler) CloseFormHandler(c *gin.Context) {
	if err := h.Service.Close(c.Request.Context(), c.Param("formID")); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
