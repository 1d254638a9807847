package handlers

import (
	"net/http"

	"termcompass/services/authoring"
	"termcompass/services/workflow"
	"termcompass/utils"

	"github.com/gin-gonic/gin"
)

type AuthoringHandler struct {
	Service authoring.AuthoringService
}

func NewAuthoringHandler(s authoring.AuthoringService) *AuthoringHandler {
	return &AuthoringHandler{Service: s}
}

type textRequest struct {
	Text string `json:"text" binding:"notblank"`
}

// clauseRequest allows blank text: an empty add commits the clause being typed.
type clauseRequest struct {
	Text string `json:"text"`
}

func (h *AuthoringHandler) respond(c *gin.Context, snap workflow.Snapshot, err error) {
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workflow": snap})
}

// StartSessionHandler handles POST /api/terms/session. Non-business users get 403 with a redirect
// to the landing page.
func (h *AuthoringHandler) StartSessionHandler(c *gin.Context) {
	id, snap, err := h.Service.Start(c.Request.Context(), ownerFrom(c))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionID": id, "workflow": snap})
}

// GetSessionHandler handles GET /api/terms/session/:sessionID.
func (h *AuthoringHandler) GetSessionHandler(c *gin.Context) {
	snap, err := h.Service.Get(c.Request.Context(), ownerFrom(c), c.Param("sessionID"))
	h.respond(c, snap, err)
}

// SelectDomainHandler handles POST /api/terms/session/:sessionID/domain.
func (h *AuthoringHandler) SelectDomainHandler(c *gin.Context) {
	var req struct {
		Domain string `json:"domain"`
	}
	if !bindJSON(c, &req) {
		return
	}
	snap, err := h.Service.SelectDomain(c.Request.Context(), ownerFrom(c), c.Param("sessionID"), req.Domain)
	h.respond(c, snap, err)
}

// SubmitStandardTermsHandler handles POST /api/terms/session/:sessionID/standard-terms.
func (h *AuthoringHandler) SubmitStandardTermsHandler(c *gin.Context) {
	var req textRequest
	if !bindJSON(c, &req) {
		return
	}
	snap, err := h.Service.SubmitStandardTerms(c.Request.Context(), ownerFrom(c), c.Param("sessionID"), req.Text)
	h.respond(c, snap, err)
}

// SetPendingClauseHandler handles PUT /api/terms/session/:sessionID/clauses/pending.
func (h *AuthoringHandler) SetPendingClauseHandler(c *gin.Context) {
	var req clauseRequest
	if !bindJSON(c, &req) {
		return
	}
	snap, err := h.Service.SetPendingClause(c.Request.Context(), ownerFrom(c), c.Param("sessionID"), req.Text)
	h.respond(c, snap, err)
}

// AddClauseHandler handles POST /api/terms/session/:sessionID/clauses. Blank text submits the
// pending clause.
func (h *AuthoringHandler) AddClauseHandler(c *gin.Context) {
	var req clauseRequest
	if !bindJSON(c, &req) {
		return
	}
	snap, err := h.Service.AddClause(c.Request.Context(), ownerFrom(c), c.Param("sessionID"), req.Text)
	h.respond(c, snap, err)
}

// FinishClausesHandler handles POST /api/terms/session/:sessionID/clauses/finish.
func (h *AuthoringHandler) FinishClausesHandler(c *gin.Context) {
	snap, err := h.Service.FinishClauses(c.Request.Context(), ownerFrom(c), c.Param("sessionID"))
	h.respond(c, snap, err)
}

// GoBackHandler handles POST /api/terms/session/:sessionID/back.
func (h *AuthoringHandler) GoBackHandler(c *gin.Context) {
	snap, err := h.Service.GoBack(c.Request.Context(), ownerFrom(c), c.Param("sessionID"))
	h.respond(c, snap, err)
}

// RequestReviewHandler handles POST /api/terms/session/:sessionID/review.
func (h *AuthoringHandler) RequestReviewHandler(c *gin.Context) {
	reviewID, err := h.Service.RequestReview(c.Request.Context(), ownerFrom(c), c.Param("sessionID"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"reviewID": reviewID})
}

// CloseSessionHandler handles DELETE /api/terms/session/:sessionID.
func (h *AuthoringHandler) CloseSessionHandler(c *gin.Context) {
	if err := h.Service.Close(c.Request.Context(), ownerFrom(c), c.Param("sessionID")); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
