package handlers

import (
	"net/http"

	"termcompass/services/browse"
	"termcompass/utils"

	"github.com/gin-gonic/gin"
)

type CarouselHandler struct {
	Service browse.BrowseService
}

func NewCarouselHandler(s browse.BrowseService) *CarouselHandler {
	return &CarouselHandler{Service: s}
}

// OpenSessionHandler handles POST /api/carousel/session.
func (h *CarouselHandler) OpenSessionHandler(c *gin.Context) {
	id, view, err := h.Service.Open(c.Request.Context())
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionID": id, "carousel": view})
}

func (h *CarouselHandler) respond(c *gin.Context, view browse.View, err error) {
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carousel": view})
}

// GetSessionHandler handles GET /api/carousel/session/:sessionID.
func (h *CarouselHandler) GetSessionHandler(c *gin.Context) {
	view, err := h.Service.Get(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, view, err)
}

// AdvanceHandler handles POST /api/carousel/session/:sessionID/advance.
func (h *CarouselHandler) AdvanceHandler(c *gin.Context) {
	view, err := h.Service.Advance(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, view, err)
}

// RetreatHandler handles POST /api/carousel/session/:sessionID/retreat.
func (h *CarouselHandler) RetreatHandler(c *gin.Context) {
	view, err := h.Service.Retreat(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, view, err)
}

// SwipeHandler handles POST /api/carousel/session/:sessionID/swipe.
func (h *CarouselHandler) SwipeHandler(c *gin.Context) {
	var req struct {
		Direction string `json:"direction" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.Service.Swipe(c.Request.Context(), c.Param("sessionID"), req.Direction)
	h.respond(c, view, err)
}

// CloseSessionHandler handles DELETE /api/carousel/session/:sessionID.
func (h *CarouselHandler) CloseSessionHandler(c *gin.Context) {
	if err := h.Service.Close(c.Request.Context(), c.Param("sessionID")); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
