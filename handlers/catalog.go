package handlers

import (
	"net/http"

	"termcompass/services/catalog"
	"termcompass/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{Catalog: c}
}

// GetSitesHandler handles GET /api/catalog/sites.
func (h *CatalogHandler) GetSitesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sites": h.Catalog.Sites})
}

// GetServicesHandler handles GET /api/catalog/services.
func (h *CatalogHandler) GetServicesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Catalog.Services})
}

// GetDomainsHandler handles GET /api/catalog/domains.
func (h *CatalogHandler) GetDomainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"domains": h.Catalog.Domains})
}

// OpenServiceHandler handles POST /api/catalog/services/open. Business-only cards are refused to
// anyone else.
func (h *CatalogHandler) OpenServiceHandler(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	owner := ownerFrom(c)
	svc, err := h.Catalog.OpenService(owner.Category, req.URL)
	if err != nil {
		getLogger(c).Info("Service card refused", zap.String("url", req.URL), zap.String("accountID", owner.AccountID), zap.Error(err))
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}
