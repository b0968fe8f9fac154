package handler

import (
	"net/http"

	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes read-only lookups of the shared position and
// certification catalog. Catalog rows are only created as a side effect of
// posting shifts and onboarding werkers.
type CatalogHandler struct {
	queries *service.QueryService
}

func NewCatalogHandler(queries *service.QueryService) *CatalogHandler {
	return &CatalogHandler{queries: queries}
}

func (h *CatalogHandler) GetPosition(c *gin.Context) {
	id, ok := parseID(c, "id", "position")
	if !ok {
		return
	}

	position, err := h.queries.GetPosition(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if position == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Position not found"})
		return
	}

	c.JSON(http.StatusOK, CatalogResponse{ID: position.ID.String(), Name: position.Name, Description: position.Description})
}

// FindPosition looks a position up by name, ignoring case and spacing.
func (h *CatalogHandler) FindPosition(c *gin.Context) {
	position, err := h.queries.LookupPosition(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	if position == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Position not found"})
		return
	}

	c.JSON(http.StatusOK, CatalogResponse{ID: position.ID.String(), Name: position.Name, Description: position.Description})
}

func (h *CatalogHandler) FindCertification(c *gin.Context) {
	cert, err := h.queries.LookupCertification(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	if cert == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certification not found"})
		return
	}

	c.JSON(http.StatusOK, CatalogResponse{ID: cert.ID.String(), Name: cert.Name, Description: cert.Description})
}
