package handler

import (
	"net/http"

	"werkshift/internal/middleware"
	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
)

type MakerHandler struct {
	makers  *service.MakerService
	queries *service.QueryService
}

func NewMakerHandler(makers *service.MakerService, queries *service.QueryService) *MakerHandler {
	return &MakerHandler{makers: makers, queries: queries}
}

// Create registers the authenticated actor as a maker.
func (h *MakerHandler) Create(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req MakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	maker, err := h.makers.CreateMaker(c.Request.Context(), service.CreateMakerInput{
		ID:       actorID,
		Name:     req.Name,
		Email:    req.Email,
		URLPhoto: req.URLPhoto,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMakerResponse(maker))
}

func (h *MakerHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "maker")
	if !ok {
		return
	}

	maker, err := h.queries.GetMaker(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if maker == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maker not found"})
		return
	}

	c.JSON(http.StatusOK, toMakerResponse(maker))
}
