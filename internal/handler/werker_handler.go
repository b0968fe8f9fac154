package handler

import (
	"net/http"

	"werkshift/internal/middleware"
	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WerkerHandler struct {
	werkers *service.WerkerService
	queries *service.QueryService
}

func NewWerkerHandler(werkers *service.WerkerService, queries *service.QueryService) *WerkerHandler {
	return &WerkerHandler{werkers: werkers, queries: queries}
}

func certificationInputs(reqs []CertificationRequest) []service.CertificationInput {
	inputs := make([]service.CertificationInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = service.CertificationInput{
			Certification: r.Certification,
			URLPhoto:      r.URLPhoto,
			Description:   r.Description,
		}
	}
	return inputs
}

// Create onboards the authenticated actor as a werker with their
// certifications and positions.
func (h *WerkerHandler) Create(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req WerkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := h.werkers.AddWerker(c.Request.Context(), service.AddWerkerInput{
		ID:             actorID,
		NameFirst:      req.NameFirst,
		NameLast:       req.NameLast,
		Email:          req.Email,
		URLPhoto:       req.URLPhoto,
		Bio:            req.Bio,
		Phone:          req.Phone,
		LastMinute:     req.LastMinute,
		Lat:            req.Lat,
		Long:           req.Long,
		Certifications: certificationInputs(req.Certifications),
		Positions:      req.Positions,
	})
	if res == nil {
		respondError(c, err)
		return
	}

	body := BulkWerkerResponse{Outcomes: toOutcomes(res.Outcomes)}
	if res.Werker != nil {
		werker := toWerkerResponse(res.Werker, nil)
		body.Werker = &werker
	}

	status, msg := bulkStatus(c, http.StatusCreated, res.Werker != nil, err)
	body.Error = msg
	c.JSON(status, body)
}

// GetByID returns the werker's profile with the average rating.
func (h *WerkerHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "werker")
	if !ok {
		return
	}

	profile, err := h.queries.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Werker not found"})
		return
	}

	c.JSON(http.StatusOK, toWerkerResponse(&profile.Werker, profile.AverageRating))
}

// self parses the werker id and checks that it is the actor's own.
func self(c *gin.Context) (uuid.UUID, bool) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	id, ok := parseID(c, "id", "werker")
	if !ok {
		return uuid.Nil, false
	}
	if id != actorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own profile"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *WerkerHandler) Update(c *gin.Context) {
	id, ok := self(c)
	if !ok {
		return
	}

	var req WerkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	werker, err := h.werkers.UpdateWerker(c.Request.Context(), id, service.UpdateWerkerInput{
		NameFirst:  req.NameFirst,
		NameLast:   req.NameLast,
		Email:      req.Email,
		URLPhoto:   req.URLPhoto,
		Bio:        req.Bio,
		Phone:      req.Phone,
		LastMinute: req.LastMinute,
		Lat:        req.Lat,
		Long:       req.Long,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if werker == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Werker not found"})
		return
	}

	c.JSON(http.StatusOK, toWerkerResponse(werker, nil))
}

func (h *WerkerHandler) Delete(c *gin.Context) {
	id, ok := self(c)
	if !ok {
		return
	}

	n, err := h.werkers.DeleteWerker(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// Search lists werkers who declared the position.
func (h *WerkerHandler) Search(c *gin.Context) {
	positionID, err := uuid.Parse(c.Query("position_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position ID format"})
		return
	}

	werkers, err := h.queries.SearchWerkersByPosition(c.Request.Context(), positionID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]WerkerResponse, 0, len(werkers))
	for i := range werkers {
		resp = append(resp, toWerkerResponse(&werkers[i], nil))
	}
	c.JSON(http.StatusOK, resp)
}

// Rate records the authenticated maker's score for the werker on a shift
// the werker accepted.
func (h *WerkerHandler) Rate(c *gin.Context) {
	makerID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	werkerID, ok := parseID(c, "id", "werker")
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID format"})
		return
	}

	rating, err := h.werkers.RateWerker(c.Request.Context(), makerID, werkerID, shiftID, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RatingResponse{
		ID:       rating.ID.String(),
		WerkerID: rating.WerkerID.String(),
		ShiftID:  rating.ShiftID.String(),
		Score:    rating.Score,
	})
}
