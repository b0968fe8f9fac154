package handler

import (
	"net/http"

	"werkshift/internal/middleware"
	"werkshift/internal/model"
	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	assignments *service.AssignmentService
	shifts      *service.ShiftService
	queries     *service.QueryService
}

func NewAssignmentHandler(assignments *service.AssignmentService, shifts *service.ShiftService, queries *service.QueryService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, shifts: shifts, queries: queries}
}

// Invite lets the shift's maker invite a werker to one of its positions.
func (h *AssignmentHandler) Invite(c *gin.Context) {
	makerID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	shiftID, ok := parseID(c, "id", "shift")
	if !ok {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	werkerID, err := uuid.Parse(req.WerkerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid werker ID format"})
		return
	}
	positionID, err := uuid.Parse(req.PositionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position ID format"})
		return
	}

	ctx := c.Request.Context()
	if err := h.shifts.RequireOwner(ctx, shiftID, makerID); err != nil {
		respondError(c, err)
		return
	}

	ia, err := h.assignments.InviteWerker(ctx, shiftID, service.InviteInput{
		WerkerID:   werkerID,
		PositionID: positionID,
		Status:     model.AssignmentStatus(req.Status),
		Expiration: req.Expiration,
		Type:       model.AssignmentType(req.Type),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAssignmentResponse(*ia))
}

func (h *AssignmentHandler) List(c *gin.Context) {
	shiftID, ok := parseID(c, "id", "shift")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	shift, err := h.queries.GetShift(ctx, shiftID)
	if err != nil {
		respondError(c, err)
		return
	}
	if shift == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	rows, err := h.queries.ListAssignments(ctx, shiftID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]AssignmentResponse, 0, len(rows))
	for _, ia := range rows {
		resp = append(resp, toAssignmentResponse(ia))
	}
	c.JSON(http.StatusOK, resp)
}

type transitionFunc func(c *gin.Context, shiftID, werkerID uuid.UUID, positionID *uuid.UUID) (int64, error)

// transition binds the shared request shape of apply, accept and decline.
// The body is optional; an empty one addresses every position.
func transition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		werkerID, ok := middleware.ActorID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		shiftID, ok := parseID(c, "id", "shift")
		if !ok {
			return
		}

		var req TransitionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
		}
		positionID, err := parseOptionalID(req.PositionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position ID format"})
			return
		}

		n, err := fn(c, shiftID, werkerID, positionID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": n})
	}
}

func (h *AssignmentHandler) Apply(c *gin.Context) {
	transition(func(c *gin.Context, shiftID, werkerID uuid.UUID, positionID *uuid.UUID) (int64, error) {
		return h.assignments.ApplyForShift(c.Request.Context(), shiftID, werkerID, positionID)
	})(c)
}

func (h *AssignmentHandler) Accept(c *gin.Context) {
	transition(func(c *gin.Context, shiftID, werkerID uuid.UUID, positionID *uuid.UUID) (int64, error) {
		return h.assignments.AcceptShift(c.Request.Context(), shiftID, werkerID, positionID)
	})(c)
}

func (h *AssignmentHandler) Decline(c *gin.Context) {
	transition(func(c *gin.Context, shiftID, werkerID uuid.UUID, positionID *uuid.UUID) (int64, error) {
		return h.assignments.DeclineShift(c.Request.Context(), shiftID, werkerID, positionID)
	})(c)
}
