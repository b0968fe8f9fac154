package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"werkshift/internal/middleware"
	"werkshift/internal/repository"
	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShiftHandler struct {
	shifts  *service.ShiftService
	queries *service.QueryService
}

func NewShiftHandler(shifts *service.ShiftService, queries *service.QueryService) *ShiftHandler {
	return &ShiftHandler{shifts: shifts, queries: queries}
}

// bulkStatus picks the status and error text for a settled bulk
// operation. kept reports whether the owner row survived; partial success
// under the best-effort policy is answered with 207.
func bulkStatus(c *gin.Context, okStatus int, kept bool, err error) (int, string) {
	switch {
	case err == nil:
		return okStatus, ""
	case errors.Is(err, service.ErrPartialAttachment) && kept:
		return http.StatusMultiStatus, err.Error()
	}
	status := statusFor(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		return status, http.StatusText(status)
	}
	return status, err.Error()
}

func respondBulkShift(c *gin.Context, okStatus int, res *service.ShiftResult, err error) {
	if res == nil {
		respondError(c, err)
		return
	}

	body := BulkShiftResponse{Outcomes: toOutcomes(res.Outcomes)}
	if res.Shift != nil {
		shift := toShiftResponse(res.Shift)
		body.Shift = &shift
	}
	status, msg := bulkStatus(c, okStatus, res.Shift != nil, err)
	body.Error = msg
	c.JSON(status, body)
}

// Create posts a shift owned by the authenticated maker.
func (h *ShiftHandler) Create(c *gin.Context) {
	makerID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := h.shifts.CreateShift(c.Request.Context(), service.CreateShiftInput{
		MakerID:         makerID,
		Name:            req.Name,
		TimeDate:        req.TimeDate,
		DurationMinutes: req.Duration,
		Lat:             req.Lat,
		Long:            req.Long,
		Description:     req.Description,
		PaymentType:     req.PaymentType,
		Positions:       positionInputs(req.Positions),
	})
	respondBulkShift(c, http.StatusCreated, res, err)
}

// GetAll lists one page of shifts. offset counts pages, not rows.
func (h *ShiftHandler) GetAll(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
		return
	}

	shifts, err := h.queries.ListShifts(c.Request.Context(), offset)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ShiftResponse, 0, len(shifts))
	for i := range shifts {
		resp = append(resp, toShiftResponse(&shifts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShiftHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "shift")
	if !ok {
		return
	}

	shift, err := h.queries.GetShift(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if shift == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	c.JSON(http.StatusOK, toShiftResponse(shift))
}

// owned parses the shift id and checks that the actor posted the shift.
func (h *ShiftHandler) owned(c *gin.Context) (uuid.UUID, bool) {
	makerID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	id, ok := parseID(c, "id", "shift")
	if !ok {
		return uuid.Nil, false
	}
	if err := h.shifts.RequireOwner(c.Request.Context(), id, makerID); err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *ShiftHandler) Update(c *gin.Context) {
	var req ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	id, ok := h.owned(c)
	if !ok {
		return
	}

	shift, err := h.shifts.UpdateShift(c.Request.Context(), id, service.UpdateShiftInput{
		Name:            req.Name,
		TimeDate:        req.TimeDate,
		DurationMinutes: req.Duration,
		Lat:             req.Lat,
		Long:            req.Long,
		Description:     req.Description,
		PaymentType:     req.PaymentType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toShiftResponse(shift))
}

// Delete answers {"deleted": 0} for an unknown shift so the call stays
// idempotent.
func (h *ShiftHandler) Delete(c *gin.Context) {
	makerID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	id, ok := parseID(c, "id", "shift")
	if !ok {
		return
	}

	err := h.shifts.RequireOwner(c.Request.Context(), id, makerID)
	if errors.Is(err, repository.ErrShiftNotFound) {
		c.JSON(http.StatusOK, gin.H{"deleted": 0})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	n, err := h.shifts.DeleteShift(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// AddPositions attaches more positions. ?mode=refresh overwrites the pay
// of positions the shift already offers.
func (h *ShiftHandler) AddPositions(c *gin.Context) {
	mode, err := service.ParseAttachMode(c.Query("mode"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req AddPositionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	id, ok := h.owned(c)
	if !ok {
		return
	}

	res, err := h.shifts.AddPositions(c.Request.Context(), id, positionInputs(req.Positions), mode)
	respondBulkShift(c, http.StatusOK, res, err)
}

// Search filters shift positions by position (id or name) and, optionally,
// an exact payment amount.
func (h *ShiftHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	positionID, err := parseOptionalID(c.Query("position_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position ID format"})
		return
	}
	if positionID == nil {
		name := c.Query("position")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "position_id or position is required"})
			return
		}
		position, err := h.queries.LookupPosition(ctx, name)
		if err != nil {
			respondError(c, err)
			return
		}
		if position == nil {
			c.JSON(http.StatusOK, []ShiftSearchResult{})
			return
		}
		positionID = &position.ID
	}

	var amount decimal.NullDecimal
	if raw := c.Query("payment_amount"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment amount"})
			return
		}
		amount = decimal.NewNullDecimal(d)
	}

	rows, err := h.queries.SearchShiftPositions(ctx, *positionID, amount)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ShiftSearchResult, 0, len(rows))
	for _, sp := range rows {
		result := ShiftSearchResult{
			ShiftID:       sp.ShiftID.String(),
			PositionID:    sp.PositionID.String(),
			Position:      sp.Position.Name,
			PaymentAmount: amountString(sp.PaymentAmount),
			Filled:        sp.Filled,
		}
		if sp.Shift != nil {
			result.ShiftName = sp.Shift.Name
			result.TimeDate = sp.Shift.ScheduledAt.Format(time.RFC3339)
		}
		resp = append(resp, result)
	}
	c.JSON(http.StatusOK, resp)
}
