package handler

import (
	"time"

	"werkshift/internal/model"
	"werkshift/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PositionRequest struct {
	Position      string              `json:"position" binding:"required"`
	PaymentAmount decimal.NullDecimal `json:"payment_amnt"`
	Description   string              `json:"description"`
}

type ShiftRequest struct {
	Name        string            `json:"name" binding:"required"`
	TimeDate    time.Time         `json:"time_date" binding:"required"`
	Duration    int               `json:"duration" binding:"required,gt=0"`
	Lat         float64           `json:"lat"`
	Long        float64           `json:"long"`
	Description string            `json:"description"`
	PaymentType string            `json:"payment_type"`
	Positions   []PositionRequest `json:"positions" binding:"dive"`
}

type AddPositionsRequest struct {
	Positions []PositionRequest `json:"positions" binding:"required,dive"`
}

type CertificationRequest struct {
	Certification string  `json:"certification" binding:"required"`
	URLPhoto      *string `json:"url_photo"`
	Description   string  `json:"description"`
}

type WerkerRequest struct {
	NameFirst      string                 `json:"name_first" binding:"required"`
	NameLast       string                 `json:"name_last" binding:"required"`
	Email          string                 `json:"email" binding:"required,email"`
	URLPhoto       string                 `json:"url_photo"`
	Bio            string                 `json:"bio"`
	Phone          string                 `json:"phone"`
	LastMinute     bool                   `json:"last_minute"`
	Lat            float64                `json:"lat"`
	Long           float64                `json:"long"`
	Certifications []CertificationRequest `json:"certifications" binding:"dive"`
	Positions      []string               `json:"positions" binding:"dive,required"`
}

type MakerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	URLPhoto string `json:"url_photo"`
	Phone    string `json:"phone"`
}

type InviteRequest struct {
	WerkerID   string     `json:"werker_id" binding:"required,uuid"`
	PositionID string     `json:"position_id" binding:"required,uuid"`
	Status     string     `json:"status"`
	Expiration *time.Time `json:"expiration"`
	Type       string     `json:"type"`
}

// TransitionRequest optionally narrows apply, accept and decline to one
// position of the shift.
type TransitionRequest struct {
	PositionID string `json:"position_id" binding:"omitempty,uuid"`
}

type RatingRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
	Score   int    `json:"score" binding:"required,min=1,max=5"`
}

type MakerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	URLPhoto string `json:"url_photo,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type ShiftPositionResponse struct {
	PositionID    string  `json:"position_id"`
	Position      string  `json:"position"`
	PaymentAmount *string `json:"payment_amnt"`
	Filled        bool    `json:"filled"`
}

type AssignmentResponse struct {
	ID         string  `json:"id"`
	ShiftID    string  `json:"shift_id"`
	WerkerID   string  `json:"werker_id"`
	WerkerName string  `json:"werker_name,omitempty"`
	PositionID string  `json:"position_id"`
	Position   string  `json:"position,omitempty"`
	Status     string  `json:"status"`
	Type       string  `json:"type"`
	Expiration *string `json:"expiration,omitempty"`
}

type ShiftResponse struct {
	ID          string                  `json:"id"`
	MakerID     string                  `json:"maker_id"`
	MakerName   string                  `json:"maker_name"`
	Name        string                  `json:"name"`
	TimeDate    string                  `json:"time_date"`
	Duration    int                     `json:"duration"`
	Lat         float64                 `json:"lat"`
	Long        float64                 `json:"long"`
	Description string                  `json:"description"`
	PaymentType string                  `json:"payment_type"`
	Positions   []ShiftPositionResponse `json:"positions"`
	Assignments []AssignmentResponse    `json:"assignments"`
}

type OutcomeResponse struct {
	Kind      string  `json:"kind"`
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	CatalogID *string `json:"catalog_id,omitempty"`
	Error     string  `json:"error,omitempty"`
}

type BulkShiftResponse struct {
	Shift    *ShiftResponse    `json:"shift,omitempty"`
	Outcomes []OutcomeResponse `json:"outcomes"`
	Error    string            `json:"error,omitempty"`
}

type CertificationResponse struct {
	CertificationID string  `json:"certification_id"`
	Name            string  `json:"name"`
	URLPhoto        *string `json:"url_photo"`
}

type CatalogResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type WerkerResponse struct {
	ID             string                  `json:"id"`
	NameFirst      string                  `json:"name_first"`
	NameLast       string                  `json:"name_last"`
	FullName       string                  `json:"full_name"`
	Email          string                  `json:"email"`
	URLPhoto       string                  `json:"url_photo,omitempty"`
	Bio            string                  `json:"bio,omitempty"`
	Phone          string                  `json:"phone,omitempty"`
	LastMinute     bool                    `json:"last_minute"`
	Lat            float64                 `json:"lat"`
	Long           float64                 `json:"long"`
	Certifications []CertificationResponse `json:"certifications"`
	Positions      []CatalogResponse       `json:"positions"`
	AverageRating  *float64                `json:"average_rating"`
}

type BulkWerkerResponse struct {
	Werker   *WerkerResponse   `json:"werker,omitempty"`
	Outcomes []OutcomeResponse `json:"outcomes"`
	Error    string            `json:"error,omitempty"`
}

type ShiftSearchResult struct {
	ShiftID       string  `json:"shift_id"`
	ShiftName     string  `json:"shift_name"`
	TimeDate      string  `json:"time_date"`
	PositionID    string  `json:"position_id"`
	Position      string  `json:"position"`
	PaymentAmount *string `json:"payment_amnt"`
	Filled        bool    `json:"filled"`
}

type RatingResponse struct {
	ID       string `json:"id"`
	WerkerID string `json:"werker_id"`
	ShiftID  string `json:"shift_id"`
	Score    int    `json:"score"`
}

func (r PositionRequest) input() service.PositionInput {
	return service.PositionInput{
		Position:      r.Position,
		PaymentAmount: r.PaymentAmount,
		Description:   r.Description,
	}
}

func positionInputs(reqs []PositionRequest) []service.PositionInput {
	inputs := make([]service.PositionInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = r.input()
	}
	return inputs
}

func amountString(amount decimal.NullDecimal) *string {
	if !amount.Valid {
		return nil
	}
	s := amount.Decimal.StringFixed(2)
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toMakerResponse(m *model.Maker) MakerResponse {
	return MakerResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		Email:    m.Email,
		URLPhoto: m.URLPhoto,
		Phone:    m.Phone,
	}
}

func toAssignmentResponse(ia model.InviteApply) AssignmentResponse {
	resp := AssignmentResponse{
		ID:         ia.ID.String(),
		ShiftID:    ia.ShiftID.String(),
		WerkerID:   ia.WerkerID.String(),
		PositionID: ia.PositionID.String(),
		Status:     string(ia.Status),
		Type:       string(ia.Type),
		Expiration: timeString(ia.Expiration),
	}
	if ia.Werker != nil {
		resp.WerkerName = ia.Werker.FullName()
	}
	if ia.Position != nil {
		resp.Position = ia.Position.Name
	}
	return resp
}

func toShiftResponse(s *model.Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:          s.ID.String(),
		MakerID:     s.MakerID.String(),
		MakerName:   s.Maker.Name,
		Name:        s.Name,
		TimeDate:    s.ScheduledAt.Format(time.RFC3339),
		Duration:    s.DurationMinutes,
		Lat:         s.Lat,
		Long:        s.Long,
		Description: s.Description,
		PaymentType: s.PaymentType,
		Positions:   make([]ShiftPositionResponse, 0, len(s.Positions)),
		Assignments: make([]AssignmentResponse, 0, len(s.Assignments)),
	}
	for _, sp := range s.Positions {
		resp.Positions = append(resp.Positions, ShiftPositionResponse{
			PositionID:    sp.PositionID.String(),
			Position:      sp.Position.Name,
			PaymentAmount: amountString(sp.PaymentAmount),
			Filled:        sp.Filled,
		})
	}
	for _, ia := range s.Assignments {
		resp.Assignments = append(resp.Assignments, toAssignmentResponse(ia))
	}
	return resp
}

func toOutcomes(outcomes []service.AttachOutcome) []OutcomeResponse {
	resp := make([]OutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		resp[i] = OutcomeResponse{Kind: o.Kind, Index: o.Index, Name: o.Name}
		if o.CatalogID != uuid.Nil {
			id := o.CatalogID.String()
			resp[i].CatalogID = &id
		}
		if o.Err != nil {
			resp[i].Error = o.Err.Error()
		}
	}
	return resp
}

func toWerkerResponse(w *model.Werker, avg *float64) WerkerResponse {
	resp := WerkerResponse{
		ID:             w.ID.String(),
		NameFirst:      w.NameFirst,
		NameLast:       w.NameLast,
		FullName:       w.FullName(),
		Email:          w.Email,
		URLPhoto:       w.URLPhoto,
		Bio:            w.Bio,
		Phone:          w.Phone,
		LastMinute:     w.LastMinute,
		Lat:            w.Lat,
		Long:           w.Long,
		Certifications: make([]CertificationResponse, 0, len(w.Certifications)),
		Positions:      make([]CatalogResponse, 0, len(w.Positions)),
		AverageRating:  avg,
	}
	for _, wc := range w.Certifications {
		resp.Certifications = append(resp.Certifications, CertificationResponse{
			CertificationID: wc.CertificationID.String(),
			Name:            wc.Certification.Name,
			URLPhoto:        wc.URLPhoto,
		})
	}
	for _, wp := range w.Positions {
		resp.Positions = append(resp.Positions, CatalogResponse{
			ID:   wp.PositionID.String(),
			Name: wp.Position.Name,
		})
	}
	return resp
}
