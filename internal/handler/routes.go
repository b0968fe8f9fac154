package handler

import (
	"werkshift/internal/auth"
	"werkshift/internal/middleware"
	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
)

// Services are the dependencies of the HTTP handlers.
type Services struct {
	Makers      *service.MakerService
	Shifts      *service.ShiftService
	Werkers     *service.WerkerService
	Assignments *service.AssignmentService
	Queries     *service.QueryService
}

type Handlers struct {
	Makers      *MakerHandler
	Shifts      *ShiftHandler
	Werkers     *WerkerHandler
	Assignments *AssignmentHandler
	Catalog     *CatalogHandler
}

func NewHandlers(s Services) *Handlers {
	return &Handlers{
		Makers:      NewMakerHandler(s.Makers, s.Queries),
		Shifts:      NewShiftHandler(s.Shifts, s.Queries),
		Werkers:     NewWerkerHandler(s.Werkers, s.Queries),
		Assignments: NewAssignmentHandler(s.Assignments, s.Shifts, s.Queries),
		Catalog:     NewCatalogHandler(s.Queries),
	}
}

// Register mounts every API route on r. Reads are public; writes need a
// bearer token of the acting role.
func (h *Handlers) Register(r gin.IRouter, tokens middleware.TokenParser) {
	authed := middleware.JWTAuthMiddleware(tokens)
	maker := middleware.RequireRole(auth.RoleMaker)
	werker := middleware.RequireRole(auth.RoleWerker)

	r.GET("/makers/:id", h.Makers.GetByID)
	r.POST("/makers", authed, maker, h.Makers.Create)

	shifts := r.Group("/shifts")
	{
		shifts.GET("", h.Shifts.GetAll)
		shifts.GET("/search", h.Shifts.Search)
		shifts.GET("/:id", h.Shifts.GetByID)
		shifts.GET("/:id/assignments", h.Assignments.List)

		shifts.POST("", authed, maker, h.Shifts.Create)
		shifts.PUT("/:id", authed, maker, h.Shifts.Update)
		shifts.DELETE("/:id", authed, maker, h.Shifts.Delete)
		shifts.PUT("/:id/positions", authed, maker, h.Shifts.AddPositions)
		shifts.POST("/:id/invites", authed, maker, h.Assignments.Invite)

		shifts.POST("/:id/apply", authed, werker, h.Assignments.Apply)
		shifts.POST("/:id/accept", authed, werker, h.Assignments.Accept)
		shifts.POST("/:id/decline", authed, werker, h.Assignments.Decline)
	}

	werkers := r.Group("/werkers")
	{
		werkers.GET("/search", h.Werkers.Search)
		werkers.GET("/:id", h.Werkers.GetByID)

		werkers.POST("", authed, werker, h.Werkers.Create)
		werkers.PUT("/:id", authed, werker, h.Werkers.Update)
		werkers.DELETE("/:id", authed, werker, h.Werkers.Delete)
		werkers.POST("/:id/ratings", authed, maker, h.Werkers.Rate)
	}

	r.GET("/positions", h.Catalog.FindPosition)
	r.GET("/positions/:id", h.Catalog.GetPosition)
	r.GET("/certifications", h.Catalog.FindCertification)
}
