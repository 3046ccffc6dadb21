package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	eventdomain "github.com/sipworks/brewadmin/internal/event/domain"
)

type createEventRequest struct {
	Title    string     `json:"title"`
	Venue    *string    `json:"venue"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Notes    *string    `json:"notes"`
}

func (s *Server) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.eventSvc.Create(c.Request.Context(), eventdomain.CreateRequest{
		Title:    strings.TrimSpace(req.Title),
		Venue:    req.Venue,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Notes:    req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateEventRequest struct {
	Title    *string    `json:"title"`
	Venue    *string    `json:"venue"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Status   *string    `json:"status"`
	Notes    *string    `json:"notes"`
}

func (s *Server) UpdateEvent(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := eventdomain.UpdateRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Title:    req.Title,
		Venue:    req.Venue,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Notes:    req.Notes,
	}
	if req.Status != nil {
		status := eventdomain.EventStatus(strings.TrimSpace(*req.Status))
		update.Status = &status
	}

	resp, err := s.eventSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEvents(c *gin.Context) {
	var query struct {
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := eventdomain.ListRequest{}
	if trimmed := strings.TrimSpace(query.Status); trimmed != "" {
		status := eventdomain.EventStatus(trimmed)
		req.Status = &status
	}

	resp, err := s.eventSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEventByID(c *gin.Context) {
	resp, err := s.eventSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEvent(c *gin.Context) {
	if err := s.eventSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isEventValidationError(err error) bool {
	switch err {
	case eventdomain.ErrInvalidID,
		eventdomain.ErrInvalidTitle,
		eventdomain.ErrInvalidWindow,
		eventdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
