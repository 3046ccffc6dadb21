package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	merchdomain "github.com/sipworks/brewadmin/internal/merch/domain"
)

type createMerchRequest struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Stock    int64           `json:"stock"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

func (s *Server) CreateMerchItem(c *gin.Context) {
	var req createMerchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.merchSvc.Create(c.Request.Context(), merchdomain.CreateRequest{
		Name:     strings.TrimSpace(req.Name),
		Kind:     strings.TrimSpace(req.Kind),
		Stock:    req.Stock,
		UnitCost: req.UnitCost,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateMerchRequest struct {
	Name     *string          `json:"name"`
	Kind     *string          `json:"kind"`
	Stock    *int64           `json:"stock"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Active   *bool            `json:"active"`
}

func (s *Server) UpdateMerchItem(c *gin.Context) {
	var req updateMerchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.merchSvc.Update(c.Request.Context(), merchdomain.UpdateRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Name:     req.Name,
		Kind:     req.Kind,
		Stock:    req.Stock,
		UnitCost: req.UnitCost,
		Active:   req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMerchItems(c *gin.Context) {
	var query struct {
		Kind   string `form:"kind"`
		Active string `form:"active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	req := merchdomain.ListRequest{Active: active}
	if trimmed := strings.TrimSpace(query.Kind); trimmed != "" {
		req.Kind = &trimmed
	}

	resp, err := s.merchSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMerchItemByID(c *gin.Context) {
	resp, err := s.merchSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteMerchItem(c *gin.Context) {
	if err := s.merchSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isMerchValidationError(err error) bool {
	switch err {
	case merchdomain.ErrInvalidID,
		merchdomain.ErrInvalidName,
		merchdomain.ErrInvalidKind,
		merchdomain.ErrInvalidCost:
		return true
	default:
		return false
	}
}
