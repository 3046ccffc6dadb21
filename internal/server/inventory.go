package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	inventorydomain "github.com/sipworks/brewadmin/internal/inventory/domain"
)

func (s *Server) ListStockLevels(c *gin.Context) {
	resp, err := s.inventorySvc.Levels(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStockLevel(c *gin.Context) {
	resp, err := s.inventorySvc.Level(c.Request.Context(), strings.TrimSpace(c.Param("product_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type adjustStockRequest struct {
	ProductID string  `json:"product_id"`
	Kind      string  `json:"kind"`
	Delta     int64   `json:"delta"`
	Reason    *string `json:"reason"`
	Actor     *string `json:"actor"`
}

func (s *Server) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.Adjust(c.Request.Context(), inventorydomain.AdjustRequest{
		ProductID: strings.TrimSpace(req.ProductID),
		Kind:      inventorydomain.MovementKind(strings.TrimSpace(req.Kind)),
		Delta:     req.Delta,
		Reason:    req.Reason,
		Actor:     req.Actor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListStockMovements(c *gin.Context) {
	var query struct {
		ProductID string `form:"product_id"`
		Limit     string `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	limit, err := parseOptionalInt(query.Limit)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	resp, err := s.inventorySvc.Movements(c.Request.Context(), inventorydomain.MovementsRequest{
		ProductID: strings.TrimSpace(query.ProductID),
		Limit:     limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isInventoryValidationError(err error) bool {
	switch err {
	case inventorydomain.ErrInvalidProduct,
		inventorydomain.ErrInvalidKind,
		inventorydomain.ErrInvalidDelta:
		return true
	default:
		return false
	}
}
