package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	productdomain "github.com/sipworks/brewadmin/internal/product/domain"
)

type createProductRequest struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	NameEN    *string         `json:"name_en"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	Active    *bool           `json:"active"`
	Metadata  map[string]any  `json:"metadata"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateRequest{
		SKU:       strings.TrimSpace(req.SKU),
		Name:      strings.TrimSpace(req.Name),
		NameEN:    req.NameEN,
		Category:  strings.TrimSpace(req.Category),
		UnitPrice: req.UnitPrice,
		Currency:  strings.TrimSpace(req.Currency),
		Active:    req.Active,
		Metadata:  req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateProductRequest struct {
	Name      *string          `json:"name"`
	NameEN    *string          `json:"name_en"`
	Category  *string          `json:"category"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Currency  *string          `json:"currency"`
	Active    *bool            `json:"active"`
	Metadata  map[string]any   `json:"metadata"`
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Update(c.Request.Context(), productdomain.UpdateRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		Name:      req.Name,
		NameEN:    req.NameEN,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		Currency:  req.Currency,
		Active:    req.Active,
		Metadata:  req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		Category string `form:"category"`
		Active   string `form:"active"`
		Search   string `form:"search"`
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

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListRequest{
		Category: strings.TrimSpace(query.Category),
		Active:   active,
		Search:   strings.TrimSpace(query.Search),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	resp, err := s.productSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchiveProduct(c *gin.Context) {
	resp, err := s.productSvc.Archive(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.productSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isProductValidationError(err error) bool {
	switch err {
	case productdomain.ErrInvalidSKU,
		productdomain.ErrInvalidName,
		productdomain.ErrInvalidPrice,
		productdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
