package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/sipworks/brewadmin/internal/client/domain"
)

type createClientRequest struct {
	Company  string         `json:"company"`
	Contact  *string        `json:"contact"`
	Email    *string        `json:"email"`
	Phone    *string        `json:"phone"`
	Address  *string        `json:"address"`
	Currency string         `json:"currency"`
	Notes    *string        `json:"notes"`
	Metadata map[string]any `json:"metadata"`
}

func (s *Server) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.Create(c.Request.Context(), clientdomain.CreateRequest{
		Company:  strings.TrimSpace(req.Company),
		Contact:  req.Contact,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Currency: strings.TrimSpace(req.Currency),
		Notes:    req.Notes,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateClientRequest struct {
	Company  *string        `json:"company"`
	Contact  *string        `json:"contact"`
	Email    *string        `json:"email"`
	Phone    *string        `json:"phone"`
	Address  *string        `json:"address"`
	Currency *string        `json:"currency"`
	Notes    *string        `json:"notes"`
	Metadata map[string]any `json:"metadata"`
}

func (s *Server) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.Update(c.Request.Context(), clientdomain.UpdateRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Company:  req.Company,
		Contact:  req.Contact,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Currency: req.Currency,
		Notes:    req.Notes,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListClients(c *gin.Context) {
	var query struct {
		Search   string `form:"search"`
		Currency string `form:"currency"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.List(c.Request.Context(), clientdomain.ListRequest{
		Search:   strings.TrimSpace(query.Search),
		Currency: strings.TrimSpace(query.Currency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetClientByID(c *gin.Context) {
	resp, err := s.clientSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteClient(c *gin.Context) {
	if err := s.clientSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isClientValidationError(err error) bool {
	switch err {
	case clientdomain.ErrInvalidCompany,
		clientdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
