package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
	"github.com/sipworks/brewadmin/internal/invoice/render"
	"github.com/sipworks/brewadmin/pkg/db/pagination"
)

type createInvoiceRequest struct {
	InvoiceNumber string     `json:"invoice_number"`
	ClientID      string     `json:"client_id"`
	PONumber      *string    `json:"po_number"`
	DueDate       *time.Time `json:"due_date"`
	Notes         *string    `json:"notes"`
	Language      string     `json:"language"`

	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxIncluded bool            `json:"tax_included"`
	Currency    string          `json:"currency"`
	FxToCNY     decimal.Decimal `json:"fx_to_cny"`

	Items []invoicedomain.ItemInput `json:"items"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateRequest{
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		ClientID:      strings.TrimSpace(req.ClientID),
		PONumber:      req.PONumber,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
		Language:      strings.TrimSpace(req.Language),
		TaxRate:       req.TaxRate,
		TaxIncluded:   req.TaxIncluded,
		Currency:      strings.TrimSpace(req.Currency),
		FxToCNY:       req.FxToCNY,
		Items:         req.Items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateInvoiceRequest struct {
	ClientID *string    `json:"client_id"`
	PONumber *string    `json:"po_number"`
	DueDate  *time.Time `json:"due_date"`
	Notes    *string    `json:"notes"`
	Language *string    `json:"language"`

	TaxRate     *decimal.Decimal `json:"tax_rate"`
	TaxIncluded *bool            `json:"tax_included"`
	Currency    *string          `json:"currency"`
	FxToCNY     *decimal.Decimal `json:"fx_to_cny"`

	Items []invoicedomain.ItemInput `json:"items"`
}

// UpdateInvoice is a PUT: the submitted items become the invoice's entire
// line set.
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		ClientID:    req.ClientID,
		PONumber:    req.PONumber,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		Language:    req.Language,
		TaxRate:     req.TaxRate,
		TaxIncluded: req.TaxIncluded,
		Currency:    req.Currency,
		FxToCNY:     req.FxToCNY,
		Items:       req.Items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		Status      string `form:"status"`
		ClientID    string `form:"client_id"`
		CreatedFrom string `form:"created_from"`
		CreatedTo   string `form:"created_to"`

		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := invoicedomain.ListRequest{Page: query.Pagination}
	if trimmed := strings.TrimSpace(query.Status); trimmed != "" {
		status := invoicedomain.PaymentStatus(trimmed)
		req.Status = &status
	}
	if trimmed := strings.TrimSpace(query.ClientID); trimmed != "" {
		req.ClientID = &trimmed
	}

	from, err := parseOptionalTime(query.CreatedFrom, false)
	if err != nil {
		AbortWithError(c, newValidationError("created_from", "invalid_time", "invalid time"))
		return
	}
	req.CreatedFrom = from

	to, err := parseOptionalTime(query.CreatedTo, true)
	if err != nil {
		AbortWithError(c, newValidationError("created_to", "invalid_time", "invalid time"))
		return
	}
	req.CreatedTo = to

	resp, pageInfo, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp, "page_info": pageInfo})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) MarkInvoicePaid(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkPaid(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkInvoiceCancelled(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkCancelled(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// RenderInvoice writes the invoice as a standalone HTML document, the piece
// the dashboard prints or saves as PDF from the browser.
func (s *Server) RenderInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	inv, err := s.invoiceSvc.GetByID(ctx, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	client, err := s.clientRepo.FindByID(ctx, s.db, inv.ClientID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if client == nil {
		AbortWithError(c, invoicedomain.ErrClientNotFound)
		return
	}

	ids := make([]snowflake.ID, 0, len(inv.Items))
	for _, item := range inv.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	names := make(map[int64]string, len(products))
	for _, p := range products {
		name := p.Name
		if inv.Language == invoicedomain.LanguageEN && p.NameEN != nil && *p.NameEN != "" {
			name = *p.NameEN
		}
		names[p.ID.Int64()] = name
	}

	html, err := s.renderer.RenderHTML(render.RenderInput{
		Invoice:      *inv,
		Client:       *client,
		ProductNames: names,
		CompanyName:  s.cfg.CompanyName,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidID,
		invoicedomain.ErrInvalidClient,
		invoicedomain.ErrInvalidCurrency,
		invoicedomain.ErrInvalidLanguage,
		invoicedomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
