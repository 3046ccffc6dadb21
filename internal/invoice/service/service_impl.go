package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	clientdomain "github.com/sipworks/brewadmin/internal/client/domain"
	"github.com/sipworks/brewadmin/internal/config"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
	"github.com/sipworks/brewadmin/internal/invoice/format"
	"github.com/sipworks/brewadmin/internal/invoice/totals"
	productdomain "github.com/sipworks/brewadmin/internal/product/domain"
	"github.com/sipworks/brewadmin/pkg/db"
	"github.com/sipworks/brewadmin/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Cfg         config.Config
	GenID       *snowflake.Node
	Repo        invoicedomain.Repository
	ClientRepo  clientdomain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	cfg         config.Config
	genID       *snowflake.Node
	repo        invoicedomain.Repository
	clientRepo  clientdomain.Repository
	productRepo productdomain.Repository
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("invoice.service"),
		cfg:         p.Cfg,
		genID:       p.GenID,
		repo:        p.Repo,
		clientRepo:  p.ClientRepo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (*invoicedomain.Invoice, error) {
	clientID, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	language, err := parseLanguage(req.Language)
	if err != nil {
		return nil, err
	}

	currency, fxRate, err := normalizeCurrency(req.Currency, req.FxToCNY)
	if err != nil {
		return nil, err
	}

	lines, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	figures, err := totals.Compute(lines, totals.TaxPolicy{
		Rate:      req.TaxRate,
		Inclusive: req.TaxIncluded,
	}, totals.CurrencyContext{
		Currency: currency,
		FxToCNY:  fxRate,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	number := strings.TrimSpace(req.InvoiceNumber)
	var numberSeq int64
	if number == "" {
		seq, err := s.repo.NextSequence(ctx, s.db)
		if err != nil {
			return nil, err
		}
		template := s.cfg.InvoiceNumberTemplate
		if template == "" {
			template = format.DefaultInvoiceNumberTemplate
		}
		number, err = format.InvoiceNumber(template, now, seq)
		if err != nil {
			return nil, err
		}
		numberSeq = seq
	}

	invoice := &invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		InvoiceNumber: number,
		NumberSeq:     numberSeq,
		ClientID:      clientID,
		PONumber:      trimPtr(req.PONumber),
		DueDate:       req.DueDate,
		PaymentStatus: invoicedomain.PaymentStatusPending,
		Notes:         trimPtr(req.Notes),
		Language:      language,
		TaxRate:       req.TaxRate,
		TaxIncluded:   req.TaxIncluded,
		Currency:      currency,
		FxToCNY:       fxRate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyTotals(invoice, figures)

	items := buildItems(s.genID, invoice.ID, lines, now)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, invoice, items)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, invoicedomain.ErrDuplicateNumber
		}
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("currency", invoice.Currency),
		zap.String("total", invoice.TotalAmount.String()),
	)

	invoice.Items = items
	return invoice, nil
}

// Update rewrites the header and replaces the entire line-item set in one
// transaction. Concurrent edits are last-writer-wins; there is no optimistic
// locking.
func (s *Service) Update(ctx context.Context, req invoicedomain.UpdateRequest) (*invoicedomain.Invoice, error) {
	invoice, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.ClientID != nil {
		clientID, err := s.resolveClient(ctx, *req.ClientID)
		if err != nil {
			return nil, err
		}
		invoice.ClientID = clientID
	}
	if req.PONumber != nil {
		invoice.PONumber = trimPtr(req.PONumber)
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.Notes != nil {
		invoice.Notes = trimPtr(req.Notes)
	}
	if req.Language != nil {
		language, err := parseLanguage(*req.Language)
		if err != nil {
			return nil, err
		}
		invoice.Language = language
	}
	if req.TaxRate != nil {
		invoice.TaxRate = *req.TaxRate
	}
	if req.TaxIncluded != nil {
		invoice.TaxIncluded = *req.TaxIncluded
	}
	if req.Currency != nil || req.FxToCNY != nil {
		currency := invoice.Currency
		if req.Currency != nil {
			currency = *req.Currency
		}
		fxRate := invoice.FxToCNY
		if req.FxToCNY != nil {
			fxRate = *req.FxToCNY
		} else if strings.ToUpper(strings.TrimSpace(currency)) == totals.CurrencyCNY {
			fxRate = decimal.NewFromInt(1)
		}
		invoice.Currency, invoice.FxToCNY, err = normalizeCurrency(currency, fxRate)
		if err != nil {
			return nil, err
		}
	}

	lines, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	figures, err := totals.Compute(lines, totals.TaxPolicy{
		Rate:      invoice.TaxRate,
		Inclusive: invoice.TaxIncluded,
	}, totals.CurrencyContext{
		Currency: invoice.Currency,
		FxToCNY:  invoice.FxToCNY,
	})
	if err != nil {
		return nil, err
	}
	applyTotals(invoice, figures)

	now := time.Now().UTC()
	invoice.UpdatedAt = now
	items := buildItems(s.genID, invoice.ID, lines, now)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.ReplaceItems(ctx, tx, invoice.ID, items); err != nil {
			return err
		}
		return s.repo.UpdateHeader(ctx, tx, invoice)
	})
	if err != nil {
		return nil, err
	}

	invoice.Items = items
	return invoice, nil
}

// Delete removes line items then the header; items never outlive their
// invoice.
func (s *Service) Delete(ctx context.Context, id string) error {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, invoice.ID)
	})
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListRequest) ([]invoicedomain.Invoice, *pagination.PageInfo, error) {
	if req.Status != nil {
		switch *req.Status {
		case invoicedomain.PaymentStatusPending, invoicedomain.PaymentStatusPaid, invoicedomain.PaymentStatusCancelled:
		default:
			return nil, nil, invoicedomain.ErrInvalidStatus
		}
	}

	pageSize := req.Page.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if req.Page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.Page.PageToken)
		if err != nil {
			return nil, nil, invoicedomain.ErrInvalidID
		}
		cursorID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, nil, invoicedomain.ErrInvalidID
		}
		req.CursorID = cursorID
	}
	req.Limit = pageSize + 1

	invoices, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, nil, err
	}

	return pagination.BuildCursorPageInfo(invoices, pageSize, func(inv invoicedomain.Invoice) pagination.Cursor {
		return pagination.Cursor{ID: inv.ID.String()}
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindItems(ctx, s.db, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return invoice, nil
}

func (s *Service) MarkPaid(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	return s.transition(ctx, id, invoicedomain.PaymentStatusPaid)
}

func (s *Service) MarkCancelled(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	return s.transition(ctx, id, invoicedomain.PaymentStatusCancelled)
}

func (s *Service) transition(ctx context.Context, id string, next invoicedomain.PaymentStatus) (*invoicedomain.Invoice, error) {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if invoice.PaymentStatus == next {
		return invoice, nil
	}
	if invoice.PaymentStatus == invoicedomain.PaymentStatusCancelled {
		return nil, invoicedomain.ErrStatusTransition
	}

	invoice.PaymentStatus = next
	invoice.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateHeader(ctx, s.db, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *Service) find(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, invoicedomain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, invoicedomain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) resolveClient(ctx context.Context, raw string) (snowflake.ID, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, invoicedomain.ErrInvalidClient
	}

	client, err := s.clientRepo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return 0, err
	}
	if client == nil {
		return 0, invoicedomain.ErrClientNotFound
	}
	return clientID, nil
}

// resolveLines parses line inputs and verifies every referenced product
// exists. Numeric validation itself belongs to the totals calculator.
func (s *Service) resolveLines(ctx context.Context, items []invoicedomain.ItemInput) ([]totals.LineInput, error) {
	lines := make([]totals.LineInput, 0, len(items))
	ids := make([]snowflake.ID, 0, len(items))
	for _, item := range items {
		productID, err := snowflake.ParseString(strings.TrimSpace(item.ProductID))
		if err != nil {
			return nil, invoicedomain.ErrProductNotFound
		}
		ids = append(ids, productID)
		lines = append(lines, totals.LineInput{
			ProductID: productID.Int64(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if len(ids) > 0 {
		known, err := s.productRepo.FindByIDs(ctx, s.db, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[snowflake.ID]bool, len(known))
		for _, p := range known {
			byID[p.ID] = true
		}
		for _, id := range ids {
			if !byID[id] {
				return nil, invoicedomain.ErrProductNotFound
			}
		}
	}

	return lines, nil
}

func applyTotals(invoice *invoicedomain.Invoice, figures totals.Totals) {
	invoice.Subtotal = figures.Subtotal
	invoice.TaxAmount = figures.Tax
	invoice.TotalAmount = figures.Total
	invoice.SubtotalOriginal = figures.SubtotalOriginal
	invoice.TaxOriginal = figures.TaxOriginal
	invoice.TotalOriginal = figures.TotalOriginal
}

func buildItems(genID *snowflake.Node, invoiceID snowflake.ID, lines []totals.LineInput, now time.Time) []invoicedomain.InvoiceItem {
	items := make([]invoicedomain.InvoiceItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, invoicedomain.InvoiceItem{
			ID:        genID.Generate(),
			InvoiceID: invoiceID,
			ProductID: snowflake.ID(line.ProductID),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total(),
			CreatedAt: now,
		})
	}
	return items
}

func normalizeCurrency(raw string, fx decimal.Decimal) (string, decimal.Decimal, error) {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	switch currency {
	case "", totals.CurrencyCNY:
		// CNY ledgers carry no conversion; an unset rate means 1.
		if fx.IsZero() {
			fx = decimal.NewFromInt(1)
		}
		return totals.CurrencyCNY, fx, nil
	case totals.CurrencyUSD:
		return totals.CurrencyUSD, fx, nil
	default:
		return "", decimal.Zero, invoicedomain.ErrInvalidCurrency
	}
}

func parseLanguage(raw string) (invoicedomain.Language, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "zh":
		return invoicedomain.LanguageZH, nil
	case "en":
		return invoicedomain.LanguageEN, nil
	default:
		return "", invoicedomain.ErrInvalidLanguage
	}
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
