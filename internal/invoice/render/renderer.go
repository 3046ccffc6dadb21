package render

import (
	clientdomain "github.com/sipworks/brewadmin/internal/client/domain"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
)

// RenderInput is everything the document needs resolved up front. Product
// names are passed in keyed by product ID so the renderer never touches the
// database.
type RenderInput struct {
	Invoice      invoicedomain.Invoice
	Client       clientdomain.Client
	ProductNames map[int64]string
	CompanyName  string
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
