package domain

import "errors"

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidClient    = errors.New("invalid_client")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrInvalidLanguage  = errors.New("invalid_language")
	ErrInvalidStatus    = errors.New("invalid_payment_status")
	ErrNotFound         = errors.New("not_found")
	ErrClientNotFound   = errors.New("client_not_found")
	ErrProductNotFound  = errors.New("product_not_found")
	ErrDuplicateNumber  = errors.New("duplicate_invoice_number")
	ErrStatusTransition = errors.New("invalid_status_transition")
)
