package contractor

import "errors"

var (
	ErrContractorNotFound   = errors.New("contractor not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
