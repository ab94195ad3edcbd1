package payperiod

import "time"

// Calendar answers pay period queries against a fixed, pre-generated set.
// Every method is safe for concurrent use.
type Calendar interface {
	// All returns every generated period in order.
	All() []PayPeriod

	// Available returns the periods still selectable at now (end date plus the
	// grace window not yet passed).
	Available(now time.Time) []PayPeriod

	// Default picks the period a new statement should use at now.
	Default(now time.Time) (PayPeriod, error)

	// GetByID returns ErrPeriodNotFound for unknown ids.
	GetByID(id string) (PayPeriod, error)
}
