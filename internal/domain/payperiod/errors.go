package payperiod

import "errors"

var (
	ErrPeriodNotFound       = errors.New("pay period not found")
	ErrNoPayPeriods         = errors.New("no pay periods generated")
	ErrInvalidCalendarRange = errors.New("pay period horizon must not precede the anchor date")
)
