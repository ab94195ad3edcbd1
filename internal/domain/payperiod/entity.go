package payperiod

import "time"

// DateLayout is the wire format of period boundaries.
const DateLayout = "2006-01-02"

// GraceDays keeps a closed period visible in pickers for this many days after it ends.
const GraceDays = 9

// PayPeriod is a fixed 14-day window. StartDate and EndDate are civil dates
// (midnight UTC) and both are inclusive.
type PayPeriod struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Label     string
}

// Contains reports whether the civil date day falls inside the period.
func (p PayPeriod) Contains(day time.Time) bool {
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}
