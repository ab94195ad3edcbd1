package payperiod

import (
	"fmt"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
)

const (
	periodLength = 14
	labelLayout  = "01/02/2006"
)

// Generate tiles bi-weekly periods from anchorStart until the next period would end
// after horizonEnd. Both arguments are treated as civil dates.
func Generate(anchorStart, horizonEnd time.Time) ([]payperiod.PayPeriod, error) {
	start := civilDate(anchorStart)
	horizon := civilDate(horizonEnd)
	if horizon.Before(start) {
		return nil, fmt.Errorf("%w: anchor %s, horizon %s", payperiod.ErrInvalidCalendarRange,
			start.Format(payperiod.DateLayout), horizon.Format(payperiod.DateLayout))
	}

	var periods []payperiod.PayPeriod
	for k := 0; ; k++ {
		periodStart := start.AddDate(0, 0, periodLength*k)
		periodEnd := periodStart.AddDate(0, 0, periodLength-1)
		if periodEnd.After(horizon) {
			break
		}
		periods = append(periods, payperiod.PayPeriod{
			ID:        fmt.Sprintf("pp-%03d", k+1),
			StartDate: periodStart,
			EndDate:   periodEnd,
			Label:     periodStart.Format(labelLayout) + " – " + periodEnd.Format(labelLayout),
		})
	}
	return periods, nil
}

type calendarImpl struct {
	periods []payperiod.PayPeriod
	byID    map[string]int
	loc     *time.Location
}

// NewCalendar generates the period set once. loc decides which civil day "now" is;
// nil means UTC.
func NewCalendar(anchorStart, horizonEnd time.Time, loc *time.Location) (payperiod.Calendar, error) {
	periods, err := Generate(anchorStart, horizonEnd)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, payperiod.ErrNoPayPeriods
	}
	if loc == nil {
		loc = time.UTC
	}

	byID := make(map[string]int, len(periods))
	for i, p := range periods {
		byID[p.ID] = i
	}
	return &calendarImpl{periods: periods, byID: byID, loc: loc}, nil
}

// All implements payperiod.Calendar.
func (c *calendarImpl) All() []payperiod.PayPeriod {
	out := make([]payperiod.PayPeriod, len(c.periods))
	copy(out, c.periods)
	return out
}

// Available implements payperiod.Calendar.
func (c *calendarImpl) Available(now time.Time) []payperiod.PayPeriod {
	today := c.today(now)
	var out []payperiod.PayPeriod
	for _, p := range c.periods {
		if !today.After(p.EndDate.AddDate(0, 0, payperiod.GraceDays)) {
			out = append(out, p)
		}
	}
	return out
}

// Default implements payperiod.Calendar.
func (c *calendarImpl) Default(now time.Time) (payperiod.PayPeriod, error) {
	if len(c.periods) == 0 {
		return payperiod.PayPeriod{}, payperiod.ErrNoPayPeriods
	}

	today := c.today(now)
	available := c.Available(now)

	for _, p := range available {
		if p.Contains(today) {
			return p, nil
		}
	}
	for _, p := range available {
		if p.StartDate.After(today) {
			return p, nil
		}
	}
	if len(available) > 0 {
		return available[len(available)-1], nil
	}
	// Past the horizon's grace window: keep offering the final period.
	return c.periods[len(c.periods)-1], nil
}

// GetByID implements payperiod.Calendar.
func (c *calendarImpl) GetByID(id string) (payperiod.PayPeriod, error) {
	i, ok := c.byID[id]
	if !ok {
		return payperiod.PayPeriod{}, fmt.Errorf("%w: %q", payperiod.ErrPeriodNotFound, id)
	}
	return c.periods[i], nil
}

func (c *calendarImpl) today(now time.Time) time.Time {
	return civilDate(now.In(c.loc))
}

// civilDate keeps the wall-clock date of t and moves it to midnight UTC.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
