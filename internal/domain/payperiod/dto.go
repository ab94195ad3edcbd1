package payperiod

type PayPeriodResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
}

func NewPayPeriodResponse(p PayPeriod) PayPeriodResponse {
	return PayPeriodResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format(DateLayout),
		EndDate:   p.EndDate.Format(DateLayout),
		Label:     p.Label,
	}
}

func NewPayPeriodResponses(periods []PayPeriod) []PayPeriodResponse {
	out := make([]PayPeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, NewPayPeriodResponse(p))
	}
	return out
}
