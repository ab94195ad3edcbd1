package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
	"github.com/element-cleaning/paystatement-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayPeriodHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Default(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type PayPeriodHandlerImpl struct {
	calendar payperiod.Calendar
	now      func() time.Time
}

func NewPayPeriodHandler(calendar payperiod.Calendar) PayPeriodHandler {
	return &PayPeriodHandlerImpl{
		calendar: calendar,
		now:      time.Now,
	}
}

// List returns every period, or only the selectable ones with ?available=true.
func (h *PayPeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	availableOnly, _ := strconv.ParseBool(r.URL.Query().Get("available"))

	periods := h.calendar.All()
	if availableOnly {
		periods = h.calendar.Available(h.now())
	}

	response.SuccessWithMeta(w, payperiod.NewPayPeriodResponses(periods), &response.Meta{
		TotalItems: int64(len(periods)),
	})
}

func (h *PayPeriodHandlerImpl) Default(w http.ResponseWriter, r *http.Request) {
	period, err := h.calendar.Default(h.now())
	if err != nil {
		slog.Error("Default pay period error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, payperiod.NewPayPeriodResponse(period))
}

func (h *PayPeriodHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	period, err := h.calendar.GetByID(id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payperiod.NewPayPeriodResponse(period))
}
