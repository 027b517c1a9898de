package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantor-hq/hr-backoffice-go/internal/handler/http/response"
	holidayservice "github.com/kantor-hq/hr-backoffice-go/internal/service/holiday"
)

// HolidayHandler defines the holiday catalog handler interface
type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService *holidayservice.Service
}

func NewHolidayHandler(holidayService *holidayservice.Service) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
	}
}

// List returns the holidays of one year, defaulting to the current year.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year := getIntQueryParam(r, "year", time.Now().Year())

	holidays, err := h.holidayService.ListByYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// Create adds a holiday to the catalog. Admin only.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", holiday.ToResponse(created))
}

// Delete removes a holiday. Admin only.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.holidayService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
