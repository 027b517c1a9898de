package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/correction"
	"github.com/kantor-hq/hr-backoffice-go/internal/handler/http/response"
	correctionservice "github.com/kantor-hq/hr-backoffice-go/internal/service/correction"
)

// CorrectionHandler defines the attendance correction handler interface
type CorrectionHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type correctionHandlerImpl struct {
	correctionService *correctionservice.Service
}

func NewCorrectionHandler(correctionService *correctionservice.Service) CorrectionHandler {
	return &correctionHandlerImpl{
		correctionService: correctionService,
	}
}

// Submit files a correction request for one of the caller's attendance days.
func (h *correctionHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req correction.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.correctionService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request submitted", correction.ToResponse(created))
}

// ListMine returns the caller's own correction requests.
func (h *correctionHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.correctionService.ListMine(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending returns the review queue. Admin only.
func (h *correctionHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.correctionService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Review settles one pending correction request. Admin only.
func (h *correctionHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	reviewerID := getEmployeeIDFromContext(r)
	if reviewerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req correction.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ReviewerID = reviewerID

	reviewed, err := h.correctionService.Review(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request reviewed", correction.ToResponse(reviewed))
}
