package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cs-Nikhil/msdproject/internal/booking"
	"github.com/cs-Nikhil/msdproject/internal/middleware"
	"github.com/cs-Nikhil/msdproject/internal/model"
)

const dateLayout = "2006-01-02"

type createAppointmentRequest struct {
	Doctor string `json:"doctor" validate:"required"`
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
	Reason string `json:"reason" validate:"required"`
	Notes  string `json:"notes"`
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.Identity(r.Context())

	var req createAppointmentRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	det, err := h.svc.Create(r.Context(), id, booking.CreateInput{
		DoctorID: req.Doctor,
		Date:     date,
		TimeSlot: req.Time,
		Reason:   req.Reason,
		Notes:    req.Notes,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, det)
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.Identity(r.Context())

	list, err := h.svc.ListForUser(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []model.AppointmentDetail{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.Identity(r.Context())

	det, err := h.svc.Get(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, det)
}

type updateAppointmentRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.Identity(r.Context())

	var req updateAppointmentRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in := booking.UpdateInput{TimeSlot: req.Time, Reason: req.Reason, Notes: req.Notes}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		in.Date = date
	}

	det, err := h.svc.UpdateFields(r.Context(), id, chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, det)
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.Identity(r.Context())

	if err := h.svc.Cancel(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Appointment cancelled")
}
