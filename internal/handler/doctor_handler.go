package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cs-Nikhil/msdproject/internal/middleware"
	"github.com/cs-Nikhil/msdproject/internal/model"
)

// ListDoctors is public: all doctor accounts minus sensitive fields
// (the password hash never serializes).
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.svc.Doctors(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if doctors == nil {
		doctors = []model.User{}
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.svc.DoctorByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctor)
}

func (h *Handler) DoctorAppointments(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.Identity(r.Context())

	list, err := h.svc.DoctorAppointments(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []model.AppointmentDetail{}
	}
	writeJSON(w, http.StatusOK, list)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateAppointmentStatus is the doctor's confirm/complete/cancel action.
func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.Identity(r.Context())

	var req statusRequest
	if err := decode(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	det, err := h.svc.SetStatus(r.Context(), id, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, det)
}
