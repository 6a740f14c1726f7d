package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/cs-Nikhil/msdproject/internal/middleware"
	"github.com/cs-Nikhil/msdproject/internal/model"
)

// Router wires the full HTTP surface under /api.
func (h *Handler) Router(rl *middleware.RateLimiter) http.Handler {
	authn := middleware.Authenticate(h.secret, writeMessage)
	patientOnly := middleware.RequireRole(model.RolePatient, writeMessage)
	doctorOnly := middleware.RequireRole(model.RoleDoctor, writeMessage)
	limited := middleware.Limit(rl, writeMessage)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limited).Post("/register", h.Register)
			r.With(limited).Post("/login", h.Login)
			r.Post("/refresh", h.Refresh)
			r.With(authn).Post("/logout", h.Logout)
			r.With(authn).Get("/profile", h.Profile)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Use(authn)
			r.With(patientOnly).Post("/", h.CreateAppointment)
			r.Get("/", h.ListAppointments)
			r.Get("/{id}", h.GetAppointment)
			r.With(patientOnly).Put("/{id}", h.UpdateAppointment)
			r.With(patientOnly).Delete("/{id}", h.CancelAppointment)
		})

		r.Route("/doctors", func(r chi.Router) {
			r.Get("/", h.ListDoctors)
			r.Get("/{id}", h.GetDoctor)
			r.With(authn, doctorOnly).Get("/{id}/appointments", h.DoctorAppointments)
			r.With(authn, doctorOnly).Put("/appointments/{id}", h.UpdateAppointmentStatus)
		})
	})

	return r
}
