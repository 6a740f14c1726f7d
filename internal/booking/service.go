// Package booking implements the appointment lifecycle: creation by
// patients, field edits while pending, cancellation, and status
// transitions applied by the assigned doctor.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cs-Nikhil/msdproject/internal/authz"
	"github.com/cs-Nikhil/msdproject/internal/model"
	"github.com/cs-Nikhil/msdproject/internal/store"
)

// Store is the persistence surface the service needs.
type Store interface {
	DoctorByID(ctx context.Context, id string) (*model.User, error)
	ListDoctors(ctx context.Context) ([]model.User, error)

	CreateAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	AppointmentDetailByID(ctx context.Context, id string) (*model.AppointmentDetail, error)
	ListForPatient(ctx context.Context, patientID string) ([]model.AppointmentDetail, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]model.AppointmentDetail, error)
	UpdateAppointmentFields(ctx context.Context, a *model.Appointment) error
	SetAppointmentStatus(ctx context.Context, id string, status model.Status) error
}

// Notifier is the email sink. Delivery is best effort; the service never
// fails a request because a notification could not be sent.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	store  Store
	notify Notifier
	log    *zap.Logger

	// allowCancelCompleted accepts a patient cancel even after the
	// doctor marked the appointment completed.
	allowCancelCompleted bool
}

func NewService(st Store, n Notifier, log *zap.Logger, allowCancelCompleted bool) *Service {
	return &Service{store: st, notify: n, log: log, allowCancelCompleted: allowCancelCompleted}
}

type CreateInput struct {
	DoctorID string
	Date     time.Time
	TimeSlot string
	Reason   string
	Notes    string
}

// Create books a new appointment for the acting patient. The doctor
// reference must resolve to an existing doctor account before anything
// is written.
func (s *Service) Create(ctx context.Context, id authz.Identity, in CreateInput) (*model.AppointmentDetail, error) {
	if !authz.CanCreate(id) {
		return nil, fmt.Errorf("%w: only patients can book appointments", ErrNotAuthorized)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	doctor, err := s.store.DoctorByID(ctx, in.DoctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid doctor", ErrInvalidInput)
		}
		return nil, err
	}

	a := &model.Appointment{
		ID:        uuid.New().String(),
		PatientID: id.UserID,
		DoctorID:  doctor.ID,
		Date:      in.Date,
		TimeSlot:  in.TimeSlot,
		Reason:    in.Reason,
		Notes:     in.Notes,
		Status:    model.StatusPending,
	}
	if err := s.store.CreateAppointment(ctx, a); err != nil {
		return nil, err
	}

	det, err := s.store.AppointmentDetailByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	s.sendMail(det.Doctor.Email, "New appointment request",
		fmt.Sprintf("%s requested an appointment on %s at %s: %s",
			det.Patient.Name, det.Date.Format("2006-01-02"), det.TimeSlot, det.Reason))
	return det, nil
}

// Get fetches one appointment; only the two parties may read it.
func (s *Service) Get(ctx context.Context, id authz.Identity, apptID string) (*model.AppointmentDetail, error) {
	det, err := s.store.AppointmentDetailByID(ctx, apptID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("appointment %w", ErrNotFound)
		}
		return nil, err
	}
	if !authz.CanRead(id, &det.Appointment) {
		return nil, ErrNotAuthorized
	}
	return det, nil
}

// ListForUser returns the caller's appointments, newest date first.
// Patients see the ones they booked, doctors the ones assigned to them.
func (s *Service) ListForUser(ctx context.Context, id authz.Identity) ([]model.AppointmentDetail, error) {
	if id.Role == model.RoleDoctor {
		return s.store.ListForDoctor(ctx, id.UserID)
	}
	return s.store.ListForPatient(ctx, id.UserID)
}

type UpdateInput struct {
	Date     time.Time
	TimeSlot string
	Reason   string
	Notes    string
}

// UpdateFields lets the owning patient edit a still-pending appointment.
// Zero-valued fields keep their prior value; the patient and doctor
// references are never editable.
func (s *Service) UpdateFields(ctx context.Context, id authz.Identity, apptID string, in UpdateInput) (*model.AppointmentDetail, error) {
	a, err := s.loadOwned(ctx, id, apptID)
	if err != nil {
		return nil, err
	}
	if a.Status != model.StatusPending {
		return nil, fmt.Errorf("%w: cannot update confirmed or completed appointments", ErrInvalidState)
	}

	if !in.Date.IsZero() {
		a.Date = in.Date
	}
	if in.TimeSlot != "" {
		a.TimeSlot = in.TimeSlot
	}
	if in.Reason != "" {
		a.Reason = in.Reason
	}
	if in.Notes != "" {
		a.Notes = in.Notes
	}

	if err := s.store.UpdateAppointmentFields(ctx, a); err != nil {
		return nil, err
	}
	return s.store.AppointmentDetailByID(ctx, apptID)
}

// Cancel marks the appointment cancelled. Cancelling twice is a no-op in
// effect. Cancelling a completed appointment is allowed or rejected by
// configuration.
func (s *Service) Cancel(ctx context.Context, id authz.Identity, apptID string) error {
	a, err := s.loadOwned(ctx, id, apptID)
	if err != nil {
		return err
	}
	if a.Status == model.StatusCompleted && !s.allowCancelCompleted {
		return fmt.Errorf("%w: appointment already completed", ErrInvalidState)
	}

	if err := s.store.SetAppointmentStatus(ctx, apptID, model.StatusCancelled); err != nil {
		return err
	}
	if det, err := s.store.AppointmentDetailByID(ctx, apptID); err == nil {
		s.sendMail(det.Doctor.Email, "Appointment cancelled",
			fmt.Sprintf("%s cancelled the appointment on %s at %s.",
				det.Patient.Name, det.Date.Format("2006-01-02"), det.TimeSlot))
	}
	return nil
}

// SetStatus applies a doctor's status change. The requested status must
// be a known value and a legal transition from the current one.
func (s *Service) SetStatus(ctx context.Context, id authz.Identity, apptID, requested string) (*model.AppointmentDetail, error) {
	a, err := s.store.AppointmentByID(ctx, apptID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("appointment %w", ErrNotFound)
		}
		return nil, err
	}
	if !authz.CanSetStatus(id, a) {
		return nil, ErrNotAuthorized
	}

	next, ok := model.ParseStatus(requested)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, requested)
	}
	if !model.CanTransition(a.Status, next) {
		return nil, fmt.Errorf("%w: cannot move %s appointment to %s", ErrInvalidState, a.Status, next)
	}

	if err := s.store.SetAppointmentStatus(ctx, apptID, next); err != nil {
		return nil, err
	}
	det, err := s.store.AppointmentDetailByID(ctx, apptID)
	if err != nil {
		return nil, err
	}
	s.sendMail(det.Patient.Email, "Appointment "+string(next),
		fmt.Sprintf("Your appointment with Dr. %s on %s at %s is now %s.",
			det.Doctor.Name, det.Date.Format("2006-01-02"), det.TimeSlot, next))
	return det, nil
}

// Doctors is the public directory of doctor accounts.
func (s *Service) Doctors(ctx context.Context) ([]model.User, error) {
	return s.store.ListDoctors(ctx)
}

func (s *Service) DoctorByID(ctx context.Context, doctorID string) (*model.User, error) {
	d, err := s.store.DoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("doctor %w", ErrNotFound)
		}
		return nil, err
	}
	return d, nil
}

// DoctorAppointments lists a doctor's schedule; doctors may only read
// their own.
func (s *Service) DoctorAppointments(ctx context.Context, id authz.Identity, doctorID string) ([]model.AppointmentDetail, error) {
	if id.Role != model.RoleDoctor || id.UserID != doctorID {
		return nil, ErrNotAuthorized
	}
	return s.store.ListForDoctor(ctx, doctorID)
}

func (s *Service) loadOwned(ctx context.Context, id authz.Identity, apptID string) (*model.Appointment, error) {
	a, err := s.store.AppointmentByID(ctx, apptID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("appointment %w", ErrNotFound)
		}
		return nil, err
	}
	if !authz.CanCancel(id, a) {
		return nil, ErrNotAuthorized
	}
	return a, nil
}

// sendMail delivers a notification off the request path. Failures are
// logged and dropped.
func (s *Service) sendMail(to, subject, body string) {
	if s.notify == nil || to == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notify.Send(ctx, to, subject, body); err != nil {
			s.log.Warn("notification failed", zap.String("to", to), zap.Error(err))
		}
	}()
}
