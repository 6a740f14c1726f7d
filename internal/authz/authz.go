// Package authz decides whether an acting user may touch an appointment.
// Every rule is a pure function of the caller's identity and the record;
// nothing here reads the database.
package authz

import "github.com/cs-Nikhil/msdproject/internal/model"

// Identity is the request-scoped caller extracted from the access token.
type Identity struct {
	UserID string
	Role   model.Role
}

// CanRead: either party to the appointment may read it.
func CanRead(id Identity, a *model.Appointment) bool {
	return id.UserID == a.PatientID || id.UserID == a.DoctorID
}

// CanCreate: only patients book appointments.
func CanCreate(id Identity) bool {
	return id.Role == model.RolePatient
}

// CanEdit: only the owning patient, and only while the appointment
// is still pending.
func CanEdit(id Identity, a *model.Appointment) bool {
	return id.UserID == a.PatientID && a.Status == model.StatusPending
}

// CanCancel: only the owning patient. State is checked separately;
// whether a completed appointment may still be cancelled is policy,
// not ownership.
func CanCancel(id Identity, a *model.Appointment) bool {
	return id.UserID == a.PatientID
}

// CanSetStatus: only the assigned doctor changes status.
func CanSetStatus(id Identity, a *model.Appointment) bool {
	return id.UserID == a.DoctorID
}
