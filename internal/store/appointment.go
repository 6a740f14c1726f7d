package store

import (
	"context"

	"github.com/cs-Nikhil/msdproject/internal/model"
)

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, patient_id, doctor_id, date, time_slot, reason, notes, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.TimeSlot, a.Reason, a.Notes, a.Status,
	)
	return err
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, patient_id, doctor_id, date, time_slot, reason, notes, status, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.TimeSlot,
		&a.Reason, &a.Notes, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// detailQuery joins both parties into the row; the API never returns a
// bare appointment, so the projection is done here rather than per caller.
const detailQuery = `
	SELECT a.id, a.patient_id, a.doctor_id, a.date, a.time_slot, a.reason, a.notes, a.status,
	       a.created_at, a.updated_at,
	       p.name, p.email, p.phone,
	       d.name, d.email, d.phone, d.specialization
	FROM appointments a
	JOIN users p ON p.id = a.patient_id
	JOIN users d ON d.id = a.doctor_id`

func scanDetail(row interface{ Scan(...any) error }) (*model.AppointmentDetail, error) {
	det := &model.AppointmentDetail{}
	err := row.Scan(
		&det.ID, &det.PatientID, &det.DoctorID, &det.Date, &det.TimeSlot,
		&det.Reason, &det.Notes, &det.Status, &det.CreatedAt, &det.UpdatedAt,
		&det.Patient.Name, &det.Patient.Email, &det.Patient.Phone,
		&det.Doctor.Name, &det.Doctor.Email, &det.Doctor.Phone, &det.Doctor.Specialization,
	)
	if err != nil {
		return nil, err
	}
	det.Patient.ID = det.PatientID
	det.Doctor.ID = det.DoctorID
	return det, nil
}

func (s *Store) AppointmentDetailByID(ctx context.Context, id string) (*model.AppointmentDetail, error) {
	det, err := scanDetail(s.pool.QueryRow(ctx, detailQuery+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return det, nil
}

func (s *Store) ListForPatient(ctx context.Context, patientID string) ([]model.AppointmentDetail, error) {
	return s.listDetails(ctx, detailQuery+` WHERE a.patient_id = $1 ORDER BY a.date DESC, a.created_at DESC`, patientID)
}

func (s *Store) ListForDoctor(ctx context.Context, doctorID string) ([]model.AppointmentDetail, error) {
	return s.listDetails(ctx, detailQuery+` WHERE a.doctor_id = $1 ORDER BY a.date DESC, a.created_at DESC`, doctorID)
}

func (s *Store) listDetails(ctx context.Context, query string, args ...any) ([]model.AppointmentDetail, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AppointmentDetail
	for rows.Next() {
		det, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *det)
	}
	return out, rows.Err()
}

// UpdateAppointmentFields persists the editable fields only. The
// patient_id and doctor_id columns are never touched after insert.
func (s *Store) UpdateAppointmentFields(ctx context.Context, a *model.Appointment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments
		 SET date=$1, time_slot=$2, reason=$3, notes=$4, updated_at=NOW()
		 WHERE id=$5`,
		a.Date, a.TimeSlot, a.Reason, a.Notes, a.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetAppointmentStatus(ctx context.Context, id string, status model.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
