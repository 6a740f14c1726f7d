package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/cs-Nikhil/msdproject/internal/model"
	"github.com/cs-Nikhil/msdproject/internal/store"
)

// integration tests; they need a migrated database and skip otherwise
func setup(t *testing.T) *store.Store {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	return store.New(pool)
}

func createUser(t *testing.T, st *store.Store, role model.Role) *model.User {
	t.Helper()
	u := &model.User{
		ID:           uuid.New().String(),
		Name:         "Test " + string(role),
		Email:        fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8]),
		Phone:        "555-0100",
		Role:         role,
		PasswordHash: "x",
	}
	if role == model.RoleDoctor {
		u.Specialization = "Cardiology"
		u.Experience = 7
	}
	if err := st.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createAppointment(t *testing.T, st *store.Store, patientID, doctorID, date string) *model.Appointment {
	t.Helper()
	d, _ := time.Parse("2006-01-02", date)
	a := &model.Appointment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      d,
		TimeSlot:  "09:00",
		Reason:    "checkup",
		Status:    model.StatusPending,
	}
	if err := st.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return a
}

func TestUserLookups(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	patient := createUser(t, st, model.RolePatient)
	doctor := createUser(t, st, model.RoleDoctor)

	got, err := st.UserByEmail(ctx, patient.Email)
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if got.ID != patient.ID || got.Role != model.RolePatient {
		t.Errorf("wrong user: %+v", got)
	}

	if _, err := st.UserByID(ctx, uuid.New().String()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// a patient id never resolves as a doctor
	if _, err := st.DoctorByID(ctx, patient.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for patient id, got %v", err)
	}
	d, err := st.DoctorByID(ctx, doctor.ID)
	if err != nil {
		t.Fatalf("doctor by id: %v", err)
	}
	if d.Specialization != "Cardiology" || d.Experience != 7 {
		t.Errorf("doctor fields: %+v", d)
	}

	doctors, err := st.ListDoctors(ctx)
	if err != nil {
		t.Fatalf("list doctors: %v", err)
	}
	found := false
	for _, u := range doctors {
		if u.ID == doctor.ID {
			found = true
		}
		if u.Role != model.RoleDoctor {
			t.Errorf("non-doctor in listing: %+v", u)
		}
	}
	if !found {
		t.Error("created doctor missing from listing")
	}
}

func TestAppointmentFlow(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	patient := createUser(t, st, model.RolePatient)
	doctor := createUser(t, st, model.RoleDoctor)

	a := createAppointment(t, st, patient.ID, doctor.ID, "2025-06-01")

	det, err := st.AppointmentDetailByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if det.Patient.Email != patient.Email || det.Doctor.Email != doctor.Email {
		t.Error("projection did not expand both parties")
	}
	if det.Doctor.Specialization != "Cardiology" {
		t.Error("doctor specialization missing from projection")
	}

	// partial field update leaves the parties untouched
	a.Reason = "follow-up"
	if err := st.UpdateAppointmentFields(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := st.AppointmentByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Reason != "follow-up" || got.PatientID != patient.ID || got.DoctorID != doctor.ID {
		t.Errorf("unexpected record after update: %+v", got)
	}

	if err := st.SetAppointmentStatus(ctx, a.ID, model.StatusConfirmed); err != nil {
		t.Fatalf("set status: %v", err)
	}
	got, _ = st.AppointmentByID(ctx, a.ID)
	if got.Status != model.StatusConfirmed {
		t.Errorf("status: %s", got.Status)
	}

	if err := st.SetAppointmentStatus(ctx, uuid.New().String(), model.StatusConfirmed); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing id: expected ErrNotFound, got %v", err)
	}
}

func TestListOrdering(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	patient := createUser(t, st, model.RolePatient)
	doctor := createUser(t, st, model.RoleDoctor)

	createAppointment(t, st, patient.ID, doctor.ID, "2025-06-01")
	createAppointment(t, st, patient.ID, doctor.ID, "2025-06-03")
	createAppointment(t, st, patient.ID, doctor.ID, "2025-06-02")

	list, err := st.ListForPatient(ctx, patient.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Date.Before(list[i].Date) {
			t.Error("expected newest date first")
		}
	}

	other, err := st.ListForDoctor(ctx, doctor.ID)
	if err != nil {
		t.Fatalf("doctor list: %v", err)
	}
	if len(other) != 3 {
		t.Errorf("doctor should see 3, got %d", len(other))
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	u := createUser(t, st, model.RolePatient)
	expiry := time.Now().Add(7 * 24 * time.Hour)

	hash1 := uuid.New().String()
	id1, err := st.CreateRefreshToken(ctx, u.ID, hash1, expiry)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	rt, err := st.RefreshTokenByHash(ctx, hash1)
	if err != nil {
		t.Fatalf("by hash: %v", err)
	}
	if rt.ID != id1 || rt.Revoked {
		t.Errorf("unexpected token: %+v", rt)
	}

	id2 := uuid.New().String()
	hash2 := uuid.New().String()
	if err := st.RotateRefreshToken(ctx, id1, id2, u.ID, hash2, expiry); err != nil {
		t.Fatalf("rotate: %v", err)
	}

	old, err := st.RefreshTokenByHash(ctx, hash1)
	if err != nil {
		t.Fatalf("old token: %v", err)
	}
	if !old.Revoked || old.ReplacedBy == nil || *old.ReplacedBy != id2 {
		t.Errorf("old token not rotated: %+v", old)
	}

	if err := st.RevokeAllRefreshTokens(ctx, u.ID); err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	cur, _ := st.RefreshTokenByHash(ctx, hash2)
	if cur == nil || !cur.Revoked {
		t.Error("token still active after revoke all")
	}
}
