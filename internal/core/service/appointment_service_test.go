package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// mondayAt returns the next Monday at the given clock time, always ahead of
// the wall clock.
func mondayAt(hour, minute int) time.Time {
	day := time.Now().UTC().AddDate(0, 0, 1)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func newAppointmentFixture() (*AppointmentService, *stubAppointmentRepo, *stubDispatcher) {
	patients := newStubPatientRepo()
	doctors := newStubDoctorRepo()
	appointments := newStubAppointmentRepo()
	dispatcher := &stubDispatcher{}

	_ = patients.Create(context.Background(), &domain.Patient{UserID: "pat_1"})
	_ = doctors.Create(context.Background(), &domain.Doctor{
		UserID: "doc_1",
		Availability: domain.WeeklyAvailability{
			time.Monday: {Start: "09:00", End: "17:00"},
		},
	})

	svc := NewAppointmentService(appointments, patients, doctors, dispatcher, testLogger())
	return svc, appointments, dispatcher
}

func TestAppointmentService_Create_WithinAvailability(t *testing.T) {
	svc, _, dispatcher := newAppointmentFixture()
	actor := ports.Actor{UserID: "pat_1", Role: domain.RolePatient}

	appt, err := svc.Create(context.Background(), actor, ports.CreateAppointmentInput{
		PatientID:   "pat_1",
		DoctorID:    "doc_1",
		ScheduledAt: mondayAt(10, 0),
		Reason:      "checkup",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if appt.Status != domain.AppointmentScheduled {
		t.Fatalf("expected scheduled status, got %s", appt.Status)
	}
	if len(dispatcher.enqueued) != 1 || dispatcher.enqueued[0].Kind != "created" {
		t.Fatalf("expected one created reminder, got %+v", dispatcher.enqueued)
	}
}

func TestAppointmentService_Create_OutsideAvailability(t *testing.T) {
	svc, _, _ := newAppointmentFixture()
	actor := ports.Actor{UserID: "pat_1", Role: domain.RolePatient}

	// Monday 20:00 is after hours; Tuesday has no window at all.
	for _, at := range []time.Time{mondayAt(20, 0), mondayAt(10, 0).AddDate(0, 0, 1)} {
		_, err := svc.Create(context.Background(), actor, ports.CreateAppointmentInput{
			PatientID:   "pat_1",
			DoctorID:    "doc_1",
			ScheduledAt: at,
		})
		if !errors.Is(err, domain.ErrOutsideAvailability) {
			t.Fatalf("time %v: expected ErrOutsideAvailability, got %v", at, err)
		}
	}
}

func TestAppointmentService_Create_RejectsPastTime(t *testing.T) {
	svc, _, _ := newAppointmentFixture()
	actor := ports.Actor{UserID: "adm_1", Role: domain.RoleAdmin}

	// A past Monday sits inside the weekly window but must still be refused.
	_, err := svc.Create(context.Background(), actor, ports.CreateAppointmentInput{
		PatientID:   "pat_1",
		DoctorID:    "doc_1",
		ScheduledAt: mondayAt(10, 0).AddDate(0, 0, -14),
	})
	if !errors.Is(err, auth.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for past time, got %v", err)
	}
}

func TestAppointmentService_Create_PatientCannotBookForOthers(t *testing.T) {
	svc, _, _ := newAppointmentFixture()
	actor := ports.Actor{UserID: "pat_2", Role: domain.RolePatient}

	_, err := svc.Create(context.Background(), actor, ports.CreateAppointmentInput{
		PatientID:   "pat_1",
		DoctorID:    "doc_1",
		ScheduledAt: mondayAt(10, 0),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAppointmentService_Create_UnknownDoctor(t *testing.T) {
	svc, _, _ := newAppointmentFixture()
	actor := ports.Actor{UserID: "adm_1", Role: domain.RoleAdmin}

	_, err := svc.Create(context.Background(), actor, ports.CreateAppointmentInput{
		PatientID:   "pat_1",
		DoctorID:    "doc_missing",
		ScheduledAt: mondayAt(10, 0),
	})
	if !errors.Is(err, domain.ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestAppointmentService_Get_OwnershipScoped(t *testing.T) {
	svc, _, _ := newAppointmentFixture()
	staff := ports.Actor{UserID: "adm_1", Role: domain.RoleAdmin}

	appt, err := svc.Create(context.Background(), staff, ports.CreateAppointmentInput{
		PatientID:   "pat_1",
		DoctorID:    "doc_1",
		ScheduledAt: mondayAt(11, 0),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), ports.Actor{UserID: "pat_1", Role: domain.RolePatient}, appt.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := svc.Get(context.Background(), ports.Actor{UserID: "pat_2", Role: domain.RolePatient}, appt.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other patient, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ports.Actor{UserID: "doc_2", Role: domain.RoleDoctor}, appt.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other doctor, got %v", err)
	}
}

func TestAppointmentService_List_NarrowsToOwnRecords(t *testing.T) {
	svc, _, _ := newAppointmentFixture()
	staff := ports.Actor{UserID: "adm_1", Role: domain.RoleAdmin}

	_, _ = svc.Create(context.Background(), staff, ports.CreateAppointmentInput{
		PatientID: "pat_1", DoctorID: "doc_1", ScheduledAt: mondayAt(9, 30),
	})

	// A patient asking for someone else's records still gets their own.
	items, _, err := svc.List(context.Background(), ports.Actor{UserID: "pat_2", Role: domain.RolePatient}, ports.AppointmentFilter{PatientID: "pat_1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list for pat_2, got %d items", len(items))
	}

	items, _, err = svc.List(context.Background(), ports.Actor{UserID: "doc_1", Role: domain.RoleDoctor}, ports.AppointmentFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item for doc_1, got %d", len(items))
	}
}

func TestAppointmentService_UpdateStatus_Transitions(t *testing.T) {
	svc, _, dispatcher := newAppointmentFixture()
	staff := ports.Actor{UserID: "rec_1", Role: domain.RoleReceptionist}

	appt, _ := svc.Create(context.Background(), staff, ports.CreateAppointmentInput{
		PatientID: "pat_1", DoctorID: "doc_1", ScheduledAt: mondayAt(14, 0),
	})

	// scheduled -> completed is not allowed.
	if _, err := svc.UpdateStatus(context.Background(), staff, appt.ID, domain.AppointmentCompleted, ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), staff, appt.ID, domain.AppointmentConfirmed, "")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if updated.Status != domain.AppointmentConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), staff, appt.ID, domain.AppointmentCompleted, "seen"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// created + confirmed reminders; completion does not notify.
	if len(dispatcher.enqueued) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(dispatcher.enqueued))
	}
}

func TestAppointmentService_UpdateStatus_PatientMayOnlyCancelOwn(t *testing.T) {
	svc, _, _ := newAppointmentFixture()
	staff := ports.Actor{UserID: "adm_1", Role: domain.RoleAdmin}

	appt, _ := svc.Create(context.Background(), staff, ports.CreateAppointmentInput{
		PatientID: "pat_1", DoctorID: "doc_1", ScheduledAt: mondayAt(15, 0),
	})

	owner := ports.Actor{UserID: "pat_1", Role: domain.RolePatient}
	if _, err := svc.UpdateStatus(context.Background(), owner, appt.ID, domain.AppointmentConfirmed, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("patient confirming: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), owner, appt.ID, domain.AppointmentCancelled, ""); err != nil {
		t.Fatalf("patient cancelling own: %v", err)
	}

	other := ports.Actor{UserID: "pat_2", Role: domain.RolePatient}
	if _, err := svc.UpdateStatus(context.Background(), other, appt.ID, domain.AppointmentCancelled, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other patient cancelling: expected ErrForbidden, got %v", err)
	}
}
