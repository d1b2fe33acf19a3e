package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- user repository stub ---

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// --- patient repository stub ---

type stubPatientRepo struct {
	patients map[string]*domain.Patient
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[string]*domain.Patient)}
}

func (r *stubPatientRepo) Create(_ context.Context, p *domain.Patient) error {
	clone := *p
	r.patients[p.UserID] = &clone
	return nil
}

func (r *stubPatientRepo) FindByUserID(_ context.Context, userID string) (*domain.Patient, error) {
	if p, ok := r.patients[userID]; ok {
		out := *p
		return &out, nil
	}
	return nil, domain.ErrPatientNotFound
}

func (r *stubPatientRepo) List(_ context.Context, page, limit int) ([]*domain.Patient, int64, error) {
	out := make([]*domain.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubPatientRepo) Update(_ context.Context, p *domain.Patient) error {
	if _, ok := r.patients[p.UserID]; !ok {
		return domain.ErrPatientNotFound
	}
	clone := *p
	r.patients[p.UserID] = &clone
	return nil
}

// --- doctor repository stub ---

type stubDoctorRepo struct {
	doctors map[string]*domain.Doctor
}

func newStubDoctorRepo() *stubDoctorRepo {
	return &stubDoctorRepo{doctors: make(map[string]*domain.Doctor)}
}

func (r *stubDoctorRepo) Create(_ context.Context, d *domain.Doctor) error {
	clone := *d
	r.doctors[d.UserID] = &clone
	return nil
}

func (r *stubDoctorRepo) FindByUserID(_ context.Context, userID string) (*domain.Doctor, error) {
	if d, ok := r.doctors[userID]; ok {
		out := *d
		return &out, nil
	}
	return nil, domain.ErrDoctorNotFound
}

func (r *stubDoctorRepo) List(_ context.Context, page, limit int) ([]*domain.Doctor, int64, error) {
	out := make([]*domain.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		clone := *d
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubDoctorRepo) Update(_ context.Context, d *domain.Doctor) error {
	if _, ok := r.doctors[d.UserID]; !ok {
		return domain.ErrDoctorNotFound
	}
	clone := *d
	r.doctors[d.UserID] = &clone
	return nil
}

// --- appointment repository stub ---

type stubAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	nextID       int
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[string]*domain.Appointment)}
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) error {
	r.nextID++
	a.ID = fmt.Sprintf("appt_%d", r.nextID)
	clone := *a
	r.appointments[a.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	if a, ok := r.appointments[id]; ok {
		out := *a
		return &out, nil
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) List(_ context.Context, filter ports.AppointmentFilter) ([]*domain.Appointment, int64, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range r.appointments {
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus, notes string) error {
	a, ok := r.appointments[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	a.Status = status
	if notes != "" {
		a.Notes = notes
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// --- invoice repository stub ---

type stubInvoiceRepo struct {
	invoices map[string]*domain.Invoice
	nextID   int
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[string]*domain.Invoice)}
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	r.nextID++
	inv.ID = fmt.Sprintf("inv_%d", r.nextID)
	clone := *inv
	r.invoices[inv.ID] = &clone
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id string) (*domain.Invoice, error) {
	if inv, ok := r.invoices[id]; ok {
		out := *inv
		return &out, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *stubInvoiceRepo) List(_ context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, int64, error) {
	out := make([]*domain.Invoice, 0)
	for _, inv := range r.invoices {
		if filter.PatientID != "" && inv.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		clone := *inv
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) UpdateStatus(_ context.Context, id string, status domain.InvoiceStatus) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.Status = status
	inv.UpdatedAt = time.Now().UTC()
	return nil
}

// --- session store stub ---

type stubSessionStore struct {
	refresh map[string]string
	revoked map[string]bool
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{refresh: make(map[string]string), revoked: make(map[string]bool)}
}

func (s *stubSessionStore) SaveRefresh(_ context.Context, userID, token string, _ time.Duration) error {
	s.refresh[userID] = token
	return nil
}

func (s *stubSessionStore) RefreshExists(_ context.Context, userID, token string) (bool, error) {
	return s.refresh[userID] == token, nil
}

func (s *stubSessionStore) DeleteRefresh(_ context.Context, userID string) error {
	delete(s.refresh, userID)
	return nil
}

func (s *stubSessionStore) RevokeAccess(_ context.Context, tokenID string, _ time.Time) error {
	s.revoked[tokenID] = true
	return nil
}

func (s *stubSessionStore) IsAccessRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

// --- reminder dispatcher stub ---

type stubDispatcher struct {
	enqueued []ports.ReminderInput
}

func (d *stubDispatcher) Enqueue(in ports.ReminderInput) {
	d.enqueued = append(d.enqueued, in)
}
