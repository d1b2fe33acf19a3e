package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ana@clinic.test" {
			t.Fatalf("unexpected email %q", body["email"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]string{"id": "u1", "role": "doctor"},
		})
	}))
	defer srv.Close()

	session := NewMemorySession()
	c := New(srv.URL, session)

	result, err := c.Login(context.Background(), "ana@clinic.test", "s3cretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "tok-123" {
		t.Errorf("token = %q, want tok-123", result.Token)
	}
	if session.Token() != "tok-123" {
		t.Errorf("session token = %q, want tok-123", session.Token())
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1"})
	}))
	defer srv.Close()

	session := NewMemorySession()
	session.SetToken("tok-abc")
	c := New(srv.URL, session)

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
}

func TestUnauthorizedEvictsSessionOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
	}))
	defer srv.Close()

	session := NewMemorySession()
	session.SetToken("stale")

	var calls int
	c := New(srv.URL, session, WithUnauthorizedHandler(func() { calls++ }))

	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("expected error on 401")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.StatusCode)
	}
	if session.Token() != "" {
		t.Error("session not cleared after 401")
	}
	if calls != 1 {
		t.Errorf("unauthorized handler called %d times, want 1", calls)
	}
}

func TestListPatientsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":       []map[string]string{{"user_id": "p1"}},
			"pagination": map[string]any{"total": 21, "page": 2, "limit": 10, "total_pages": 3},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemorySession())
	list, err := c.ListPatients(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].UserID != "p1" {
		t.Errorf("unexpected data %+v", list.Data)
	}
	if list.Pagination.TotalPages != 3 {
		t.Errorf("total_pages = %d, want 3", list.Pagination.TotalPages)
	}
}

func TestGuardStates(t *testing.T) {
	claims := &auth.Claims{Role: domain.RoleDoctor}
	claims.Subject = "u1"

	if _, ok := Guard(ClaimsResolving, nil, domain.RoleDoctor); ok {
		t.Error("resolving state must not render a decision")
	}

	decision, ok := Guard(ClaimsAbsent, nil, domain.RoleDoctor)
	if !ok || decision.Allowed || decision.RedirectTo != auth.SignInPath {
		t.Errorf("absent state decision = %+v ok=%v", decision, ok)
	}

	decision, ok = Guard(ClaimsPresent, claims, domain.RoleDoctor)
	if !ok || !decision.Allowed {
		t.Errorf("present matching role decision = %+v ok=%v", decision, ok)
	}

	decision, ok = Guard(ClaimsPresent, claims, domain.RoleAdmin)
	if !ok || decision.Allowed || decision.RedirectTo != auth.DashboardPath {
		t.Errorf("present mismatched role decision = %+v ok=%v", decision, ok)
	}
}

func TestCreateAppointment(t *testing.T) {
	scheduled := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/v1/appointments" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           "a1",
			"patient_id":   "p1",
			"doctor_id":    "d1",
			"scheduled_at": scheduled.Format(time.RFC3339),
			"status":       "scheduled",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemorySession())
	appointment, err := c.CreateAppointment(context.Background(), CreateAppointmentInput{
		PatientID:   "p1",
		DoctorID:    "d1",
		ScheduledAt: scheduled.Format(time.RFC3339),
		Reason:      "checkup",
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if appointment.ID != "a1" || appointment.Status != "scheduled" {
		t.Errorf("unexpected appointment %+v", appointment)
	}
}
