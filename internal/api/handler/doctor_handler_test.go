package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/api/middleware"
	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

type stubDoctorService struct {
	doctor  *domain.Doctor
	updated domain.WeeklyAvailability
}

func (s *stubDoctorService) Get(context.Context, string) (*domain.Doctor, error) {
	if s.doctor == nil {
		return nil, domain.ErrDoctorNotFound
	}
	return s.doctor, nil
}

func (s *stubDoctorService) List(context.Context, int, int) ([]*domain.Doctor, int64, error) {
	if s.doctor == nil {
		return nil, 0, nil
	}
	return []*domain.Doctor{s.doctor}, 1, nil
}

func (s *stubDoctorService) GetAvailability(context.Context, string) (domain.WeeklyAvailability, error) {
	if s.doctor == nil {
		return nil, domain.ErrDoctorNotFound
	}
	return s.doctor.Availability, nil
}

func (s *stubDoctorService) UpdateAvailability(_ context.Context, _ ports.Actor, _ string, wa domain.WeeklyAvailability) error {
	s.updated = wa
	return nil
}

func withClaims(c echo.Context, userID string, role domain.Role) {
	claims := &auth.Claims{Role: role}
	claims.Subject = userID
	c.Set(middleware.ClaimsKey, claims)
}

func TestGetAvailabilityWireFormat(t *testing.T) {
	svc := &stubDoctorService{doctor: &domain.Doctor{
		UserID:         "doc_1",
		Specialization: "cardiology",
		Availability: domain.WeeklyAvailability{
			time.Monday:    {Start: "09:00", End: "17:00"},
			time.Wednesday: {Start: "10:00", End: "14:00"},
		},
	}}
	h := NewDoctorHandler(svc, &stubAuthService{})

	c, rec := newTestContext(http.MethodGet, "/v1/doctors/doc_1/availability", "")
	c.SetParamNames("id")
	c.SetParamValues("doc_1")

	if err := h.GetAvailability(c); err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}

	var got map[string]domain.TimeWindow
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["monday"].Start != "09:00" || got["wednesday"].End != "14:00" {
		t.Errorf("unexpected availability %+v", got)
	}
	if _, ok := got["tuesday"]; ok {
		t.Error("absent day leaked into response")
	}
}

func TestUpdateAvailability(t *testing.T) {
	svc := &stubDoctorService{}
	h := NewDoctorHandler(svc, &stubAuthService{})

	c, rec := newTestContext(http.MethodPut, "/v1/doctors/doc_1/availability", `{
		"days": {
			"monday":  {"start": "09:00", "end": "17:00"},
			"friday":  {"start": "08:30", "end": "12:00"}
		}
	}`)
	c.SetParamNames("id")
	c.SetParamValues("doc_1")
	withClaims(c, "doc_1", domain.RoleDoctor)

	if err := h.UpdateAvailability(c); err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204, body %s", rec.Code, rec.Body.String())
	}
	if w := svc.updated[time.Monday]; w.Start != "09:00" || w.End != "17:00" {
		t.Errorf("monday window = %+v", w)
	}
	if w := svc.updated[time.Friday]; w.Start != "08:30" {
		t.Errorf("friday window = %+v", w)
	}
}

func TestUpdateAvailabilityUnknownWeekday(t *testing.T) {
	h := NewDoctorHandler(&stubDoctorService{}, &stubAuthService{})

	c, rec := newTestContext(http.MethodPut, "/v1/doctors/doc_1/availability", `{
		"days": {"funday": {"start": "09:00", "end": "17:00"}}
	}`)
	c.SetParamNames("id")
	c.SetParamValues("doc_1")
	withClaims(c, "doc_1", domain.RoleDoctor)

	if err := h.UpdateAvailability(c); err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestUpdateAvailabilityBadClock(t *testing.T) {
	h := NewDoctorHandler(&stubDoctorService{}, &stubAuthService{})

	c, rec := newTestContext(http.MethodPut, "/v1/doctors/doc_1/availability", `{
		"days": {"monday": {"start": "9am", "end": "17:00"}}
	}`)
	c.SetParamNames("id")
	c.SetParamValues("doc_1")
	withClaims(c, "doc_1", domain.RoleDoctor)

	if err := h.UpdateAvailability(c); err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}
