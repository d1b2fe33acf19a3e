package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/medicore/hospital-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// validationResponse is returned on 422 with the per-field violation list.
type validationResponse struct {
	Error      string           `json:"error"`
	Violations []FieldViolation `json:"violations"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func newPagination(total int64, page, limit int) paginationResponse {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return paginationResponse{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// pageParams reads ?page= and ?limit= with sane fallbacks.
func pageParams(get func(string) string) (int, int) {
	page, _ := strconv.Atoi(get("page"))
	limit, _ := strconv.Atoi(get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

// parseRFC3339 parses a timestamp and reports failures as a field violation so
// handlers can reuse the 422 envelope.
func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ValidationError{Violations: []FieldViolation{{
			Field:   "scheduled_at",
			Rule:    "datetime",
			Message: "scheduled_at must be an RFC 3339 timestamp",
		}}}
	}
	return t, nil
}

// parseMoney converts a validated money string ("12.34") to cents. The input
// has already passed the money rule, so errors here are defensive only.
func parseMoney(s string) int64 {
	whole, frac, found := strings.Cut(s, ".")
	w, _ := strconv.ParseInt(whole, 10, 64)
	cents := w * 100
	if found {
		if len(frac) == 1 {
			frac += "0"
		}
		f, _ := strconv.ParseInt(frac, 10, 64)
		cents += f
	}
	return cents
}

// formatMoney renders cents back to the wire form.
func formatMoney(cents int64) string {
	return strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// weekdayNames maps wire day names to time.Weekday for availability payloads.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func weekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// userResponse is the transport view of an account. Intentionally separate
// from the domain type so the JSON contract is not coupled to internal changes.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}
