// Package client is a typed SDK for the hospital API. It wraps resty with a
// session-aware transport: tokens are attached automatically, and a 401
// response evicts the session and notifies the configured callback so UIs can
// send the user back to sign-in.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError is the server's error envelope, returned for any non-2xx response.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithUnauthorizedHandler sets the callback invoked after a 401 evicts the
// session. Called once per 401 response; there is no retry or in-band refresh.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// Client is the API client. All methods are safe for concurrent use as long
// as the injected Session is.
type Client struct {
	http           *resty.Client
	session        Session
	onUnauthorized func()
}

// New builds a Client against baseURL using the given session.
func New(baseURL string, session Session, opts ...Option) *Client {
	c := &Client{
		http:    resty.New().SetBaseURL(baseURL).SetTimeout(15 * time.Second),
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := c.session.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})
	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized {
			c.session.Clear()
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return nil
	})

	return c
}

// User is the account view returned by the API.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult carries the token pair and account issued on login.
type AuthResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// Pagination mirrors the server's listing envelope.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Patient is the profile view returned by the API.
type Patient struct {
	UserID      string `json:"user_id"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// PatientList is a page of patient profiles.
type PatientList struct {
	Data       []Patient  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Appointment is the booking view returned by the API.
type Appointment struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
}

// Login authenticates and stores the access token in the session on success.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.session.SetToken(result.Token)
	return &result, nil
}

// Me returns the account behind the session token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreatePatientInput is the staff-side patient creation payload.
type CreatePatientInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// CreatePatient opens a patient account.
func (c *Client) CreatePatient(ctx context.Context, input CreatePatientInput) (*User, error) {
	var user User
	if err := c.post(ctx, "/v1/patients", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListPatients returns one page of patient profiles.
func (c *Client) ListPatients(ctx context.Context, page, limit int) (*PatientList, error) {
	var list PatientList
	params := map[string]string{
		"page":  fmt.Sprintf("%d", page),
		"limit": fmt.Sprintf("%d", limit),
	}
	if err := c.get(ctx, "/v1/patients", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateAppointmentInput is the booking payload.
type CreateAppointmentInput struct {
	PatientID   string `json:"patient_id"`
	DoctorID    string `json:"doctor_id"`
	ScheduledAt string `json:"scheduled_at"`
	Reason      string `json:"reason"`
}

// CreateAppointment books an appointment.
func (c *Client) CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*Appointment, error) {
	var appointment Appointment
	if err := c.post(ctx, "/v1/appointments", input, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Get performs a raw GET, decoding the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.get(ctx, path, nil, out)
}

// Post performs a raw POST, decoding the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.post(ctx, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.http.R().SetContext(ctx).SetError(&APIError{}).SetResult(out)
	if params != nil {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	return responseError(resp, err)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&APIError{}).
		SetResult(out).
		Post(path)
	return responseError(resp, err)
}

func responseError(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	if resp.IsError() {
		apiErr, ok := resp.Error().(*APIError)
		if !ok || apiErr.Message == "" {
			apiErr = &APIError{Message: http.StatusText(resp.StatusCode())}
		}
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	return nil
}
