package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want RouteClass
	}{
		{"/sign-in", RoutePublic},
		{"/sign-in/anything", RoutePublic},
		{"/auth/login", RoutePublic},
		{"/auth/refresh", RoutePublic},
		{"/health/ready", RoutePublic},
		{"/metrics", RoutePublic},
		{"/swagger/index.html", RoutePublic},
		{"/account", RouteAccount},
		{"/account/settings", RouteAccount},
		{"/v1/patients", RouteProtected},
		{"/patients/42", RouteProtected},
		{"/auth/me", RouteProtected},
		{"/dashboard", RouteProtected},
		{"/sign-innn", RouteDefault},
		{"/unknown/path", RouteDefault},
		{"/", RouteDefault},
	}

	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func classify(t *testing.T, path string, resolver IdentityResolver) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	err := RouteClassifier(resolver, zerolog.Nop())(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, reached, err
}

func TestClassifierPublicPasses(t *testing.T) {
	_, reached, err := classify(t, "/auth/login", func(echo.Context) bool { return false })
	if err != nil || !reached {
		t.Errorf("public route blocked: reached=%v err=%v", reached, err)
	}
}

func TestClassifierProtectedRedirectsAnonymous(t *testing.T) {
	rec, reached, err := classify(t, "/patients/42", func(echo.Context) bool { return false })
	if err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if reached {
		t.Error("handler reached without identity")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/sign-in?return_to=%2Fpatients%2F42" {
		t.Errorf("Location = %q", loc)
	}
}

func TestClassifierProtectedPassesWithIdentity(t *testing.T) {
	_, reached, err := classify(t, "/v1/appointments", func(echo.Context) bool { return true })
	if err != nil || !reached {
		t.Errorf("authenticated request blocked: reached=%v err=%v", reached, err)
	}
}

func TestClassifierUnknownRouteAllows(t *testing.T) {
	_, reached, err := classify(t, "/unknown/path", func(echo.Context) bool { return false })
	if err != nil || !reached {
		t.Errorf("unknown route blocked: reached=%v err=%v", reached, err)
	}
}

// The refresh exchange authenticates with the token in the body, so it must
// reach the handler without a resolvable bearer identity.
func TestClassifierRefreshReachableAnonymous(t *testing.T) {
	_, reached, err := classify(t, "/auth/refresh", func(echo.Context) bool { return false })
	if err != nil || !reached {
		t.Errorf("refresh route blocked: reached=%v err=%v", reached, err)
	}
}

// A panic inside classification must allow the request through rather than
// surface as a 500.
func TestClassifierFailOpenOnPanic(t *testing.T) {
	_, reached, err := classify(t, "/v1/patients", func(echo.Context) bool {
		panic("identity resolution blew up")
	})
	if err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if !reached {
		t.Error("request not allowed after panic")
	}
}

// A handler panic is not a classification failure: it must propagate so the
// outer Recover middleware can handle it, and the handler must not re-run.
func TestClassifierHandlerPanicPropagatesOnce(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/patients", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	calls := 0
	h := RouteClassifier(func(echo.Context) bool { return true }, zerolog.Nop())(func(echo.Context) error {
		calls++
		panic("handler blew up")
	})

	recovered := func() (r any) {
		defer func() { r = recover() }()
		_ = h(c)
		return nil
	}()

	if recovered == nil {
		t.Fatal("handler panic was swallowed")
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, want 1", calls)
	}
}
