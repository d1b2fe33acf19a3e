package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-system/internal/api/metrics"
	"github.com/medicore/hospital-system/internal/core/auth"
)

// RouteClass is the bucket a request path falls into.
type RouteClass string

const (
	RoutePublic    RouteClass = "public"
	RouteProtected RouteClass = "protected"
	// RouteAccount covers identity-provider component routes (account
	// management UI); they need a resolved identity like protected routes.
	RouteAccount RouteClass = "account"
	RouteDefault RouteClass = "default"
)

// The three disjoint route-pattern sets. Public wins first, then account,
// then protected; everything else falls through to default-allow.
var (
	publicPrefixes = []string{
		"/sign-in", "/sign-up",
		// /auth/refresh is public: its callers hold an expired access token
		// and authenticate with the refresh token in the request body.
		"/auth/login", "/auth/register", "/auth/refresh",
		"/health", "/metrics", "/swagger",
	}
	accountPrefixes = []string{
		"/account",
	}
	protectedPrefixes = []string{
		"/v1", "/auth/me", "/auth/logout",
		"/dashboard", "/patients", "/doctors", "/appointments", "/billing",
	}
)

// Classify buckets a request path. Pure function, no I/O.
func Classify(path string) RouteClass {
	for _, p := range publicPrefixes {
		if matchesPrefix(path, p) {
			return RoutePublic
		}
	}
	for _, p := range accountPrefixes {
		if matchesPrefix(path, p) {
			return RouteAccount
		}
	}
	for _, p := range protectedPrefixes {
		if matchesPrefix(path, p) {
			return RouteProtected
		}
	}
	return RouteDefault
}

// matchesPrefix reports whether path equals prefix or sits below it as a
// sub-path ("/sign-in/anything" matches "/sign-in"; "/sign-innn" does not).
func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// IdentityResolver reports whether the request carries a resolved identity.
// It must distinguish "resolved: present" from everything else; "still
// resolving" counts as not present for the purposes of a server redirect.
type IdentityResolver func(c echo.Context) bool

// BearerIdentity resolves identity from a verifiable bearer token.
func BearerIdentity(verifier *auth.TokenIssuer) IdentityResolver {
	return func(c echo.Context) bool {
		token, ok := bearerToken(c)
		if !ok {
			return false
		}
		_, err := verifier.VerifyToken(token)
		return err == nil
	}
}

// RouteClassifier gates requests by route class before routing happens.
// Public routes pass; account and protected routes without identity are
// redirected to sign-in with a return_to parameter; unknown routes pass.
//
// Fail-open is deliberate: any panic during classification allows the request
// rather than taking the application down, and is observed only through the
// log and a metric. This trades security for availability on the classifier
// path and must not be "fixed" to fail closed without revisiting that call.
// The recover covers classification only; a panic in a downstream handler
// propagates to echo's Recover middleware untouched.
func RouteClassifier(resolved IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			class, identified, panicked := classifyRequest(c, resolved, path)
			if panicked != nil {
				log.Error().Interface("panic", panicked).Str("path", path).Msg("route classification failed, allowing request")
				metrics.RouteClassTotal.WithLabelValues("error").Inc()
				return next(c)
			}
			metrics.RouteClassTotal.WithLabelValues(string(class)).Inc()

			if (class == RouteAccount || class == RouteProtected) && !identified {
				target := "/sign-in?return_to=" + url.QueryEscape(path)
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}

// classifyRequest buckets the path and, for gated classes, resolves identity,
// all under its own recover. Scoping the recover here keeps it off next(c):
// a handler panic must surface exactly once and never re-run the handler.
func classifyRequest(c echo.Context, resolved IdentityResolver, path string) (class RouteClass, identified bool, panicked any) {
	defer func() {
		panicked = recover()
	}()
	class = Classify(path)
	if class == RouteAccount || class == RouteProtected {
		identified = resolved != nil && resolved(c)
	}
	return class, identified, nil
}
