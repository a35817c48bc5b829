package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/permit_tracker/pkg/identity"
	jwthelp "github.com/Skotchmaster/permit_tracker/pkg/jwt"
	"github.com/Skotchmaster/permit_tracker/pkg/logging"
	"github.com/Skotchmaster/permit_tracker/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

type SessionMiddleware struct {
	Tokens       *tokens.Service
	Signer       *jwthelp.Signer
	SecureCookie bool
}

func NewSessionMiddleware(tokenSvc *tokens.Service, signer *jwthelp.Signer, secure bool) *SessionMiddleware {
	return &SessionMiddleware{Tokens: tokenSvc, Signer: signer, SecureCookie: secure}
}

// RequireAuth trusts the token claims as of issuance; the account is not re-read.
func (m *SessionMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("mw", "session")

		cookie, err := c.Cookie(jwthelp.SessionCookie)
		if err != nil || cookie.Value == "" {
			l.Warn("session_rejected", "status", 401, "reason", "no token")
			return echo.NewHTTPError(http.StatusUnauthorized, "no token found")
		}

		raw, err := m.Signer.Unsign(cookie.Value)
		if err != nil {
			l.Warn("session_rejected", "status", 401, "reason", "cookie signature", "error", err)
			c.SetCookie(jwthelp.DeleteCookie(jwthelp.SessionCookie, "/", m.SecureCookie))
			return echo.NewHTTPError(http.StatusUnauthorized, "token verification failed")
		}

		claims, err := m.Tokens.Verify(raw)
		if err != nil {
			l.Warn("session_rejected", "status", 401, "reason", "token", "error", err)
			c.SetCookie(jwthelp.DeleteCookie(jwthelp.SessionCookie, "/", m.SecureCookie))
			return echo.NewHTTPError(http.StatusUnauthorized, "token verification failed")
		}

		setUserContext(c, claims)
		return next(c)
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing role")
			}
			if !slices.Contains(allowed, role) {
				return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights to see this page")
			}
			return next(c)
		}
	}
}

func setUserContext(c echo.Context, claims *tokens.SessionClaims) {
	c.Set(CtxUserID, claims.AccountID)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxRole, claims.Role)

	req := c.Request()
	ctx := identity.IntoContext(req.Context(), identity.Identity{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		Role:      claims.Role,
	})
	c.SetRequest(req.WithContext(ctx))
}
