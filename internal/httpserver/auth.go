package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/permit_tracker/internal/service"
	"github.com/Skotchmaster/permit_tracker/internal/transport"
	jwthelp "github.com/Skotchmaster/permit_tracker/pkg/jwt"
	"github.com/Skotchmaster/permit_tracker/pkg/logging"
)

type AuthHTTP struct {
	Svc          *service.AccountService
	Signer       *jwthelp.Signer
	SecureCookie bool
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Signup(ctx, req)
	if err != nil {
		return httpError(err)
	}

	h.setSession(c, res)
	return c.JSON(http.StatusCreated, transport.AccountResponse{
		Message: "User Registered",
		Name:    res.Account.Name,
		Email:   res.Account.Email,
		Role:    string(res.Account.Role),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return httpError(err)
	}

	h.setSession(c, res)
	return c.JSON(http.StatusOK, transport.AccountResponse{
		Message: "Login Successful",
		Name:    res.Account.Name,
		Email:   res.Account.Email,
		Role:    string(res.Account.Role),
	})
}

// Logout only clears the cookie; the token itself stays valid until it expires.
func (h *AuthHTTP) Logout(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.logout")

	c.SetCookie(jwthelp.DeleteCookie(jwthelp.SessionCookie, "/", h.SecureCookie))
	l.Info("logout_success")
	return c.JSON(http.StatusOK, transport.AccountResponse{Message: "Successfully Logged Out"})
}

func (h *AuthHTTP) ListAccounts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.list_accounts")

	accounts, err := h.Svc.ListAccounts(ctx)
	if err != nil {
		l.Error("list_accounts_failed", "status", 500, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "All accounts fetched successfully",
		"accounts": accounts,
	})
}

func (h *AuthHTTP) setSession(c echo.Context, res *service.AuthResult) {
	c.SetCookie(jwthelp.CreateCookie(jwthelp.SessionCookie, h.Signer.Sign(res.Token), "/", res.ExpiresAt, h.SecureCookie))
}
