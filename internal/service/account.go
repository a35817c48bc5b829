package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Skotchmaster/permit_tracker/internal/events"
	"github.com/Skotchmaster/permit_tracker/internal/models"
	"github.com/Skotchmaster/permit_tracker/internal/repo"
	"github.com/Skotchmaster/permit_tracker/internal/transport"
	pkg_hash "github.com/Skotchmaster/permit_tracker/pkg/hash"
	"github.com/Skotchmaster/permit_tracker/pkg/logging"
)

type AccountService struct {
	Accounts  AccountStore
	Tokens    TokenIssuer
	Publisher Publisher
}

type AuthResult struct {
	Account   *models.Account
	Token     string
	ExpiresAt time.Time
}

func (s *AccountService) Signup(ctx context.Context, req transport.SignupRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.signup")

	name, email := strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, invalid("name, email and password are required")
	}
	if len(req.Password) > pkg_hash.MaxPasswordBytes {
		return nil, invalid("password must be at most 72 bytes")
	}
	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleClient
	}
	if !role.Valid() {
		return nil, invalid("unknown role " + req.Role)
	}

	if role.Privileged() {
		exists, err := s.privilegedExists(ctx)
		if err != nil {
			l.Error("signup_failed", "status", 500, "reason", "cannot look up admin", "error", err)
			return nil, err
		}
		if exists {
			l.Warn("signup_failed", "status", 400, "reason", "admin already registered")
			return nil, ErrPrivilegedAccountExists
		}
	}

	_, err := s.Accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		l.Warn("signup_failed", "status", 409, "reason", "email taken")
		return nil, ErrDuplicateEmail
	case !errors.Is(err, repo.ErrNotFound):
		l.Error("signup_failed", "status", 500, "reason", "cannot look up email", "error", err)
		return nil, internalErr("find account", err)
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if errors.Is(err, pkg_hash.ErrPasswordTooLong) {
		return nil, invalid("password must be at most 72 bytes")
	}
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, internalErr("hash password", err)
	}

	account := &models.Account{Name: name, Email: email, PasswordHash: pwHash, Role: role}
	if err := s.Accounts.Insert(ctx, account); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			conflict := s.classifyConflict(ctx, role)
			if errors.Is(conflict, ErrInternal) {
				l.Error("signup_failed", "status", 500, "reason", "cannot classify conflict", "error", conflict)
			}
			return nil, conflict
		}
		l.Error("signup_failed", "status", 500, "reason", "cannot save account", "error", err)
		return nil, internalErr("insert account", err)
	}

	res, err := s.issue(account)
	if err != nil {
		l.Error("signup_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	publish(ctx, s.Publisher, events.TopicAccounts, account.ID.String(), map[string]any{
		"type":      events.AccountRegistered,
		"accountID": account.ID,
		"role":      account.Role,
	})
	l.Info("signup_success", "account_id", account.ID, "role", account.Role)
	return res, nil
}

func (s *AccountService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.login")

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, invalid("email and password are required")
	}

	account, err := s.Accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "not registered")
			return nil, ErrNotRegistered
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, internalErr("find account", err)
	}

	if !pkg_hash.CheckPassword(account.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 403, "reason", "incorrect password", "account_id", account.ID)
		return nil, ErrIncorrectSecret
	}

	res, err := s.issue(account)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}
	l.Info("login_success", "account_id", account.ID)
	return res, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]models.Creator, error) {
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return nil, internalErr("list accounts", err)
	}
	out := make([]models.Creator, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Public())
	}
	return out, nil
}

func (s *AccountService) issue(account *models.Account) (*AuthResult, error) {
	token, exp, err := s.Tokens.Issue(account.ID.String(), account.Email, string(account.Role))
	if err != nil {
		return nil, internalErr("issue token", err)
	}
	return &AuthResult{Account: account, Token: token, ExpiresAt: exp}, nil
}

func (s *AccountService) privilegedExists(ctx context.Context) (bool, error) {
	_, err := s.Accounts.FindByRole(ctx, models.RoleAdmin)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repo.ErrNotFound):
		return false, nil
	default:
		return false, internalErr("find admin", err)
	}
}

// classifyConflict names the unique index a concurrent signup lost on.
func (s *AccountService) classifyConflict(ctx context.Context, role models.Role) error {
	if role.Privileged() {
		exists, err := s.privilegedExists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrPrivilegedAccountExists
		}
	}
	return ErrDuplicateEmail
}
