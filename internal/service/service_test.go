package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/permit_tracker/internal/models"
	"github.com/Skotchmaster/permit_tracker/internal/repo"
	"github.com/Skotchmaster/permit_tracker/internal/transport"
	"github.com/Skotchmaster/permit_tracker/pkg/db"
	"github.com/Skotchmaster/permit_tracker/pkg/identity"
	"github.com/Skotchmaster/permit_tracker/pkg/tokens"
)

type recorder struct {
	mu      sync.Mutex
	err     error
	topics  []string
	events  []map[string]any
	indexed []uuid.UUID
	removed []string
}

func (r *recorder) PublishEvent(_ context.Context, topic, _ string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	r.events = append(r.events, event.(map[string]any))
	return r.err
}

func (r *recorder) Upsert(_ context.Context, p *models.Permit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, p.ID)
	return r.err
}

func (r *recorder) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, id)
	return r.err
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e["type"].(string))
	}
	return out
}

type env struct {
	db       *gorm.DB
	tokens   *tokens.Service
	rec      *recorder
	accounts *AccountService
	permits  *PermitService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gdb, err := db.OpenMemory(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	tk := tokens.NewService([]byte("test-jwt-secret"), 0)
	rec := &recorder{}
	return &env{
		db:       gdb,
		tokens:   tk,
		rec:      rec,
		accounts: &AccountService{Accounts: &repo.AccountRepo{DB: gdb}, Tokens: tk, Publisher: rec},
		permits:  &PermitService{Permits: &repo.PermitRepo{DB: gdb}, Publisher: rec, Indexer: rec},
	}
}

// signup registers an account and returns a context carrying its identity.
func (e *env) signup(t *testing.T, email string, role models.Role) context.Context {
	t.Helper()
	res, err := e.accounts.Signup(context.Background(), transport.SignupRequest{
		Name: "user " + email, Email: email, Password: "secret", Role: string(role),
	})
	require.NoError(t, err)
	return identity.IntoContext(context.Background(), identity.Identity{
		AccountID: res.Account.ID.String(),
		Email:     res.Account.Email,
		Role:      string(res.Account.Role),
	})
}

func permitReq(number, po, status, issue string) transport.CreatePermitRequest {
	return transport.CreatePermitRequest{
		PermitNumber: number,
		PONumber:     po,
		EmployeeName: "Jane Doe",
		PermitType:   string(models.PermitHeight),
		PermitStatus: status,
		Location:     "Block 4",
		IssueDate:    issue,
		ExpiryDate:   "2030-01-01",
	}
}

func ptr[T any](v T) *T { return &v }

type failingPublisher struct{}

func (failingPublisher) PublishEvent(context.Context, string, string, any) error {
	return errors.New("broker unavailable")
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
