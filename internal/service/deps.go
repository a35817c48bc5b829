package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/permit_tracker/internal/filter"
	"github.com/Skotchmaster/permit_tracker/internal/models"
	"github.com/Skotchmaster/permit_tracker/pkg/logging"
)

type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByRole(ctx context.Context, role models.Role) (*models.Account, error)
	Insert(ctx context.Context, account *models.Account) error
	List(ctx context.Context) ([]models.Account, error)
}

type PermitStore interface {
	Find(ctx context.Context, f filter.Filter) ([]models.Permit, error)
	Insert(ctx context.Context, permit *models.Permit) error
	UpdateByID(ctx context.Context, id uuid.UUID, patch map[string]any) (*models.Permit, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*models.Permit, error)
}

type TokenIssuer interface {
	Issue(accountID, email, role string) (string, time.Time, error)
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type Indexer interface {
	Upsert(ctx context.Context, p *models.Permit) error
	Remove(ctx context.Context, id string) error
}

const sideEffectTimeout = 5 * time.Second

func publish(ctx context.Context, p Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	l := logging.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		l.Warn("event_publish_failed", "topic", topic, "type", event["type"], "error", err)
	}
}

func index(ctx context.Context, ix Indexer, p *models.Permit) {
	if ix == nil {
		return
	}
	l := logging.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := ix.Upsert(ctx, p); err != nil {
		l.Warn("permit_index_failed", "permit_id", p.ID, "error", err)
	}
}

func unindex(ctx context.Context, ix Indexer, id uuid.UUID) {
	if ix == nil {
		return
	}
	l := logging.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := ix.Remove(ctx, id.String()); err != nil {
		l.Warn("permit_unindex_failed", "permit_id", id, "error", err)
	}
}
