package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/permit_tracker/internal/models"
	"github.com/Skotchmaster/permit_tracker/pkg/config"
)

const DefaultIndex = "permits"

// NewClient connects to cfg.ESURL and checks the cluster answers. It returns
// a nil client when ES_URL is unset.
func NewClient(ctx context.Context, cfg *config.Config) (*elasticsearch.Client, error) {
	if cfg.ESURL == "" {
		return nil, nil
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}
	return client, nil
}

// Indexer mirrors permits into a search index. A nil *Indexer is a no-op.
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexer(client *elasticsearch.Client, index string) *Indexer {
	if client == nil {
		return nil
	}
	if index == "" {
		index = DefaultIndex
	}
	return &Indexer{client: client, index: index}
}

func (i *Indexer) Upsert(ctx context.Context, p *models.Permit) error {
	if i == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("index permit: encode: %w", err)
	}

	res, err := i.client.Index(
		i.index,
		&buf,
		i.client.Index.WithContext(ctx),
		i.client.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("index permit: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index permit: %s", res.Status())
	}
	return nil
}

// Remove deletes the document; a document that is already gone is not an error.
func (i *Indexer) Remove(ctx context.Context, id string) error {
	if i == nil {
		return nil
	}
	res, err := i.client.Delete(i.index, id, i.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("remove permit: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove permit: %s", res.Status())
	}
	return nil
}
