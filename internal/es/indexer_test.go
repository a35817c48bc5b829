package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/permit_tracker/internal/models"
	"github.com/Skotchmaster/permit_tracker/pkg/config"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type fakeTransport struct {
	mu       sync.Mutex
	status   int
	requests []recordedRequest
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
	f.mu.Unlock()

	h := http.Header{}
	h.Set("X-Elastic-Product", "Elasticsearch")
	h.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: f.status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(`{}`)),
		Request:    req,
	}, nil
}

func newTestIndexer(t *testing.T, status int) (*Indexer, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{status: status}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: ft,
	})
	require.NoError(t, err)
	return NewIndexer(client, ""), ft
}

func TestIndexer_Nil(t *testing.T) {
	t.Parallel()

	var ix *Indexer
	assert.Nil(t, NewIndexer(nil, "permits"))
	assert.NoError(t, ix.Upsert(context.Background(), &models.Permit{}))
	assert.NoError(t, ix.Remove(context.Background(), "id"))
}

func TestNewClient_Unconfigured(t *testing.T) {
	t.Parallel()

	client, err := NewClient(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestIndexer_Upsert(t *testing.T) {
	t.Parallel()

	ix, ft := newTestIndexer(t, http.StatusCreated)
	p := &models.Permit{ID: uuid.New(), PermitNumber: "PTW-9", PermitStatus: models.StatusPending}

	require.NoError(t, ix.Upsert(context.Background(), p))
	require.Len(t, ft.requests, 1)
	assert.Equal(t, http.MethodPut, ft.requests[0].Method)
	assert.Equal(t, "/permits/_doc/"+p.ID.String(), ft.requests[0].Path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(ft.requests[0].Body), &doc))
	assert.Equal(t, "PTW-9", doc["permitNumber"])
}

func TestIndexer_Remove(t *testing.T) {
	t.Parallel()

	ix, ft := newTestIndexer(t, http.StatusNotFound)
	require.NoError(t, ix.Remove(context.Background(), "abc"))
	require.Len(t, ft.requests, 1)
	assert.Equal(t, http.MethodDelete, ft.requests[0].Method)
	assert.Equal(t, "/permits/_doc/abc", ft.requests[0].Path)

	failing, _ := newTestIndexer(t, http.StatusInternalServerError)
	assert.Error(t, failing.Remove(context.Background(), "abc"))
}
