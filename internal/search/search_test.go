package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ldelvaux/pcforge/internal/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func stubClient(t *testing.T, rt roundTripFunc) *elasticsearch.Client {
	t.Helper()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://stub.invalid"},
		Transport: rt,
	})
	require.NoError(t, err)
	return es
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Elastic-Product": []string{"Elasticsearch"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func TestIndexComponentDocument(t *testing.T) {
	var gotPath string
	var gotDoc componentDoc

	es := stubClient(t, func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDoc))
		return response(http.StatusCreated, `{"result": "created"}`), nil
	})

	comp := &models.Component{
		ID: 7, Type: models.TypeCPU, Brand: "AMD", Model: "Ryzen 5 7600",
		Price: decimal.RequireFromString("229.005"), Stock: 3, Score: 75,
	}
	require.NoError(t, IndexComponent(context.Background(), es, ComponentIndex, comp))

	require.Equal(t, "/components/_doc/7", gotPath)
	require.Equal(t, uint(7), gotDoc.ID)
	// Prices travel as fixed two-decimal strings.
	require.Equal(t, "229.01", gotDoc.Price)
}

func TestRemoveComponentToleratesMissingDocument(t *testing.T) {
	es := stubClient(t, func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/components/_doc/7", r.URL.Path)
		return response(http.StatusNotFound, `{"result": "not_found"}`), nil
	})

	require.NoError(t, RemoveComponent(context.Background(), es, ComponentIndex, 7))
}

func TestRemoveComponentSurfacesBackendErrors(t *testing.T) {
	es := stubClient(t, func(r *http.Request) (*http.Response, error) {
		return response(http.StatusInternalServerError, `{"error": "boom"}`), nil
	})

	err := RemoveComponent(context.Background(), es, ComponentIndex, 7)
	require.Error(t, err)
}

func TestComponentsParsesHits(t *testing.T) {
	es := stubClient(t, func(r *http.Request) (*http.Response, error) {
		return response(http.StatusOK, `{
			"hits": {
				"total": {"value": 1},
				"hits": [{"_source": {"id": 1, "type": "gpu", "brand": "NVIDIA", "model": "RTX 4070", "price": "599.00", "stock": 3, "score": 85}}]
			}
		}`), nil
	})

	total, items, err := Components(context.Background(), es, ComponentIndex, "rtx", 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.Equal(t, "RTX 4070", items[0].Model)
	require.Equal(t, "599.00", items[0].Price.StringFixed(2))
}
