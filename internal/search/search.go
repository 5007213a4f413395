package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/shopspring/decimal"

	"github.com/ldelvaux/pcforge/internal/config"
	"github.com/ldelvaux/pcforge/internal/models"
)

const ComponentIndex = "components"

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		log.Printf("Elasticsearch error response: %s", body)
		return nil, fmt.Errorf("elasticsearch error: %s", res.Status())
	}

	return client, nil
}

type componentDoc struct {
	ID    uint    `json:"id"`
	Type  string  `json:"type"`
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Price string  `json:"price"`
	Stock int     `json:"stock"`
	Score int     `json:"score"`
}

func docFrom(comp *models.Component) componentDoc {
	return componentDoc{
		ID:    comp.ID,
		Type:  comp.Type,
		Brand: comp.Brand,
		Model: comp.Model,
		Price: comp.Price.StringFixed(2),
		Stock: comp.Stock,
		Score: comp.Score,
	}
}

func (d componentDoc) component() models.Component {
	price, _ := decimal.NewFromString(d.Price)
	return models.Component{
		ID:    d.ID,
		Type:  d.Type,
		Brand: d.Brand,
		Model: d.Model,
		Price: price,
		Stock: d.Stock,
		Score: d.Score,
	}
}

func IndexComponent(ctx context.Context, es *elasticsearch.Client, index string, comp *models.Component) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(docFrom(comp)); err != nil {
		return fmt.Errorf("index component: %w", err)
	}

	res, err := es.Index(
		index,
		&buf,
		es.Index.WithDocumentID(strconv.FormatUint(uint64(comp.ID), 10)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index component: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index component: %s", res.Status())
	}
	return nil
}

func RemoveComponent(ctx context.Context, es *elasticsearch.Client, index string, id uint) error {
	res, err := es.Delete(
		index,
		strconv.FormatUint(uint64(id), 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("remove component: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove component: %s", res.Status())
	}
	return nil
}

func Components(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Component, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"brand^2", "model"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search components: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search components: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search components: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source componentDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, nil, fmt.Errorf("search components: decode: %w", err)
	}

	items := make([]models.Component, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		items = append(items, h.Source.component())
	}

	return parsed.Hits.Total.Value, items, nil
}
