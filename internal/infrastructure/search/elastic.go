// Package search keeps the product full-text index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const productMapping = `{
  "mappings": {
    "properties": {
      "model_number": {"type": "keyword", "normalizer": "lower"},
      "name":         {"type": "text"},
      "description":  {"type": "text"},
      "price":        {"type": "scaled_float", "scaling_factor": 100},
      "active":       {"type": "boolean"}
    }
  },
  "settings": {
    "analysis": {
      "normalizer": {"lower": {"type": "custom", "filter": ["lowercase"]}}
    }
  }
}`

// NewClient connects to Elasticsearch and checks the cluster answers
func NewClient(cfg config.SearchConfig, logger *zap.Logger) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to reach Elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}
	logger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Addresses))
	return client, nil
}

// ElasticProductIndex stores one document per product, keyed by id
type ElasticProductIndex struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger
}

func NewElasticProductIndex(client *elasticsearch.Client, index string, logger *zap.Logger) *ElasticProductIndex {
	if index == "" {
		index = "products"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ElasticProductIndex{client: client, index: index, logger: logger}
}

type productDoc struct {
	ModelNumber string  `json:"model_number"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active"`
}

// EnsureIndex creates the index with its mapping when missing
func (x *ElasticProductIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.client.Indices.Exists([]string{x.index}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.client.Indices.Create(x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(productMapping)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && !strings.Contains(readBody(res), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", x.index, res.Status())
	}
	x.logger.Info("Created search index", zap.String("index", x.index))
	return nil
}

func (x *ElasticProductIndex) Index(ctx context.Context, p *catalog.Product) error {
	price, _ := p.Price.Float64()
	body, err := json.Marshal(productDoc{
		ModelNumber: p.ModelNumber,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Active:      p.Active,
	})
	if err != nil {
		return err
	}

	res, err := x.client.Index(x.index, bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("failed to index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %s: %s", p.ID, res.Status())
	}
	return nil
}

func (x *ElasticProductIndex) Remove(ctx context.Context, id uuid.UUID) error {
	res, err := x.client.Delete(x.index, id.String(), x.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to remove product from index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove product %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a fuzzy multi_match over model number, name and description
func (x *ElasticProductIndex) Search(ctx context.Context, query string, from, size int) ([]catalog.SearchHit, int64, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{"term": map[string]any{"model_number": map[string]any{"value": strings.ToLower(query), "boost": 5}}},
					map[string]any{"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"name^2", "description"},
						"fuzziness": "AUTO",
					}},
				},
				"minimum_should_match": 1,
			},
		},
		"from":    from,
		"size":    size,
		"_source": false,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, 0, err
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID    string  `json:"_id"`
				Score float64 `json:"_score"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]catalog.SearchHit, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			x.logger.Warn("Skipping search hit with foreign id", zap.String("id", h.ID))
			continue
		}
		hits = append(hits, catalog.SearchHit{ID: id, Score: h.Score})
	}
	return hits, r.Hits.Total.Value, nil
}

func readBody(res *esapi.Response) string {
	b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return string(b)
}

var _ catalog.ProductIndex = (*ElasticProductIndex)(nil)
