package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Dhruv6019/BrivaMart/internal/config"
	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// ProductIndex maintains the Elasticsearch product index. A nil ProductIndex
// is valid: indexing becomes a no-op and queries report unavailability, so
// search stays optional per environment.
type ProductIndex struct {
	es    *elasticsearch.Client
	index string
}

// NewProductIndex connects to Elasticsearch from config. Returns nil when no
// URL is configured.
func NewProductIndex(cfg *config.ElasticConfig) (*ProductIndex, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}

	return &ProductIndex{es: client, index: cfg.Index}, nil
}

// Enabled reports whether the index is configured.
func (p *ProductIndex) Enabled() bool {
	return p != nil
}

// Index upserts a product document keyed by product id.
func (p *ProductIndex) Index(ctx context.Context, product *models.Product) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(product)
	if err != nil {
		return err
	}

	res, err := p.es.Index(
		p.index,
		bytes.NewReader(body),
		p.es.Index.WithDocumentID(product.ID),
		p.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %s: %s", product.ID, res.Status())
	}
	return nil
}

// Remove deletes a product document. Missing documents are not an error.
func (p *ProductIndex) Remove(ctx context.Context, productID string) error {
	if p == nil {
		return nil
	}

	res, err := p.es.Delete(
		p.index,
		productID,
		p.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove product %s: %s", productID, res.Status())
	}
	return nil
}

// Query runs a fuzzy multi-match over name, description, category, brand and
// tags, returning matching products best-first.
func (p *ProductIndex) Query(ctx context.Context, query string, size int) ([]models.Product, error) {
	if p == nil {
		return nil, fmt.Errorf("product index not configured")
	}
	if size <= 0 {
		size = 50
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description", "category", "brand", "tags"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := p.es.Search(
		p.es.Search.WithContext(ctx),
		p.es.Search.WithIndex(p.index),
		p.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return products, nil
}
