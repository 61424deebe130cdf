package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/devsp0007/restaurant-management/internal/models"
	"github.com/devsp0007/restaurant-management/internal/order"
)

// OrderDoc is the order projection kept in the search index. Items is the
// snapshot flattened to text so item names are matchable.
type OrderDoc struct {
	ID            uint      `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	Items         string    `json:"items"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func DocFromOrder(o models.Order) OrderDoc {
	doc := OrderDoc{
		ID:            o.ID,
		CustomerEmail: o.CustomerEmail,
		TotalPrice:    o.TotalPrice,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}

	items, err := order.DecodeSnapshot(o.ItemsJSON)
	if err != nil {
		doc.Items = o.ItemsJSON
		return doc
	}
	parts := make([]string, 0, len(items))
	for name, qty := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", qty, name))
	}
	sort.Strings(parts)
	doc.Items = strings.Join(parts, ", ")
	return doc
}

// IndexOrder upserts one order into the index, keyed by order id, so a
// status change overwrites the previous document.
func IndexOrder(ctx context.Context, es *elasticsearch.Client, index string, o models.Order) error {
	doc := DocFromOrder(o)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("index order: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(data),
		es.Index.WithDocumentID(fmt.Sprint(o.ID)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index order: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index order: %s", res.Status())
	}
	return nil
}

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []OrderDoc, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"customer_email^2", "items", "status"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source OrderDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]OrderDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
