package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/database"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

const sweetsIndex = "sweets"

// IndexSweet pushes a sweet into Elasticsearch. Indexing is best-effort:
// failures are logged and the catalogue in PostgreSQL stays authoritative.
func IndexSweet(s models.Sweet) {
	if database.Elastic == nil {
		return
	}

	data, _ := json.Marshal(s)
	req := esapi.IndexRequest{
		Index:      sweetsIndex,
		DocumentID: strconv.Itoa(s.ID),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elasticsearch index failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elasticsearch rejected %s: %s", s.Name, res.String())
	}
}

// RemoveSweet deletes a sweet from the index after it is removed from the
// catalogue.
func RemoveSweet(id int) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{Index: sweetsIndex, DocumentID: strconv.Itoa(id)}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elasticsearch delete failed:", err)
		return
	}
	res.Body.Close()
}

// SearchSweets runs a multi-field full-text query. Callers fall back to the
// SQL filter scan when this errors or returns nothing.
func SearchSweets(query string) ([]models.Sweet, error) {
	if database.Elastic == nil {
		return nil, errors.New("elasticsearch not configured")
	}

	var buf bytes.Buffer
	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"name", "description", "category"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{Index: []string{sweetsIndex}, Body: &buf}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch query: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Sweet `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("elasticsearch response: %w", err)
	}

	out := make([]models.Sweet, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}
