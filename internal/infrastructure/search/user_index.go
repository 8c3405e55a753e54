// Package search keeps a user index in Elasticsearch for name/email lookups.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/hyb-mobile-app/hyb-api/internal/domain/entity"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

const usersMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "email":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "name":       {"type": "text"},
      "avatar_url": {"type": "keyword", "index": false},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"}
    }
  }
}`

// userDoc never carries the password hash.
type userDoc struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewUserIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *UserIndex {
	return &UserIndex{es: es, index: index, logger: logger}
}

// EnsureIndex creates the users index with its mapping if missing.
func (x *UserIndex) EnsureIndex(ctx context.Context) error {
	return helpers.EnsureESIndex(ctx, x.es, x.index, usersMapping)
}

func (x *UserIndex) IndexUser(ctx context.Context, u *entity.User) error {
	b, err := json.Marshal(userDoc{ID: u.ID, Email: u.Email, Name: u.Name, AvatarURL: u.AvatarURL, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", u.ID, res.Status())
	}
	return nil
}

// SearchUsers performs a multi_match search on email and name.
func (x *UserIndex) SearchUsers(ctx context.Context, q string, size int) ([]*entity.User, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"email^2", "name"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source userDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]*entity.User, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, &entity.User{ID: d.ID, Email: d.Email, Name: d.Name, AvatarURL: d.AvatarURL, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt})
	}
	if x.logger != nil {
		x.logger.WithFields(logrus.Fields{"q": q, "hits": len(out)}).Debug("user search")
	}
	return out, nil
}
