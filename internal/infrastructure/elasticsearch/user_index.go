package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/budget-ledger-api/internal/application"
	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// UserIndex keeps a search document per user. Password hashes never leave the database.
type UserIndex struct {
	client *es.Client
	index  string
}

func NewUserIndex(client *es.Client, index string) *UserIndex {
	return &UserIndex{client: client, index: index}
}

type userDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Image     string `json:"image"`
	Bio       string `json:"bio"`
	UpdatedAt string `json:"updated_at"`
}

func (x *UserIndex) Index(ctx context.Context, u *entity.User) error {
	b, err := json.Marshal(userDoc{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Bio:       u.Bio,
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.IndexRequest{Index: x.index, DocumentID: u.ID.String(), Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, x.client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index user %s: %s", u.ID, res.Status())
	}
	return nil
}

// Search runs a multi_match over email and name, email weighted higher.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]application.UserHit, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	b, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	})
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.client.Search(
		x.client.Search.WithContext(c),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
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

	out := make([]application.UserHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, application.UserHit{ID: h.Source.ID, Name: h.Source.Name, Email: h.Source.Email, Image: h.Source.Image})
	}
	return out, nil
}

var _ application.UserDirectory = (*UserIndex)(nil)
