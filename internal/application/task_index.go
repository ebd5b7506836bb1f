package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

var ErrIndexDisabled = errors.New("task index disabled")

// TaskIndex is a secondary full-text index over tasks. It is never the
// source of truth: Search returns candidate ids that callers re-read from
// the store under the same owner.
type TaskIndex interface {
	Put(ctx context.Context, t entity.Task) error
	Remove(ctx context.Context, taskID int64) error
	Search(ctx context.Context, ownerID int64, q string, size int) ([]int64, error)
}

// NoopTaskIndex is used when no search backend is configured.
type NoopTaskIndex struct{}

func (NoopTaskIndex) Put(context.Context, entity.Task) error { return nil }
func (NoopTaskIndex) Remove(context.Context, int64) error    { return nil }
func (NoopTaskIndex) Search(context.Context, int64, string, int) ([]int64, error) {
	return nil, ErrIndexDisabled
}

// ESTaskIndex stores tasks in an Elasticsearch index.
type ESTaskIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewESTaskIndex(es *elasticsearch.Client, index string) *ESTaskIndex {
	return &ESTaskIndex{ES: es, Index: index}
}

func (x *ESTaskIndex) Put(ctx context.Context, t entity.Task) error {
	doc := map[string]any{
		"id":          t.ID,
		"user_id":     t.UserID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		doc["due_date"] = t.DueDate.Format(time.RFC3339Nano)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: docID(t.ID), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *ESTaskIndex) Remove(ctx context.Context, taskID int64) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: docID(taskID)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match on title and description, filtered to ownerID.
func (x *ESTaskIndex) Search(ctx context.Context, ownerID int64, q string, size int) ([]int64, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": ownerID},
				},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.Index), x.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func docID(taskID int64) string {
	return strconv.FormatInt(taskID, 10)
}

var _ TaskIndex = (*ESTaskIndex)(nil)
