package application

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

type esCall struct {
	method string
	path   string
	body   map[string]any
}

// fakeES answers like an Elasticsearch node, replying with status and reply
// and recording each request.
type fakeES struct {
	mu     sync.Mutex
	calls  []esCall
	status int
	reply  string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	call := esCall{method: r.Method, path: r.URL.Path}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	status, reply := f.status, f.reply
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if reply == "" {
		reply = "{}"
	}
	_, _ = io.WriteString(w, reply)
}

func (f *fakeES) respond(status int, reply string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.reply = status, reply
}

func (f *fakeES) last(t *testing.T) esCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatal("no request reached elasticsearch")
	}
	return f.calls[len(f.calls)-1]
}

func newESIndex(t *testing.T) (*ESTaskIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}, DisableRetry: true})
	if err != nil {
		t.Fatalf("es client: %v", err)
	}
	return NewESTaskIndex(es, "tasks"), fake
}

func TestESSearchFiltersByOwner(t *testing.T) {
	idx, fake := newESIndex(t)
	fake.respond(http.StatusOK, `{"hits":{"hits":[{"_id":"7"},{"_id":"x"},{"_id":"9"}]}}`)

	ids, err := idx.Search(context.Background(), 3, "report", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 9 {
		t.Fatalf("ids = %v, want [7 9]", ids)
	}

	call := fake.last(t)
	if call.path != "/tasks/_search" {
		t.Fatalf("path = %s", call.path)
	}
	if size, _ := call.body["size"].(float64); size != 5 {
		t.Fatalf("size = %v, want 5", call.body["size"])
	}
	if src, _ := call.body["_source"].(bool); src {
		t.Fatal("_source should be disabled")
	}
	query, _ := call.body["query"].(map[string]any)
	boolQ, _ := query["bool"].(map[string]any)
	filter, _ := boolQ["filter"].(map[string]any)
	term, _ := filter["term"].(map[string]any)
	if owner, _ := term["user_id"].(float64); owner != 3 {
		t.Fatalf("owner filter = %v, want user_id 3", boolQ["filter"])
	}
	must, _ := boolQ["must"].(map[string]any)
	mm, _ := must["multi_match"].(map[string]any)
	if mm["query"] != "report" {
		t.Fatalf("multi_match = %v", must)
	}
}

func TestESSearchErrorStatus(t *testing.T) {
	idx, fake := newESIndex(t)
	fake.respond(http.StatusInternalServerError, `{"error":"boom"}`)

	if _, err := idx.Search(context.Background(), 1, "q", 10); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestESSearchFailureFallsBackToScan(t *testing.T) {
	idx, fake := newESIndex(t)
	svc, _ := newTasks(idx)
	ctx := context.Background()
	if _, err := svc.Create(ctx, 1, fields("quarterly report")); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, _ = svc.Create(ctx, 2, fields("report for someone else"))

	fake.respond(http.StatusInternalServerError, "")

	got, err := svc.Search(ctx, 1, "report", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].UserID != 1 {
		t.Fatalf("got = %+v, want the owner's task from the scan", got)
	}
}

func TestESPutAndRemove(t *testing.T) {
	idx, fake := newESIndex(t)
	ctx := context.Background()
	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	err := idx.Put(ctx, entity.Task{ID: 7, UserID: 3, Title: "t", Description: "d", Status: "open", DueDate: &due})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	call := fake.last(t)
	if call.path != "/tasks/_doc/7" {
		t.Fatalf("put path = %s", call.path)
	}
	if owner, _ := call.body["user_id"].(float64); owner != 3 {
		t.Fatalf("indexed user_id = %v", call.body["user_id"])
	}
	if call.body["due_date"] != "2026-03-01T09:00:00Z" {
		t.Fatalf("due_date = %v", call.body["due_date"])
	}

	fake.respond(http.StatusNotFound, `{"result":"not_found"}`)
	if err := idx.Remove(ctx, 7); err != nil {
		t.Fatalf("remove of missing doc: %v", err)
	}
	if call := fake.last(t); call.method != http.MethodDelete || call.path != "/tasks/_doc/7" {
		t.Fatalf("remove = %s %s", call.method, call.path)
	}

	fake.respond(http.StatusInternalServerError, "")
	if err := idx.Remove(ctx, 7); err == nil {
		t.Fatal("expected error on 500")
	}
	if err := idx.Put(ctx, entity.Task{ID: 8, UserID: 3}); err == nil {
		t.Fatal("expected put error on 500")
	}
}
