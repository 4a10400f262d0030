package judge0

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pacerode/evaluator/internal/config"
	"github.com/pacerode/evaluator/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newTestClient(baseUrl, authToken string) *Client {
	return NewClient(&config.EngineConfig{
		BaseUrl:        baseUrl,
		AuthToken:      authToken,
		RequestTimeout: 5 * time.Second,
	}, nopLogger{})
}

func TestLanguages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/languages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":71,"name":"Python (3.8.1)"},{"id":62,"name":"Java (OpenJDK 13.0.1)"}]`))
	}))
	defer srv.Close()

	catalog, err := newTestClient(srv.URL, "").Languages(context.Background())
	if err != nil {
		t.Fatalf("Languages error: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(catalog))
	}
	if catalog[0].ID != 71 || catalog[0].Name != "Python (3.8.1)" {
		t.Errorf("unexpected first entry: %+v", catalog[0])
	}
}

func TestSubmitBatch(t *testing.T) {
	var received batchSubmitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submissions/batch" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("base64_encoded") != "false" {
			t.Error("base64_encoded=false not set")
		}
		if got := r.Header.Get("X-Auth-Token"); got != "secret" {
			t.Errorf("auth header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"token":"aaa"},{"token":"bbb"}]`))
	}))
	defer srv.Close()

	jobs := []domain.BatchJob{
		{SourceCode: "src", LanguageID: 71, Stdin: "1 2", ExpectedOutput: "3"},
		{SourceCode: "src", LanguageID: 71, Stdin: "3 4", ExpectedOutput: "7"},
	}
	tokens, err := newTestClient(srv.URL, "secret").SubmitBatch(context.Background(), jobs)
	if err != nil {
		t.Fatalf("SubmitBatch error: %v", err)
	}

	if len(tokens) != 2 || tokens[0] != "aaa" || tokens[1] != "bbb" {
		t.Errorf("unexpected tokens: %v", tokens)
	}
	if len(received.Submissions) != 2 {
		t.Fatalf("expected 2 submissions sent, got %d", len(received.Submissions))
	}
	if received.Submissions[1].Stdin != "3 4" || received.Submissions[1].LanguageID != 71 {
		t.Errorf("unexpected second submission: %+v", received.Submissions[1])
	}
}

func TestStatusBatch_ReordersByToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tokens") != "aaa,bbb" {
			t.Errorf("tokens query = %q", r.URL.Query().Get("tokens"))
		}
		w.Header().Set("Content-Type", "application/json")
		// engine reports completion out of submission order
		_, _ = w.Write([]byte(`{"submissions":[
			{"token":"bbb","stdout":"7\n","status":{"id":3,"description":"Accepted"},"memory":1024,"time":"0.002"},
			{"token":"aaa","stdout":null,"stderr":"divide by zero","status":{"id":11,"description":"Runtime Error (SIGFPE)"}}
		]}`))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL, "").StatusBatch(context.Background(), []string{"aaa", "bbb"})
	if err != nil {
		t.Fatalf("StatusBatch error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Token != "aaa" || results[1].Token != "bbb" {
		t.Fatalf("results not in token order: %v, %v", results[0].Token, results[1].Token)
	}
	if results[0].Status != domain.StatusRuntimeError {
		t.Errorf("status[0] = %v", results[0].Status)
	}
	if results[0].Stdout != "" {
		t.Errorf("nil stdout should map to empty string, got %q", results[0].Stdout)
	}
	if results[0].Stderr == nil || *results[0].Stderr != "divide by zero" {
		t.Errorf("stderr lost: %v", results[0].Stderr)
	}
	if results[1].Status != domain.StatusAccepted || results[1].StatusText != "Accepted" {
		t.Errorf("unexpected status: %+v", results[1])
	}
	if results[1].MemoryKB == nil || *results[1].MemoryKB != 1024 {
		t.Errorf("memory not parsed: %v", results[1].MemoryKB)
	}
	if results[1].TimeSec == nil || *results[1].TimeSec != 0.002 {
		t.Errorf("time not parsed: %v", results[1].TimeSec)
	}
	if results[1].Stderr != nil || results[1].CompileOutput != nil {
		t.Error("absent error fields must stay nil")
	}
}

func TestStatusBatch_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"submissions":[{"token":"aaa","status":{"id":1,"description":"In Queue"}}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").StatusBatch(context.Background(), []string{"aaa", "bbb"})
	if err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestEngineErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue is full", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").Languages(context.Background())
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
}
