// package judge0 is the HTTP client for a Judge0-compatible execution engine.
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pacerode/evaluator/internal/config"
	"github.com/pacerode/evaluator/internal/core/ports/primary"
	"github.com/pacerode/evaluator/internal/core/ports/secondary"
	"github.com/pacerode/evaluator/internal/domain"
)

const statusFields = "token,stdout,stderr,compile_output,status,memory,time"

var _ secondary.EngineClient = (*Client)(nil)

// Client implements the EngineClient interface against the Judge0 REST API.
type Client struct {
	baseUrl    string
	authToken  string
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a new engine client from config.
func NewClient(cfg *config.EngineConfig, logger primary.Logger) *Client {
	return &Client{
		baseUrl:   strings.TrimRight(cfg.BaseUrl, "/"),
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

type languageEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type batchSubmission struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

type batchSubmitRequest struct {
	Submissions []batchSubmission `json:"submissions"`
}

type tokenEntry struct {
	Token string `json:"token"`
}

type statusEntry struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type submissionEntry struct {
	Token         string      `json:"token"`
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Status        statusEntry `json:"status"`
	Memory        *float64    `json:"memory"`
	Time          *string     `json:"time"`
}

type batchStatusResponse struct {
	Submissions []submissionEntry `json:"submissions"`
}

// Languages queries the engine's language catalog.
func (c *Client) Languages(ctx context.Context) ([]domain.EngineLanguage, error) {
	var entries []languageEntry
	if err := c.get(ctx, "/languages", nil, &entries); err != nil {
		return nil, err
	}

	catalog := make([]domain.EngineLanguage, len(entries))
	for i, e := range entries {
		catalog[i] = domain.EngineLanguage{ID: e.ID, Name: e.Name}
	}
	return catalog, nil
}

// SubmitBatch submits one job per entry in a single batch request and
// returns the job tokens in input order.
func (c *Client) SubmitBatch(ctx context.Context, jobs []domain.BatchJob) ([]string, error) {
	payload := batchSubmitRequest{Submissions: make([]batchSubmission, len(jobs))}
	for i, j := range jobs {
		payload.Submissions[i] = batchSubmission{
			SourceCode:     j.SourceCode,
			LanguageID:     j.LanguageID,
			Stdin:          j.Stdin,
			ExpectedOutput: j.ExpectedOutput,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	query := url.Values{"base64_encoded": {"false"}}
	var entries []tokenEntry
	if err := c.post(ctx, "/submissions/batch", query, body, &entries); err != nil {
		return nil, err
	}

	tokens := make([]string, len(entries))
	for i, e := range entries {
		if e.Token == "" {
			return nil, fmt.Errorf("engine returned empty token at index %d", i)
		}
		tokens[i] = e.Token
	}
	return tokens, nil
}

// StatusBatch queries all tokens in one request. The response is re-indexed
// by token so the returned slice always follows the order of the tokens
// argument even if the engine reports them in another order.
func (c *Client) StatusBatch(ctx context.Context, tokens []string) ([]domain.RawJobResult, error) {
	query := url.Values{
		"tokens":         {strings.Join(tokens, ",")},
		"base64_encoded": {"false"},
		"fields":         {statusFields},
	}

	var resp batchStatusResponse
	if err := c.get(ctx, "/submissions/batch", query, &resp); err != nil {
		return nil, err
	}

	byToken := make(map[string]submissionEntry, len(resp.Submissions))
	for _, e := range resp.Submissions {
		byToken[e.Token] = e
	}

	results := make([]domain.RawJobResult, len(tokens))
	for i, token := range tokens {
		e, ok := byToken[token]
		if !ok {
			return nil, fmt.Errorf("engine response missing token %s", token)
		}
		results[i] = toRawResult(e)
	}
	return results, nil
}

func toRawResult(e submissionEntry) domain.RawJobResult {
	r := domain.RawJobResult{
		Token:         e.Token,
		Status:        domain.JobStatusFromEngine(e.Status.ID),
		StatusText:    e.Status.Description,
		Stderr:        e.Stderr,
		CompileOutput: e.CompileOutput,
		MemoryKB:      e.Memory,
	}
	if e.Stdout != nil {
		r.Stdout = *e.Stdout
	}
	if e.Time != nil {
		if sec, err := strconv.ParseFloat(*e.Time, 64); err == nil {
			r.TimeSec = &sec
		}
	}
	return r
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, query), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("engine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Engine returned error status",
			"method", req.Method,
			"url", req.URL.Path,
			"status", resp.StatusCode)
		return fmt.Errorf("engine returned status %d: %s", resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode engine response: %w", err)
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseUrl + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
