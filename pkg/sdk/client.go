package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client is the paperfind SDK entry point.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

// New creates a paperfind Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("paperfind: base URL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("paperfind: invalid base URL: %w", err)
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.apiKey,
		hc:      hc,
	}, nil
}

// SearchParams narrows and orders a search. Zero values mean "not set".
type SearchParams struct {
	Year          int
	Type          string
	Status        string
	Access        string
	MinRating     float64
	Author        string
	ResearchField string
	Scope         string
	Sort          string // date, relevance, title, rating
}

// Rating is an aggregated paper rating.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// SearchResult is one ranked paper.
type SearchResult struct {
	ID            string            `json:"id"`
	Category      string            `json:"category"`
	Title         string            `json:"title"`
	Score         float64           `json:"score"`
	Year          int               `json:"year,omitempty"`
	PublishedAt   string            `json:"publishedAt,omitempty"`
	Authors       []string          `json:"authors,omitempty"`
	MatchedFields map[string]string `json:"matchedFields,omitempty"`
	Rating        *Rating           `json:"rating,omitempty"`
}

// SearchResponse is a completed search.
type SearchResponse struct {
	Items      []SearchResult `json:"items"`
	Total      int            `json:"total"`
	SessionID  string         `json:"sessionId"`
	FetchMs    int64          `json:"fetchMs"`
	DidYouMean []string       `json:"didYouMean,omitempty"`
}

// Search runs a relevance search.
func (c *Client) Search(ctx context.Context, query string, p SearchParams) (SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	if p.Year != 0 {
		q.Set("year", strconv.Itoa(p.Year))
	}
	if p.MinRating != 0 {
		q.Set("minRating", strconv.FormatFloat(p.MinRating, 'f', -1, 64))
	}
	setNonEmpty(q, "type", p.Type)
	setNonEmpty(q, "status", p.Status)
	setNonEmpty(q, "access", p.Access)
	setNonEmpty(q, "author", p.Author)
	setNonEmpty(q, "researchField", p.ResearchField)
	setNonEmpty(q, "scope", p.Scope)
	setNonEmpty(q, "sort", p.Sort)

	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/search", q, &resp); err != nil {
		return SearchResponse{}, err
	}
	return resp, nil
}

// HighlightRange marks the matched run inside a suggestion, in runes.
type HighlightRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Suggestion is one typeahead completion.
type Suggestion struct {
	Text       string           `json:"text"`
	Highlights []HighlightRange `json:"highlights,omitempty"`
}

type suggestResponse struct {
	Query string       `json:"query"`
	Items []Suggestion `json:"items"`
}

// Suggest returns typeahead completions for a partial query.
// limit 0 uses the server default.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp suggestResponse
	if err := c.get(ctx, "/api/v1/suggest", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Autocorrection is a per-word corrected query.
type Autocorrection struct {
	Query     string `json:"query"`
	Corrected string `json:"corrected"`
	Changed   bool   `json:"changed"`
}

// Autocorrect returns the corrected form of a query.
func (c *Client) Autocorrect(ctx context.Context, query string) (Autocorrection, error) {
	q := url.Values{}
	q.Set("q", query)

	var resp Autocorrection
	if err := c.get(ctx, "/api/v1/autocorrect", q, &resp); err != nil {
		return Autocorrection{}, err
	}
	return resp, nil
}

type relatedResponse struct {
	Query   string   `json:"query"`
	Phrases []string `json:"phrases"`
}

// Related returns representative phrases from the papers best matching
// the query. limit 0 uses the server default.
func (c *Client) Related(ctx context.Context, query string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp relatedResponse
	if err := c.get(ctx, "/api/v1/related", q, &resp); err != nil {
		return nil, err
	}
	return resp.Phrases, nil
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health checks the health of all server components. A degraded report
// is returned without error; only transport failures error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := c.newRequest(ctx, "/healthz", nil)
	if err != nil {
		return HealthStatus{}, err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("paperfind: health request: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	var status HealthStatus
	if err := json.NewDecoder(res.Body).Decode(&status); err != nil {
		return HealthStatus{}, fmt.Errorf("paperfind: decode health response: %w", err)
	}
	return status, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := c.newRequest(ctx, path, q)
	if err != nil {
		return err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("paperfind: request %s: %w", path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return decodeAPIError(res)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("paperfind: decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, path string, q url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("paperfind: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}
	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
	}
	if apiErr.Code == "" {
		apiErr.Code = "http_error"
		apiErr.Message = res.Status
	}
	return apiErr
}

func setNonEmpty(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}
