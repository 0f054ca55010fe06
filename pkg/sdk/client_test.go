package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := New("   "); err == nil {
		t.Fatal("expected error for blank base URL")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("path: got %s, want /api/v1/search", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Search(context.Background(), "x", SearchParams{}); err != nil {
		t.Fatalf("search: %v", err)
	}
}

func TestSearch_EncodesParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Items: []SearchResult{{ID: "p1", Title: "Diabetes care", Score: 0.9}},
			Total: 1,
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	resp, err := c.Search(context.Background(), "diabetes", SearchParams{
		Year:      2024,
		MinRating: 3.5,
		Access:    "public",
		Author:    "Weber",
		Sort:      "rating",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	want := map[string]string{
		"q":         "diabetes",
		"year":      "2024",
		"minRating": "3.5",
		"access":    "public",
		"author":    "Weber",
		"sort":      "rating",
	}
	for k, v := range want {
		if len(gotQuery[k]) == 0 || gotQuery[k][0] != v {
			t.Errorf("param %s: got %v, want %s", k, gotQuery[k], v)
		}
	}
	if _, ok := gotQuery["type"]; ok {
		t.Error("empty type param should be omitted")
	}

	if resp.Total != 1 || resp.Items[0].ID != "p1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "validation_failed",
			"message": "year must be an integer",
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Search(context.Background(), "x", SearchParams{})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Code != "validation_failed" {
		t.Errorf("code: got %s, want validation_failed", apiErr.Code)
	}
}

func TestSearch_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Search(context.Background(), "x", SearchParams{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "http_error" {
		t.Errorf("code: got %s, want http_error", apiErr.Code)
	}
}

func TestAPIKey_SentAsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer srv.Close()

	c, _ := New(srv.URL, WithAPIKey("secret"))
	if _, err := c.Search(context.Background(), "x", SearchParams{}); err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("authorization: got %q, want %q", gotAuth, "Bearer secret")
	}
}

func TestSuggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit: got %s, want 5", got)
		}
		_ = json.NewEncoder(w).Encode(suggestResponse{
			Query: "diabet",
			Items: []Suggestion{
				{Text: "diabete", Highlights: []HighlightRange{{Start: 0, End: 6}}},
			},
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	items, err := c.Suggest(context.Background(), "diabet", 5)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(items) != 1 || items[0].Text != "diabete" {
		t.Fatalf("unexpected suggestions: %+v", items)
	}
	if len(items[0].Highlights) != 1 || items[0].Highlights[0].End != 6 {
		t.Errorf("unexpected highlights: %+v", items[0].Highlights)
	}
}

func TestAutocorrect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Autocorrection{
			Query:     "managment",
			Corrected: "management",
			Changed:   true,
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	got, err := c.Autocorrect(context.Background(), "managment")
	if err != nil {
		t.Fatalf("autocorrect: %v", err)
	}
	if !got.Changed || got.Corrected != "management" {
		t.Errorf("unexpected correction: %+v", got)
	}
}

func TestRelated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(relatedResponse{
			Query:   "diabetes",
			Phrases: []string{"glucose monitoring", "insulin therapy"},
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	phrases, err := c.Related(context.Background(), "diabetes", 0)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(phrases) != 2 {
		t.Fatalf("unexpected phrases: %+v", phrases)
	}
}

func TestHealth_DegradedWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthStatus{
			Status: "degraded",
			Checks: map[string]string{"database": "error"},
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if status.Status != "degraded" {
		t.Errorf("status: got %s, want degraded", status.Status)
	}
	if status.Checks["database"] != "error" {
		t.Errorf("database check: got %s, want error", status.Checks["database"])
	}
}
