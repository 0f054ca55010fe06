// Package chi exposes the search API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/paperfind/paperfind/internal/db"
	"github.com/paperfind/paperfind/internal/domain"
	"github.com/paperfind/paperfind/internal/domain/search/filter"
	"github.com/paperfind/paperfind/internal/domain/search/result"
	"github.com/paperfind/paperfind/internal/domain/search/sortmode"
	"github.com/paperfind/paperfind/internal/suggest"
	healthuc "github.com/paperfind/paperfind/internal/usecase/health"
	searchuc "github.com/paperfind/paperfind/internal/usecase/search"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest          = "bad_request"
	codeValidationFailed    = "validation_failed"
	codeSnapshotUnavailable = "snapshot_unavailable"
	codeInternalError       = "internal_error"
)

// Limits holds per-endpoint result caps.
type Limits struct {
	Suggest  int
	Related  int
	MaxQuery int
}

// Server handles the HTTP search API.
type Server struct {
	search *searchuc.Service
	health *healthuc.Service
	limits Limits
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, limits Limits, logger *zap.Logger) *Server {
	if limits.Suggest <= 0 {
		limits.Suggest = 10
	}
	if limits.Related <= 0 {
		limits.Related = 6
	}
	if limits.MaxQuery <= 0 {
		limits.MaxQuery = 512
	}
	return &Server{
		search: search,
		health: health,
		limits: limits,
		logger: logger,
	}
}

// Routes registers all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/suggest", s.handleSuggest)
	r.Get("/api/v1/autocorrect", s.handleAutocorrect)
	r.Get("/api/v1/related", s.handleRelated)
	r.Post("/api/v1/click", s.handleClick)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ratingDTO struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type searchResultItem struct {
	ID            string            `json:"id"`
	Category      string            `json:"category"`
	Title         string            `json:"title"`
	Score         float64           `json:"score"`
	Year          int               `json:"year,omitempty"`
	PublishedAt   string            `json:"publishedAt,omitempty"`
	Authors       []string          `json:"authors,omitempty"`
	MatchedFields map[string]string `json:"matchedFields,omitempty"`
	Rating        *ratingDTO        `json:"rating,omitempty"`
}

type searchResponse struct {
	Items      []searchResultItem `json:"items"`
	Total      int                `json:"total"`
	SessionID  string             `json:"sessionId"`
	FetchMs    int64              `json:"fetchMs"`
	DidYouMean []string           `json:"didYouMean,omitempty"`
}

// handleSearch handles GET /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := q.Get("q")
	if len(query) > s.limits.MaxQuery {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query too long")
		return
	}

	params, err := filterParams(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	f, err := filter.New(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	mode := sortmode.Default
	if raw := q.Get("sort"); raw != "" {
		mode = sortmode.Mode(raw)
		if !mode.IsValid() {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				"sort must be date, relevance, title or rating")
			return
		}
	}

	out, err := s.search.Search(r.Context(), query, f, mode)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(out.Results))
	for i := range out.Results {
		items[i] = resultToItem(&out.Results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Items:      items,
		Total:      out.Total,
		SessionID:  out.SessionID,
		FetchMs:    out.FetchDuration.Milliseconds(),
		DidYouMean: out.DidYouMean,
	})
}

type highlightDTO struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type suggestionItem struct {
	Text       string         `json:"text"`
	Highlights []highlightDTO `json:"highlights,omitempty"`
}

type suggestResponse struct {
	Query string           `json:"query"`
	Items []suggestionItem `json:"items"`
}

// handleSuggest handles GET /api/v1/suggest.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) > s.limits.MaxQuery {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query too long")
		return
	}

	limit := s.limits.Suggest
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	terms, err := s.search.Suggest(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]suggestionItem, len(terms))
	for i, t := range terms {
		ranges := suggest.HighlightRanges(t, query)
		highlights := make([]highlightDTO, len(ranges))
		for j, hr := range ranges {
			highlights[j] = highlightDTO{Start: hr.Start, End: hr.End}
		}
		items[i] = suggestionItem{Text: t, Highlights: highlights}
	}

	writeJSON(w, http.StatusOK, suggestResponse{Query: query, Items: items})
}

type autocorrectResponse struct {
	Query     string `json:"query"`
	Corrected string `json:"corrected"`
	Changed   bool   `json:"changed"`
}

// handleAutocorrect handles GET /api/v1/autocorrect.
func (s *Server) handleAutocorrect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "q is required")
		return
	}
	if len(query) > s.limits.MaxQuery {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query too long")
		return
	}

	corrected, err := s.search.Autocorrect(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, autocorrectResponse{
		Query:     query,
		Corrected: corrected,
		Changed:   corrected != query,
	})
}

type relatedResponse struct {
	Query   string   `json:"query"`
	Phrases []string `json:"phrases"`
}

// handleRelated handles GET /api/v1/related.
func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "q is required")
		return
	}
	if len(query) > s.limits.MaxQuery {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query too long")
		return
	}

	k := s.limits.Related
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 50 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be between 1 and 50")
			return
		}
		k = n
	}

	phrases, err := s.search.RelatedPhrases(r.Context(), query, k)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if phrases == nil {
		phrases = []string{}
	}

	writeJSON(w, http.StatusOK, relatedResponse{Query: query, Phrases: phrases})
}

// handleClick handles POST /api/v1/click.
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	if err := s.search.RecordClick(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// filterParams extracts filter inputs from the query string.
func filterParams(q map[string][]string) (filter.Params, error) {
	get := func(key string) string {
		if vals := q[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	var p filter.Params
	if raw := get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter.Params{}, errors.New("year must be an integer")
		}
		p.Year = year
	}
	if raw := get("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter.Params{}, errors.New("minRating must be a number")
		}
		p.MinRating = rating
	}
	p.Type = get("type")
	p.Status = get("status")
	p.Access = get("access")
	p.Author = get("author")
	p.ResearchField = get("researchField")
	p.Scope = get("scope")
	return p, nil
}

func resultToItem(r *result.ScoredPaper) searchResultItem {
	p := r.Paper()
	item := searchResultItem{
		ID:            p.ID(),
		Category:      p.Category(),
		Title:         p.Title(),
		Score:         r.Score(),
		Year:          p.Year(),
		PublishedAt:   p.PublishedAt(),
		Authors:       p.AuthorNames(),
		MatchedFields: r.MatchedFields(),
	}
	if r.Rating().Count() > 0 {
		item.Rating = &ratingDTO{
			Average: r.Rating().Average(),
			Count:   r.Rating().Count(),
		}
	}
	return item
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrPaperNotFound,
		domain.ErrSnapshotUnavailable,
		domain.ErrInvalidFilter,
		domain.ErrInvalidSortMode,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)

	switch {
	case errors.Is(err, domain.ErrInvalidFilter), errors.Is(err, domain.ErrInvalidSortMode):
		writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
		return
	case errors.Is(err, domain.ErrPaperNotFound):
		writeError(w, http.StatusNotFound, codeBadRequest, msg)
		return
	case errors.Is(err, domain.ErrSnapshotUnavailable):
		writeError(w, http.StatusServiceUnavailable, codeSnapshotUnavailable, msg)
		return
	}

	var dbErr *db.Error
	if errors.As(err, &dbErr) {
		writeError(w, http.StatusServiceUnavailable, codeSnapshotUnavailable, "store unavailable")
		return
	}

	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
