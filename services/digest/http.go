package digest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newsdesk-backend/lib/scrapers/gazette"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type latestResponse struct {
	ArticleCount int               `json:"articleCount"`
	Articles     []gazette.Article `json:"articles"`
}

func (s Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/articles", s.handleArticles)
	mux.HandleFunc("GET /api/articles/inspect", s.handleInspect)
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Warn("failed to encode response body", "err", err)
	}
}

// serves the article set stored by the last successful run
func (s Service) handleArticles(w http.ResponseWriter, req *http.Request) {
	stored, ok, err := s.store.Get(req.Context(), KeyLatestArticles)
	if err != nil {
		writeJson(w, http.StatusInternalServerError, errorResponse{
			Error:   "failed to read stored articles",
			Details: err.Error(),
		})
		return
	}

	articles := []gazette.Article{}
	if ok {
		err = json.Unmarshal([]byte(stored), &articles)
		if err != nil {
			writeJson(w, http.StatusInternalServerError, errorResponse{
				Error:   "stored articles are corrupt",
				Details: err.Error(),
			})
			return
		}
	}

	writeJson(w, http.StatusOK, latestResponse{
		ArticleCount: len(articles),
		Articles:     articles,
	})
}

// synchronous diagnostic entry point: fetches and extracts right now,
// reporting records and debug fields from that fresh run
func (s Service) handleInspect(w http.ResponseWriter, req *http.Request) {
	report, err := s.Inspect(req.Context())
	if err != nil {
		slog.ErrorContext(req.Context(), "inspect failed", "err", err)
		writeJson(w, inspectErrorStatus(err), errorResponse{
			Error:   "scrape failed",
			Details: err.Error(),
		})
		return
	}
	writeJson(w, http.StatusOK, report)
}

func inspectErrorStatus(err error) int {
	var statusErr gazette.StatusError
	switch {
	case errors.Is(err, gazette.ErrNoCredential):
		return http.StatusServiceUnavailable
	case errors.As(err, &statusErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
