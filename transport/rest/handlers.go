package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
)

const resultsLimit = 10

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	ResultsHandler(w http.ResponseWriter, r *http.Request)
}

type resultService interface {
	ListTop(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type handlers struct {
	resultService resultService
}

func NewHandlers(resultService resultService) Handlers {
	return &handlers{
		resultService: resultService,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// ResultsHandler returns the best finished rounds as JSON.
func (that *handlers) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	results, err := that.resultService.ListTop(r.Context(), resultsLimit)
	if err != nil {
		http.Error(w, "Failed to list results", http.StatusInternalServerError)
		return
	}

	if results == nil {
		results = []*entity.GameResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(results); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
