package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/wanderpick/recommendation-service/internal/domain"
	"github.com/wanderpick/recommendation-service/internal/service"
)

// RecommendationService is the service surface the handlers depend on.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, travelerID int64, req service.GenerateRequest) (*domain.RecommendationResult, error)
	GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error)
	MarkVisited(ctx context.Context, travelerID int64, countryCode string) error
}

type Handler struct {
	service  RecommendationService
	validate *validator.Validate
}

func NewHandler(svc RecommendationService) *Handler {
	return &Handler{
		service:  svc,
		validate: validator.New(),
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
