package handler

import "github.com/wanderpick/recommendation-service/internal/domain"

// RecommendationRequest is the POST body for a generation run. Interest order
// is significant: the first interest is treated as primary.
type RecommendationRequest struct {
	Interests         []string `json:"interests" validate:"omitempty,max=4,unique,dive,oneof=weather relaxation culture action"`
	MaxFlightDuration string   `json:"max_flight_duration" validate:"required,oneof=under-3h 3-6h 6-12h 12h+"`
}

type RecommendationResponse struct {
	TravelerID      int64                          `json:"traveler_id"`
	Recommendations []domain.CountryRecommendation `json:"recommendations"`
	Metadata        domain.RecommendationMeta      `json:"metadata"`
}

type VisitedResponse struct {
	TravelerID  int64  `json:"traveler_id"`
	CountryCode string `json:"country_code"`
	Status      string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
