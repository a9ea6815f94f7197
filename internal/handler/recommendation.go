package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wanderpick/recommendation-service/internal/domain"
	"github.com/wanderpick/recommendation-service/internal/service"
)

// POST /travelers/{travelerID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	travelerIDStr := chi.URLParam(r, "travelerID")
	travelerID, err := strconv.ParseInt(travelerIDStr, 10, 64)
	if err != nil || travelerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid travelerID parameter")
		return
	}

	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}

	fresh := r.URL.Query().Get("fresh") == "1"

	result, err := h.service.GetRecommendations(r.Context(), travelerID, service.GenerateRequest{
		Interests:         req.Interests,
		MaxFlightDuration: domain.FlightDurationBucket(req.MaxFlightDuration),
		Fresh:             fresh,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTravelerNotFound) {
			writeError(w, http.StatusNotFound, "traveler_not_found",
				fmt.Sprintf("Traveler with ID %d does not exist", travelerID))
			return
		}
		if errors.Is(err, domain.ErrMissingHomeLocation) {
			writeError(w, http.StatusUnprocessableEntity, "missing_home_location",
				"Please select a home country")
			return
		}
		if domain.IsUnknownHomeCoordinates(err) {
			writeError(w, http.StatusUnprocessableEntity, "unknown_home_coordinates", err.Error())
			return
		}
		if errors.Is(err, domain.ErrNoCandidates) {
			writeError(w, http.StatusUnprocessableEntity, "no_candidates",
				"No countries match your criteria, try a longer flight duration or different interests")
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	resp := RecommendationResponse{
		TravelerID:      travelerID,
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			CacheHit:     result.CacheHit,
			GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
			GenerationID: uuid.NewString(),
			TotalCount:   len(result.Recommendations),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}
