package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wanderpick/recommendation-service/internal/domain"
)

// POST /travelers/{travelerID}/visited/{countryCode}
func (h *Handler) MarkVisited(w http.ResponseWriter, r *http.Request) {
	travelerIDStr := chi.URLParam(r, "travelerID")
	travelerID, err := strconv.ParseInt(travelerIDStr, 10, 64)
	if err != nil || travelerID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid travelerID parameter")
		return
	}

	countryCode := strings.ToUpper(chi.URLParam(r, "countryCode"))
	if err := h.validate.Var(countryCode, "required,len=2,alpha"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter",
			"countryCode must be an ISO 3166-1 alpha-2 code")
		return
	}

	if err := h.service.MarkVisited(r.Context(), travelerID, countryCode); err != nil {
		if errors.Is(err, domain.ErrTravelerNotFound) {
			writeError(w, http.StatusNotFound, "traveler_not_found",
				fmt.Sprintf("Traveler with ID %d does not exist", travelerID))
			return
		}
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, "country_not_found",
				fmt.Sprintf("Country %s is not in the catalog", countryCode))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, VisitedResponse{
		TravelerID:  travelerID,
		CountryCode: countryCode,
		Status:      "visited",
	})
}
