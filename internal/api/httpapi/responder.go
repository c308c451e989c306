// Package httpapi exposes the booking engine over HTTP/JSON.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"resourcehub-backend/internal/availability"
	"resourcehub-backend/internal/logger"
	"resourcehub-backend/internal/recurrence"
	"resourcehub-backend/internal/repository"
	"resourcehub-backend/internal/security"
	"resourcehub-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// conflictResponse carries the extra detail a 409 needs so clients can
// offer the waitlist or point at the failing occurrence.
type conflictResponse struct {
	Error            string `json:"error"`
	Code             string `json:"code"`
	OccurrenceIndex  int    `json:"occurrence_index"`
	WaitlistEligible bool   `json:"waitlist_eligible"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeServiceError maps service-layer errors onto HTTP statuses. Rule
// violations are 422, conflicts 409, authorization failures 403, missing
// rows 404; anything unrecognized is a 500 with a generic body.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *availability.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Message, Code: string(verr.Code)})
		return
	}
	var cerr *service.ConflictError
	if errors.As(err, &cerr) {
		writeJSON(w, http.StatusConflict, conflictResponse{
			Error:            cerr.Error(),
			Code:             "booking_conflict",
			OccurrenceIndex:  cerr.OccurrenceIndex,
			WaitlistEligible: cerr.WaitlistEligible,
		})
		return
	}

	switch {
	case errors.Is(err, recurrence.ErrInvalidFrequency),
		errors.Is(err, service.ErrWaitlistRecurring),
		errors.Is(err, service.ErrInvalidSchedule):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "invalid_request")
	case errors.Is(err, service.ErrAlreadyWaitlisted),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error(), "conflict")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "you do not have permission to perform this action", "forbidden")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeError(w, http.StatusUnauthorized, err.Error(), "unauthorized")
	case errors.Is(err, service.ErrResourceUnavailable),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "not_found")
	default:
		logger.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error", "internal")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "bad_request")
		return false
	}
	return true
}
