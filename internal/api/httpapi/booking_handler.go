package httpapi

import (
	"net/http"
	"time"

	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/service"
)

type bookingHandler struct {
	bookings service.BookingService
}

type createBookingRequest struct {
	ResourceID int32     `json:"resource_id"`
	Start      time.Time `json:"start_datetime"`
	End        time.Time `json:"end_datetime"`
	Notes      string    `json:"notes"`
	Frequency  string    `json:"frequency"`
	// JoinWaitlist queues the interval instead of failing with 409 when a
	// single-occurrence request conflicts.
	JoinWaitlist bool `json:"join_waitlist"`
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

func (h *bookingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ResourceID <= 0 || req.Start.IsZero() || req.End.IsZero() {
		writeError(w, http.StatusBadRequest, "resource_id, start_datetime and end_datetime are required", "bad_request")
		return
	}

	result, err := h.bookings.RequestBooking(r.Context(), service.BookingRequest{
		ResourceID:             req.ResourceID,
		RequesterID:            callerID(r),
		Start:                  req.Start,
		End:                    req.End,
		Notes:                  req.Notes,
		Frequency:              req.Frequency,
		JoinWaitlistOnConflict: req.JoinWaitlist,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if result.WaitlistEntry != nil {
		writeJSON(w, http.StatusAccepted, map[string]any{"waitlist_entry": result.WaitlistEntry})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"bookings": result.Bookings})
}

func (h *bookingHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id", "bad_request")
		return
	}
	booking, err := h.bookings.Get(r.Context(), callerID(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *bookingHandler) listMine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListMine(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (h *bookingHandler) listForOwner(w http.ResponseWriter, r *http.Request) {
	status := domain.BookingStatus(r.URL.Query().Get("status"))
	bookings, err := h.bookings.ListForOwner(r.Context(), callerID(r), status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (h *bookingHandler) decision(decide func(r *http.Request, id int32, notes string) (*domain.Booking, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid booking id", "bad_request")
			return
		}
		var req decisionRequest
		if r.ContentLength > 0 && !decodeBody(w, r, &req) {
			return
		}
		booking, err := decide(r, id, req.Notes)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

func (h *bookingHandler) approve() http.HandlerFunc {
	return h.decision(func(r *http.Request, id int32, notes string) (*domain.Booking, error) {
		return h.bookings.Approve(r.Context(), callerID(r), id, notes)
	})
}

func (h *bookingHandler) reject() http.HandlerFunc {
	return h.decision(func(r *http.Request, id int32, notes string) (*domain.Booking, error) {
		return h.bookings.Reject(r.Context(), callerID(r), id, notes)
	})
}

func (h *bookingHandler) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id", "bad_request")
		return
	}
	booking, err := h.bookings.Cancel(r.Context(), callerID(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *bookingHandler) complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id", "bad_request")
		return
	}
	booking, err := h.bookings.Complete(r.Context(), callerID(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *bookingHandler) listMyWaitlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.bookings.ListMyWaitlist(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"waitlist_entries": entries})
}

func (h *bookingHandler) cancelWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid waitlist entry id", "bad_request")
		return
	}
	if err := h.bookings.CancelWaitlistEntry(r.Context(), callerID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
