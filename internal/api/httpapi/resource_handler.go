package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/service"
)

type resourceHandler struct {
	resources    service.ResourceService
	availability service.AvailabilityService
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func (h *resourceHandler) list(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resources.ListPublished(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resources": resources})
}

func (h *resourceHandler) listMine(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resources.ListMine(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resources": resources})
}

func (h *resourceHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid resource id", "bad_request")
		return
	}
	resource, err := h.resources.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

func (h *resourceHandler) create(w http.ResponseWriter, r *http.Request) {
	var resource domain.Resource
	if !decodeBody(w, r, &resource) {
		return
	}
	if resource.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required", "bad_request")
		return
	}
	if err := h.resources.Create(r.Context(), callerID(r), &resource); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}

type updateScheduleRequest struct {
	// Template selects a preset by key; Schedule supplies raw weekly
	// schedule JSON. Both empty clears the constraint.
	Template string `json:"template"`
	Schedule string `json:"schedule"`
}

func (h *resourceHandler) updateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid resource id", "bad_request")
		return
	}
	var req updateScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resource, err := h.resources.UpdateSchedule(r.Context(), callerID(r), id, req.Template, req.Schedule)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

func (h *resourceHandler) updateRules(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid resource id", "bad_request")
		return
	}
	var rules domain.Resource
	if !decodeBody(w, r, &rules) {
		return
	}
	resource, err := h.resources.UpdateRules(r.Context(), callerID(r), id, rules)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

func (h *resourceHandler) scheduleSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid resource id", "bad_request")
		return
	}
	lines, err := h.availability.ScheduleSummary(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": lines})
}

func (h *resourceHandler) rulesSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid resource id", "bad_request")
		return
	}
	rules, err := h.availability.RulesSummary(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rules": rules})
}

func (h *resourceHandler) nextSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid resource id", "bad_request")
		return
	}
	var duration int32
	if raw := r.URL.Query().Get("duration_minutes"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "duration_minutes must be a positive integer", "bad_request")
			return
		}
		duration = int32(parsed)
	}
	slot, err := h.availability.NextSlot(r.Context(), id, duration)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if slot == nil {
		writeJSON(w, http.StatusOK, map[string]any{"found": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"found": true, "slot": slot})
}
