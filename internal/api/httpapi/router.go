package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"resourcehub-backend/internal/security"
	"resourcehub-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth          service.AuthService
	Resources     service.ResourceService
	Bookings      service.BookingService
	Availability  service.AvailabilityService
	Notifications service.NotificationService
	Tokens        security.TokenManager
}

// NewRouter wires all routes. Everything under /api except auth and the
// public resource catalog requires a Bearer access token.
func NewRouter(svcs Services) *mux.Router {
	auth := &authHandler{auth: svcs.Auth}
	resources := &resourceHandler{resources: svcs.Resources, availability: svcs.Availability}
	bookings := &bookingHandler{bookings: svcs.Bookings}
	notifications := &notificationHandler{notifications: svcs.Notifications}

	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api.HandleFunc("/auth/signup", auth.signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", auth.refresh).Methods(http.MethodPost)

	// Public catalog endpoints.
	api.HandleFunc("/resources", resources.list).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id:[0-9]+}", resources.get).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id:[0-9]+}/schedule", resources.scheduleSummary).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id:[0-9]+}/rules", resources.rulesSummary).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id:[0-9]+}/next-slot", resources.nextSlot).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(svcs.Tokens))

	authed.HandleFunc("/my/resources", resources.listMine).Methods(http.MethodGet)
	authed.HandleFunc("/resources", resources.create).Methods(http.MethodPost)
	authed.HandleFunc("/resources/{id:[0-9]+}/schedule", resources.updateSchedule).Methods(http.MethodPut)
	authed.HandleFunc("/resources/{id:[0-9]+}/rules", resources.updateRules).Methods(http.MethodPut)

	authed.HandleFunc("/bookings", bookings.create).Methods(http.MethodPost)
	authed.HandleFunc("/my/bookings", bookings.listMine).Methods(http.MethodGet)
	authed.HandleFunc("/owner/bookings", bookings.listForOwner).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}", bookings.get).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/approve", bookings.approve()).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/reject", bookings.reject()).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookings.cancel).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/complete", bookings.complete).Methods(http.MethodPost)

	authed.HandleFunc("/my/waitlist", bookings.listMyWaitlist).Methods(http.MethodGet)
	authed.HandleFunc("/waitlist/{id:[0-9]+}", bookings.cancelWaitlistEntry).Methods(http.MethodDelete)

	authed.HandleFunc("/notifications", notifications.list).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", notifications.markAsRead).Methods(http.MethodPost)

	return r
}
