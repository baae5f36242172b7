package http

import (
	"net/http"

	"homywork-server/internal/config"
	"homywork-server/internal/domain"
	"homywork-server/internal/service"
	"homywork-server/internal/storage"

	"github.com/gorilla/mux"
)

// Services bundles everything the router wires handlers to.
type Services struct {
	Auth         service.AuthService
	User         service.UserService
	Property     service.PropertyService
	Booking      service.BookingService
	Payout       service.PayoutService
	Availability service.AvailabilityService
	CalendarSync service.CalendarSyncService
	Review       service.ReviewService
	Admin        service.AdminService
	ImageStorage service.ImageStorageService
}

// NewRouter builds the full API route table. mockStorage may be nil when a
// real object-storage backend is configured; the mock upload endpoints are
// only registered when it is present.
func NewRouter(cfg *config.Config, svcs *Services, mockStorage *storage.MockStorageService) *mux.Router {
	r := mux.NewRouter()

	authMW := NewAuthMiddleware(svcs.Auth, cfg.Session.CookieName)
	r.Use(authMW.Authenticate)

	authHandler := NewAuthHandler(svcs.Auth, cfg)
	userHandler := NewUserHandler(svcs.User, cfg.Server.BaseURL)
	propertyHandler := NewPropertyHandler(svcs.Property)
	bookingHandler := NewBookingHandler(svcs.Booking)
	availabilityHandler := NewAvailabilityHandler(svcs.Availability)
	syncHandler := NewCalendarSyncHandler(svcs.CalendarSync)
	reviewHandler := NewReviewHandler(svcs.Review)
	uploadHandler := NewUploadHandler(svcs.ImageStorage, mockStorage)
	adminHandler := NewAdminHandler(svcs.Admin, svcs.Payout)

	r.HandleFunc("/api/health", handleHealth).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/api/auth/google/login", authHandler.HandleLogin).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/google/callback", authHandler.HandleCallback).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/logout", authHandler.HandleLogout).Methods(http.MethodPost)
	r.HandleFunc("/api/me", RequireAuth(authHandler.HandleMe)).Methods(http.MethodGet)

	// Public catalog
	r.HandleFunc("/api/properties", propertyHandler.HandleListPublic).Methods(http.MethodGet)
	r.HandleFunc("/api/properties/{id}", propertyHandler.HandleGetPublic).Methods(http.MethodGet)
	r.HandleFunc("/api/properties/{id}/reviews", reviewHandler.HandleListByProperty).Methods(http.MethodGet)
	r.HandleFunc("/api/properties/{id}/availability", availabilityHandler.HandleList).Methods(http.MethodGet)

	// User self-service
	r.HandleFunc("/api/users/become-host", RequireAuth(userHandler.HandleBecomeHost)).Methods(http.MethodPost)
	r.HandleFunc("/api/users/stripe/onboarding", RequireAuth(userHandler.HandleStripeOnboarding)).Methods(http.MethodPost)
	r.HandleFunc("/api/users/stripe/status", RequireAuth(userHandler.HandleStripeStatus)).Methods(http.MethodPost)

	// Host listing management
	r.HandleFunc("/api/host/properties", RequireAuth(propertyHandler.HandleListMine)).Methods(http.MethodGet)
	r.HandleFunc("/api/host/bookings", RequireAuth(bookingHandler.HandleListHost)).Methods(http.MethodGet)
	r.HandleFunc("/api/properties", RequireAuth(propertyHandler.HandleCreate)).Methods(http.MethodPost)
	r.HandleFunc("/api/properties/{id}", RequireAuth(propertyHandler.HandleUpdate)).Methods(http.MethodPut)
	r.HandleFunc("/api/properties/{id}", RequireAuth(propertyHandler.HandleDelete)).Methods(http.MethodDelete)
	r.HandleFunc("/api/properties/{id}/availability", RequireAuth(availabilityHandler.HandleSet)).Methods(http.MethodPut)
	r.HandleFunc("/api/properties/{id}/calendar-syncs", RequireAuth(syncHandler.HandleCreate)).Methods(http.MethodPost)
	r.HandleFunc("/api/properties/{id}/calendar-syncs", RequireAuth(syncHandler.HandleList)).Methods(http.MethodGet)
	r.HandleFunc("/api/calendar-syncs/{id}", RequireAuth(syncHandler.HandleDelete)).Methods(http.MethodDelete)
	r.HandleFunc("/api/calendar-syncs/{id}/sync", RequireAuth(syncHandler.HandleSyncNow)).Methods(http.MethodPost)

	// Guest bookings
	r.HandleFunc("/api/bookings", RequireAuth(bookingHandler.HandleCreate)).Methods(http.MethodPost)
	r.HandleFunc("/api/bookings", RequireAuth(bookingHandler.HandleListMine)).Methods(http.MethodGet)
	r.HandleFunc("/api/bookings/{id}", RequireAuth(bookingHandler.HandleGet)).Methods(http.MethodGet)
	r.HandleFunc("/api/bookings/{id}/payment-intent", RequireAuth(bookingHandler.HandleCreatePaymentIntent)).Methods(http.MethodPost)
	r.HandleFunc("/api/bookings/{id}/confirm", RequireAuth(bookingHandler.HandleConfirm)).Methods(http.MethodPost)
	r.HandleFunc("/api/bookings/{id}/cancel", RequireAuth(bookingHandler.HandleCancel)).Methods(http.MethodPost)
	r.HandleFunc("/api/bookings/{id}/reviews", RequireAuth(reviewHandler.HandleCreate)).Methods(http.MethodPost)

	// Image uploads
	r.HandleFunc("/api/uploads", RequireAuth(uploadHandler.HandleIssueUploadURL)).Methods(http.MethodPost)
	if mockStorage != nil {
		r.HandleFunc("/api/uploads/{token}", uploadHandler.HandleMockUpload).Methods(http.MethodPut)
		r.HandleFunc("/api/images", uploadHandler.HandleMockDownload).Methods(http.MethodGet)
	}

	// Admin
	r.HandleFunc("/api/admin/users", RequireRole(adminHandler.HandleListUsers, domain.UserRoleAdmin)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/users/{id}/role", RequireRole(adminHandler.HandleSetUserRole, domain.UserRoleAdmin)).Methods(http.MethodPut)
	r.HandleFunc("/api/admin/properties", RequireRole(adminHandler.HandleListProperties, domain.UserRoleAdmin)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/properties/{id}/status", RequireRole(adminHandler.HandleSetPropertyStatus, domain.UserRoleAdmin)).Methods(http.MethodPut)
	r.HandleFunc("/api/admin/payouts/run", RequireRole(adminHandler.HandleRunPayouts, domain.UserRoleAdmin)).Methods(http.MethodPost)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
