package http

import (
	"net/http"

	"roomledger-backend/internal/security"
	"roomledger-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the router wires handlers to.
type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Catalog   service.CatalogService
	Tenants   service.TenantService
	Leases    service.LeaseService
	Billing   service.BillingService
	Settings  service.SettingsService
	Dashboard service.DashboardService
}

// NewRouter builds the full API surface. Everything under /api except the
// login endpoint requires a valid bearer token.
func NewRouter(svcs Services, tokens security.TokenManager) *mux.Router {
	root := mux.NewRouter()
	root.Use(LoggingMiddleware)

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	authHandler := NewAuthHandler(svcs.Auth)
	root.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	api := root.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	userHandler := NewUserHandler(svcs.Users)
	api.HandleFunc("/users", userHandler.List).Methods("GET")
	api.HandleFunc("/users", userHandler.Create).Methods("POST")
	api.HandleFunc("/users/{id}", userHandler.Update).Methods("PUT")
	api.HandleFunc("/users/{id}", userHandler.Delete).Methods("DELETE")

	catalogHandler := NewCatalogHandler(svcs.Catalog, svcs.Leases)
	api.HandleFunc("/buildings", catalogHandler.ListBuildings).Methods("GET")
	api.HandleFunc("/buildings", catalogHandler.CreateBuilding).Methods("POST")
	api.HandleFunc("/buildings/{id}", catalogHandler.GetBuilding).Methods("GET")
	api.HandleFunc("/buildings/{id}", catalogHandler.UpdateBuilding).Methods("PUT")
	api.HandleFunc("/buildings/{id}", catalogHandler.DeleteBuilding).Methods("DELETE")
	api.HandleFunc("/rooms", catalogHandler.ListRooms).Methods("GET")
	api.HandleFunc("/rooms", catalogHandler.CreateRoom).Methods("POST")
	api.HandleFunc("/rooms/{id}", catalogHandler.GetRoomDetail).Methods("GET")
	api.HandleFunc("/rooms/{id}", catalogHandler.UpdateRoom).Methods("PUT")
	api.HandleFunc("/rooms/{id}", catalogHandler.DeleteRoom).Methods("DELETE")
	api.HandleFunc("/rooms/{id}/occupancy", catalogHandler.RoomOccupancy).Methods("GET")

	tenantHandler := NewTenantHandler(svcs.Tenants)
	api.HandleFunc("/tenants", tenantHandler.List).Methods("GET")
	api.HandleFunc("/tenants", tenantHandler.Create).Methods("POST")
	api.HandleFunc("/tenants/{id}", tenantHandler.GetDetail).Methods("GET")
	api.HandleFunc("/tenants/{id}", tenantHandler.Update).Methods("PUT")

	leaseHandler := NewLeaseHandler(svcs.Leases)
	api.HandleFunc("/leases", leaseHandler.List).Methods("GET")
	api.HandleFunc("/leases", leaseHandler.Create).Methods("POST")
	api.HandleFunc("/leases/{id}", leaseHandler.Get).Methods("GET")
	api.HandleFunc("/leases/{id}", leaseHandler.Update).Methods("PUT")
	api.HandleFunc("/leases/{id}/finish", leaseHandler.Finish).Methods("POST")

	billingHandler := NewBillingHandler(svcs.Billing)
	api.HandleFunc("/payments", billingHandler.ListPayments).Methods("GET")
	api.HandleFunc("/payments", billingHandler.CreatePayment).Methods("POST")
	api.HandleFunc("/payments/enriched", billingHandler.ListEnrichedPayments).Methods("GET")
	api.HandleFunc("/payments/pending/{month}", billingHandler.PendingByMonth).Methods("GET")
	api.HandleFunc("/payments/{id}", billingHandler.GetPayment).Methods("GET")
	api.HandleFunc("/payments/{id}", billingHandler.UpdatePayment).Methods("PUT")
	api.HandleFunc("/payments/{id}", billingHandler.DeletePayment).Methods("DELETE")
	api.HandleFunc("/payments/{id}/enriched", billingHandler.GetEnrichedPayment).Methods("GET")
	api.HandleFunc("/payments/{id}/approve", billingHandler.ApprovePayment).Methods("POST")
	api.HandleFunc("/payments/{id}/reject", billingHandler.RejectPayment).Methods("POST")
	api.HandleFunc("/expenses", billingHandler.ListExpenses).Methods("GET")
	api.HandleFunc("/expenses", billingHandler.CreateExpense).Methods("POST")
	api.HandleFunc("/expenses/{id}", billingHandler.UpdateExpense).Methods("PUT")
	api.HandleFunc("/expenses/{id}", billingHandler.DeleteExpense).Methods("DELETE")
	api.HandleFunc("/leases/{id}/deposit-balance", billingHandler.DepositBalance).Methods("GET")

	settingsHandler := NewSettingsHandler(svcs.Settings)
	api.HandleFunc("/settings", settingsHandler.Get).Methods("GET")
	api.HandleFunc("/settings", settingsHandler.Update).Methods("PUT")

	dashboardHandler := NewDashboardHandler(svcs.Dashboard)
	api.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods("GET")

	return root
}
