package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fishplant-backend/internal/handlers"
	"fishplant-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	masterHandler *handlers.MasterHandler,
	intakeHandler *handlers.IntakeHandler,
	inventoryHandler *handlers.InventoryHandler,
	listingHandler *handlers.ListingHandler,
	photoHandler *handlers.PhotoHandler,
	queueHandler *handlers.QueueHandler,
	draftHandler *handlers.DraftHandler,
	exportHandler *handlers.ExportHandler,
	proxyHandler *handlers.ProxyHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Pass-through proxy for the browser front-end. Deliberately outside
	// auth: the upstream web app does its own gatekeeping and the front-end
	// calls it before anyone has logged in.
	r.PathPrefix("/api/gas").HandlerFunc(proxyHandler.Forward)

	// Protected API routes - Master data
	masterAPI := r.PathPrefix("/api/master").Subrouter()
	masterAPI.Use(authMiddleware.Authenticate)
	masterAPI.HandleFunc("", masterHandler.Get).Methods("GET")
	masterAPI.HandleFunc("/reload", masterHandler.Reload).Methods("POST")

	// Protected API routes - Records and tickets
	recordsAPI := r.PathPrefix("/api/records").Subrouter()
	recordsAPI.Use(authMiddleware.Authenticate)
	recordsAPI.HandleFunc("", listingHandler.ListMonth).Methods("GET")

	ticketsAPI := r.PathPrefix("/api/tickets").Subrouter()
	ticketsAPI.Use(authMiddleware.Authenticate)
	ticketsAPI.HandleFunc("/{id}", listingHandler.GetTicket).Methods("GET")
	ticketsAPI.HandleFunc("/{id}/close", listingHandler.CloseTicket).Methods("POST")
	ticketsAPI.HandleFunc("/{id}/photos", photoHandler.ListByTicket).Methods("GET")

	// Protected API routes - Submissions
	intakeAPI := r.PathPrefix("/api/intake").Subrouter()
	intakeAPI.Use(authMiddleware.Authenticate)
	intakeAPI.HandleFunc("", intakeHandler.Submit).Methods("POST")

	inventoryAPI := r.PathPrefix("/api/inventory").Subrouter()
	inventoryAPI.Use(authMiddleware.Authenticate)
	inventoryAPI.HandleFunc("", inventoryHandler.Submit).Methods("POST")
	inventoryAPI.HandleFunc("/prefill", inventoryHandler.Prefill).Methods("GET")

	// Protected API routes - Offline queue
	queueAPI := r.PathPrefix("/api/queue").Subrouter()
	queueAPI.Use(authMiddleware.Authenticate)
	queueAPI.HandleFunc("", queueHandler.List).Methods("GET")
	queueAPI.HandleFunc("/sync", queueHandler.Sync).Methods("POST")

	// Protected API routes - Form drafts
	draftsAPI := r.PathPrefix("/api/drafts").Subrouter()
	draftsAPI.Use(authMiddleware.Authenticate)
	draftsAPI.HandleFunc("/{form}", draftHandler.Get).Methods("GET")
	draftsAPI.HandleFunc("/{form}", draftHandler.Put).Methods("PUT")
	draftsAPI.HandleFunc("/{form}", draftHandler.Delete).Methods("DELETE")

	// Protected API routes - Exports
	exportAPI := r.PathPrefix("/api/export").Subrouter()
	exportAPI.Use(authMiddleware.Authenticate)
	exportAPI.HandleFunc("/records.csv", exportHandler.MonthCSV).Methods("GET")
	exportAPI.HandleFunc("/records.pdf", exportHandler.MonthPDF).Methods("GET")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
