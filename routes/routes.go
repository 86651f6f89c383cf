package routes

import (
	"context"
	"denuncias/handler"
	"denuncias/metrics"
	"denuncias/middleware"
	"denuncias/models"
	"denuncias/service"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Services bundles what the route table dispatches to.
type Services struct {
	Complaints  *service.ComplaintService
	Staff       *service.StaffService
	Citizens    *service.CitizenService
	Reporters   *service.ReporterService
	Attachments *service.AttachmentService
}

// Options configures the router.
type Options struct {
	JWTSecret    string
	MaxFileBytes int64
	Metrics      *metrics.Metrics
	// Ping backs /health; nil reports healthy.
	Ping func(ctx context.Context) error
}

var (
	admin       = middleware.Roles(models.RoleAdministrator)
	director    = middleware.Roles(models.RoleDirector)
	adminOrDir  = middleware.Roles(models.RoleAdministrator, models.RoleDirector)
	adminOrInsp = middleware.Roles(models.RoleAdministrator, models.RoleInspector)
	fieldStaff  = middleware.Roles(models.RoleDirector, models.RoleInspector)
	anyAuthed   = middleware.AnyAuthenticated
)

// SetupRoutes configures all API routes
func SetupRoutes(svc Services, opts Options, log *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Observe(log, opts.Metrics))

	auth := middleware.NewAuthMiddleware(opts.JWTSecret, log)
	complaintHandler := handler.NewComplaintHandler(svc.Complaints, opts.MaxFileBytes, log)
	publicHandler := handler.NewPublicHandler(svc.Complaints, log)
	staffHandler := handler.NewStaffHandler(svc.Staff, log)
	citizenHandler := handler.NewCitizenHandler(svc.Citizens, log)
	adminHandler := handler.NewAdminHandler(svc.Reporters, log)
	attachmentHandler := handler.NewAttachmentHandler(svc.Attachments, opts.MaxFileBytes, log)

	api := router.PathPrefix("/api").Subrouter()

	// Complaints. Literal paths are registered before /{id}.
	complaints := api.PathPrefix("/denuncias").Subrouter()
	complaints.HandleFunc("/status/{id}", complaintHandler.GetPublicStatus).Methods("GET")
	complaints.Handle("/reports/summary", auth.Protect(adminOrDir, complaintHandler.GetReport)).Methods("GET")
	complaints.Handle("", auth.Protect(anyAuthed, complaintHandler.ListComplaints)).Methods("GET")
	complaints.Handle("", auth.Protect(adminOrInsp, complaintHandler.CreateComplaint)).Methods("POST")
	complaints.Handle("/{id:[0-9]+}", auth.Protect(anyAuthed, complaintHandler.GetComplaint)).Methods("GET")
	complaints.Handle("/{id:[0-9]+}", auth.Protect(adminOrInsp, complaintHandler.UpdateComplaint)).Methods("PUT")
	complaints.Handle("/{id:[0-9]+}", auth.Protect(admin, complaintHandler.DeleteComplaint)).Methods("DELETE")
	complaints.Handle("/{id:[0-9]+}/assign", auth.Protect(director, complaintHandler.AssignComplaint)).Methods("POST")
	complaints.Handle("/{id:[0-9]+}/state", auth.Protect(fieldStaff, complaintHandler.UpdateState)).Methods("PUT")
	complaints.Handle("/{id:[0-9]+}/history", auth.Protect(fieldStaff, complaintHandler.GetHistory)).Methods("GET")
	complaints.Handle("/{id:[0-9]+}/advances", auth.Protect(fieldStaff, complaintHandler.AddAdvance)).Methods("POST")
	complaints.Handle("/{id:[0-9]+}/advances",
		auth.Protect(middleware.Roles(models.RoleInspector, models.RoleDirector, models.RoleAdministrator), complaintHandler.ListAdvances)).Methods("GET")
	complaints.Handle("/{id:[0-9]+}/adjuntos/{attachment_id:[0-9]+}", auth.Protect(fieldStaff, complaintHandler.DeleteAttachment)).Methods("DELETE")

	// Public form; a citizen token is optional.
	public := api.PathPrefix("/public/denuncias").Subrouter()
	public.Handle("/create", auth.OptionalAuth(http.HandlerFunc(publicHandler.CreateComplaint))).Methods("POST")
	public.HandleFunc("/status/{id}", complaintHandler.GetPublicStatus).Methods("GET")

	// Staff accounts
	staff := api.PathPrefix("/usuarios").Subrouter()
	staff.HandleFunc("/login", staffHandler.Login).Methods("POST")
	staff.Handle("/register", auth.Protect(adminOrDir, staffHandler.RegisterStaff)).Methods("POST")
	staff.Handle("", auth.Protect(adminOrDir, staffHandler.ListStaff)).Methods("GET")
	staff.Handle("/{id:[0-9]+}", auth.Protect(adminOrDir, staffHandler.GetStaff)).Methods("GET")
	staff.Handle("/{id:[0-9]+}", auth.Protect(adminOrDir, staffHandler.UpdateStaff)).Methods("PUT")
	staff.Handle("/{id:[0-9]+}", auth.Protect(adminOrDir, staffHandler.DeleteStaff)).Methods("DELETE")

	// Citizen accounts
	citizens := api.PathPrefix("/contribuyentes").Subrouter()
	citizens.HandleFunc("/register", citizenHandler.Register).Methods("POST")
	citizens.HandleFunc("/login", citizenHandler.Login).Methods("POST")
	citizens.Handle("/me", auth.Protect(middleware.CitizenOnly, citizenHandler.Me)).Methods("GET")
	citizens.Handle("/me", auth.Protect(middleware.CitizenOnly, citizenHandler.UpdateMe)).Methods("PUT")
	citizens.Handle("/me", auth.Protect(middleware.CitizenOnly, citizenHandler.DeleteMe)).Methods("DELETE")
	citizens.Handle("/me/denuncias", auth.Protect(middleware.CitizenOnly, publicHandler.CreateCitizenComplaint)).Methods("POST")
	citizens.Handle("/{id:[0-9]+}/denuncias", auth.Protect(anyAuthed, citizenHandler.Complaints)).Methods("GET")
	citizens.Handle("", auth.Protect(admin, citizenHandler.ListCitizens)).Methods("GET")
	citizens.Handle("/{id:[0-9]+}", auth.Protect(admin, citizenHandler.GetCitizen)).Methods("GET")
	citizens.Handle("/{id:[0-9]+}", auth.Protect(admin, citizenHandler.UpdateCitizen)).Methods("PUT")
	citizens.Handle("/{id:[0-9]+}", auth.Protect(admin, citizenHandler.DeleteCitizen)).Methods("DELETE")

	// Reporters (administrator view)
	reporters := api.PathPrefix("/admin/denunciantes").Subrouter()
	reporters.Handle("", auth.Protect(admin, adminHandler.GetReporters)).Methods("GET")
	reporters.Handle("/{id:[0-9]+}", auth.Protect(admin, adminHandler.GetReporter)).Methods("GET")
	reporters.Handle("/{id:[0-9]+}", auth.Protect(admin, adminHandler.UpdateReporter)).Methods("PUT")

	// Attachments
	attachments := api.PathPrefix("/adjuntos").Subrouter()
	attachments.Handle("/upload", auth.Protect(anyAuthed, attachmentHandler.Upload)).Methods("POST")
	attachments.Handle("/download/{id:[0-9]+}", auth.Protect(anyAuthed, attachmentHandler.Download)).Methods("GET")
	attachments.Handle("/{id:[0-9]+}", auth.Protect(admin, attachmentHandler.Delete)).Methods("DELETE")

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler()).Methods("GET")
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.Ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.Ping(ctx); err != nil {
				log.Warn("health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	return router
}
