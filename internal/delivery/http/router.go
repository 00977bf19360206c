package http

import (
	"net/http"
	"time"

	"github.com/deringirish/PHMS/internal/delivery/http/handler"
	"github.com/deringirish/PHMS/internal/delivery/http/middleware"

	"github.com/go-chi/httprate"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const defaultLoginRateLimit = 10

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	Admin        *handler.AdminHandler
	Patient      *handler.PatientHandler
	HealthRecord *handler.HealthRecordHandler
	ReportUpload *handler.ReportUploadHandler
	Visit        *handler.VisitHandler
	Prescription *handler.PrescriptionHandler
	Appointment  *handler.AppointmentHandler
	Analytics    *handler.AnalyticsHandler
	Export       *handler.ExportHandler
	AuditLog     *handler.AuditLogHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	log            *logrus.Logger
	loginRateLimit int
}

func NewRouter(
	routes Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	log *logrus.Logger,
	loginRateLimit int,
) *Router {
	if loginRateLimit <= 0 {
		loginRateLimit = defaultLoginRateLimit
	}
	return &Router{
		router:         mux.NewRouter(),
		handlers:       routes,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		log:            log,
		loginRateLimit: loginRateLimit,
	}
}

// Setup mounts every route and returns the handler chain: recovery, access
// log, CORS, then the router.
func (r *Router) Setup() http.Handler {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	loginLimiter := httprate.LimitByIP(r.loginRateLimit, time.Minute)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Handle("/login", loginLimiter(http.HandlerFunc(h.Auth.Login))).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Everything below requires a valid access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	// Admin accounts
	protected.HandleFunc("/admins", h.Admin.ListAdmins).Methods(http.MethodGet)
	protected.HandleFunc("/admins", h.Admin.CreateAdmin).Methods(http.MethodPost)
	protected.HandleFunc("/admins/{id}", h.Admin.DeleteAdmin).Methods(http.MethodDelete)

	// Patients
	protected.HandleFunc("/patients", h.Patient.ListPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients", h.Patient.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}", h.Patient.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", h.Patient.UpdatePatient).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", h.Patient.DeletePatient).Methods(http.MethodDelete)

	// Health records and charts
	protected.HandleFunc("/patients/{id}/records", h.HealthRecord.ListRecords).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/records", h.HealthRecord.CreateRecord).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}/chart-data", h.HealthRecord.GetChartData).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/charts/{group}", h.HealthRecord.GetChartHTML).Methods(http.MethodGet)
	protected.HandleFunc("/records/{recordId}", h.HealthRecord.GetRecord).Methods(http.MethodGet)
	protected.HandleFunc("/records/{recordId}", h.HealthRecord.DeleteRecord).Methods(http.MethodDelete)

	// Lab report extraction
	protected.HandleFunc("/patients/{id}/reports", h.ReportUpload.UploadReport).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}/reports/{uploadId}", h.ReportUpload.GetPendingUpload).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/reports/{uploadId}/confirm", h.ReportUpload.ConfirmUpload).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}/reports/{uploadId}", h.ReportUpload.DiscardUpload).Methods(http.MethodDelete)

	// Visits
	protected.HandleFunc("/patients/{id}/visits", h.Visit.ListPatientVisits).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/visits", h.Visit.CreateVisit).Methods(http.MethodPost)
	protected.HandleFunc("/visits/{id}", h.Visit.GetVisit).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{id}", h.Visit.UpdateVisit).Methods(http.MethodPut)
	protected.HandleFunc("/visits/{id}/records", h.Visit.LinkHealthRecord).Methods(http.MethodPost)

	// Prescriptions
	protected.HandleFunc("/patients/{id}/prescriptions", h.Prescription.ListPatientPrescriptions).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/prescriptions", h.Prescription.CreatePrescription).Methods(http.MethodPost)
	protected.HandleFunc("/prescriptions/{id}", h.Prescription.GetPrescription).Methods(http.MethodGet)
	protected.HandleFunc("/medications/search", h.Prescription.SearchMedications).Methods(http.MethodGet)

	// Appointments (static paths before {id})
	protected.HandleFunc("/appointments", h.Appointment.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", h.Appointment.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/calendar", h.Appointment.Calendar).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/check-conflict", h.Appointment.CheckConflict).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", h.Appointment.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/reschedule", h.Appointment.Reschedule).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}/cancel", h.Appointment.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/complete", h.Appointment.Complete).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/no-show", h.Appointment.MarkNoShow).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}/appointments", h.Appointment.ListPatientAppointments).Methods(http.MethodGet)

	// Analytics
	analytics := protected.PathPrefix("/analytics").Subrouter()
	analytics.HandleFunc("/overview", h.Analytics.Overview).Methods(http.MethodGet)
	analytics.HandleFunc("/demographics", h.Analytics.Demographics).Methods(http.MethodGet)
	analytics.HandleFunc("/appointments", h.Analytics.AppointmentMetrics).Methods(http.MethodGet)
	analytics.HandleFunc("/visits", h.Analytics.VisitStatistics).Methods(http.MethodGet)
	analytics.HandleFunc("/prescriptions", h.Analytics.PrescriptionAnalytics).Methods(http.MethodGet)
	analytics.HandleFunc("/health-trends", h.Analytics.HealthTrends).Methods(http.MethodGet)
	analytics.HandleFunc("/critical-alerts", h.Analytics.CriticalAlerts).Methods(http.MethodGet)

	// PDF exports
	protected.HandleFunc("/patients/{id}/export/health-summary", h.Export.HealthSummaryPDF).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/{id}/pdf", h.Export.PrescriptionPDF).Methods(http.MethodGet)
	protected.HandleFunc("/visits/{id}/pdf", h.Export.VisitSummaryPDF).Methods(http.MethodGet)

	// Audit log
	protected.HandleFunc("/audit-logs", h.AuditLog.ListAuditLogs).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	var chain http.Handler = r.corsMiddleware.Handle(r.router)
	chain = handlers.CombinedLoggingHandler(r.log.Writer(), chain)
	chain = handlers.RecoveryHandler(
		handlers.RecoveryLogger(r.log),
		handlers.PrintRecoveryStack(true),
	)(chain)
	return chain
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
