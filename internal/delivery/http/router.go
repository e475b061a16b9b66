package http

import (
	"net/http"

	"doctor-booking-api/internal/delivery/http/handler"
	"doctor-booking-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	doctorHandler         *handler.DoctorHandler
	specialtyHandler      *handler.SpecialtyHandler
	appointmentHandler    *handler.AppointmentHandler
	timeSlotHandler       *handler.TimeSlotHandler
	patientProfileHandler *handler.PatientProfileHandler
	auditLogHandler       *handler.AuditLogHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	specialtyHandler *handler.SpecialtyHandler,
	appointmentHandler *handler.AppointmentHandler,
	timeSlotHandler *handler.TimeSlotHandler,
	patientProfileHandler *handler.PatientProfileHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		doctorHandler:         doctorHandler,
		specialtyHandler:      specialtyHandler,
		appointmentHandler:    appointmentHandler,
		timeSlotHandler:       timeSlotHandler,
		patientProfileHandler: patientProfileHandler,
		auditLogHandler:       auditLogHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public directory routes
	api.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/availabilities", r.doctorHandler.ListAvailabilities).Methods(http.MethodGet)
	api.HandleFunc("/specialties", r.specialtyHandler.List).Methods(http.MethodGet)

	// Appointment routes. Auth is optional here: anonymous listing is a valid
	// empty result, but a presented token must still be valid.
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.AuthenticateOptional)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Time slot routes (doctors manage their own slots)
	timeSlots := api.PathPrefix("/time-slots").Subrouter()
	timeSlots.Use(r.authMiddleware.Authenticate)
	timeSlots.HandleFunc("", r.timeSlotHandler.List).Methods(http.MethodGet)
	timeSlots.HandleFunc("", r.timeSlotHandler.Create).Methods(http.MethodPost)
	timeSlots.HandleFunc("/{id}", r.timeSlotHandler.GetByID).Methods(http.MethodGet)
	timeSlots.HandleFunc("/{id}", r.timeSlotHandler.Update).Methods(http.MethodPut)
	timeSlots.HandleFunc("/{id}", r.timeSlotHandler.Delete).Methods(http.MethodDelete)

	// Patient profile routes (users manage their own profile)
	profiles := api.PathPrefix("/patient-profiles").Subrouter()
	profiles.Use(r.authMiddleware.Authenticate)
	profiles.HandleFunc("", r.patientProfileHandler.List).Methods(http.MethodGet)
	profiles.HandleFunc("", r.patientProfileHandler.Create).Methods(http.MethodPost)
	profiles.HandleFunc("/{id}", r.patientProfileHandler.GetByID).Methods(http.MethodGet)
	profiles.HandleFunc("/{id}", r.patientProfileHandler.Update).Methods(http.MethodPut)

	// Availability routes (doctors manage their own schedule)
	availabilities := api.PathPrefix("/availabilities").Subrouter()
	availabilities.Use(r.authMiddleware.Authenticate)
	availabilities.HandleFunc("", r.doctorHandler.CreateAvailability).Methods(http.MethodPost)
	availabilities.HandleFunc("/{id}", r.doctorHandler.DeleteAvailability).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/specialties", r.specialtyHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
