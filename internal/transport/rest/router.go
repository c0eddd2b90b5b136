package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"clearcomply/internal/service"
	"clearcomply/internal/transport/rest/handler"
	"clearcomply/internal/transport/rest/middleware"
	"clearcomply/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	FrameworkService  *service.FrameworkService
	ProfileService    *service.ProfileService
	AssessmentService *service.AssessmentService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	frameworkHandler := handler.NewFrameworkHandler(c.FrameworkService)
	profileHandler := handler.NewProfileHandler(c.ProfileService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/{assessmentId}/resume", assessmentHandler.Resume).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/assessments/{assessmentId}/host", wsHandler.HostWS).Methods("GET")
	v1.HandleFunc("/ws/assessments/{assessmentId}/subject", wsHandler.SubjectWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/frameworks", frameworkHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/frameworks", frameworkHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/frameworks/{frameworkId}", frameworkHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/frameworks/{frameworkId}", frameworkHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/frameworks/{frameworkId}/results", assessmentHandler.ResultsByFramework).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/profiles", profileHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/profiles", profileHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/profiles/{profileId}", profileHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/profiles/{profileId}", profileHandler.Update).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/profiles/{profileId}", profileHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/assessments", assessmentHandler.Start).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/assessments", assessmentHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/assessments/{assessmentId}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/assessments/{assessmentId}", assessmentHandler.Destroy).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/assessments/{assessmentId}/results", assessmentHandler.Results).Methods("GET", "OPTIONS")

	// Subject routes (require assessment-scoped auth; claims decide the
	// session, not the path)
	subjectRoutes := v1.NewRoute().Subrouter()
	subjectRoutes.Use(authMW.RequireSubject)

	subjectRoutes.HandleFunc("/assessments/{assessmentId}/question/current", assessmentHandler.CurrentQuestion).Methods("GET", "OPTIONS")
	subjectRoutes.HandleFunc("/assessments/{assessmentId}/answers", assessmentHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	subjectRoutes.HandleFunc("/assessments/{assessmentId}/next", assessmentHandler.NextQuestion).Methods("POST", "OPTIONS")
	subjectRoutes.HandleFunc("/assessments/{assessmentId}/progress", assessmentHandler.Progress).Methods("GET", "OPTIONS")
	subjectRoutes.HandleFunc("/assessments/{assessmentId}/save", assessmentHandler.Save).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
