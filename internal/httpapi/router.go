package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"lang-portal/internal/studysession"
)

func NewRouter(service *studysession.Service, log *zap.Logger) http.Handler {
	api := NewAPI(service, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", api.HandleHealth)
	mux.HandleFunc("/api/study-sessions", api.HandleSessions)
	mux.HandleFunc("/api/study-sessions/reset", api.HandleReset)
	mux.HandleFunc("/api/study-sessions/{id}", api.HandleSession)
	mux.HandleFunc("/api/study-sessions/{id}/reviews", api.HandleReviews)
	mux.HandleFunc("/api/words/{id}", api.HandleWord)

	return withRequestID(logRequests(api.log, withCORS(mux)))
}
