// internal/api/server.go
package api

import (
	"context"
	"net/http"
	"time"

	"credit-risk-service/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server owns the HTTP listener and route table.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func NewServer(addr string, handler *Handler, log logger.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", handler.Health)
	mux.HandleFunc("GET /api/model-info", handler.ModelInfo)
	mux.HandleFunc("POST /api/predict", handler.PredictCompany)
	mux.HandleFunc("POST /api/predict/individual", handler.PredictIndividual)
	mux.HandleFunc("GET /api/assessments/company", handler.CompanyAssessments)
	mux.HandleFunc("GET /api/assessments/company/latest", handler.LatestCompanyAssessment)
	mux.HandleFunc("GET /api/assessments/company/search", handler.SearchCompanyAssessments)
	mux.HandleFunc("GET /api/assessments/individual", handler.IndividualAssessments)
	mux.Handle("GET /metrics", promhttp.Handler())

	wrapped := requestLogging(log, trackInFlight(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           wrapped,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		logger: log.WithFields(map[string]interface{}{"component": "http-server"}),
	}
}

// Start blocks serving requests until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
