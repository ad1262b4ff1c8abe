package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/readygate/cmd/readygate/handlers"
	"github.com/hairizuanbinnoorazman/readygate/gate"
	"github.com/hairizuanbinnoorazman/readygate/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newStatusRouter builds the routes served while the gate is running.
func newStatusRouter(tracker *gate.Tracker, gatherer prometheus.Gatherer) *mux.Router {
	statusHandler := &handlers.StatusHandler{Tracker: tracker}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", handlers.HealthHandler).Methods("GET")
	router.HandleFunc("/readyz", statusHandler.Ready).Methods("GET")
	router.HandleFunc("/status", statusHandler.Status).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	router.NotFoundHandler = http.HandlerFunc(handlers.NotFoundHandler)

	return router
}

// statusServer is the optional HTTP server reporting gate progress.
type statusServer struct {
	server *http.Server
	addr   string
	log    logger.Logger
	done   chan struct{}
}

// startStatusServer binds addr and serves handler in the background.
func startStatusServer(ctx context.Context, addr string, handler http.Handler, log logger.Logger) (*statusServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &statusServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr: ln.Addr().String(),
		log:  log,
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		log.Info(ctx, "status server listening", map[string]interface{}{
			"address": s.addr,
		})
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "status server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	return s, nil
}

// Shutdown stops the server gracefully, waiting at most timeout.
func (s *statusServer) Shutdown(ctx context.Context, timeout time.Duration) {
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.log.Warn(ctx, "status server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}
	<-s.done
	s.log.Debug(ctx, "status server stopped", nil)
}
