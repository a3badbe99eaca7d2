package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

type BuildingsHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	addr            string
	shutdownTimeout time.Duration
	// onShutdown runs after the listener has stopped, e.g. to drain
	// background stash writes.
	onShutdown func()
}

func NewBuildingsHttpServer(router *Router, muxRouter *mux.Router, addr string, shutdownTimeout time.Duration, onShutdown func()) *BuildingsHttpServer {
	return &BuildingsHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		onShutdown:      onShutdown,
	}
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *BuildingsHttpServer) Start() {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[Server] Starting server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] ListenAndServe(): %v", err)
		}
	}()

	<-stop
	log.Println("[Server] Shutting down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Server] Server forced to shutdown: %v", err)
	}
	if s.onShutdown != nil {
		s.onShutdown()
	}

	log.Println("[Server] Server exiting")
}
