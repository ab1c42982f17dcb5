package stationregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/sgraildata/station-registry/station"
)

// Server exposes a built registry over HTTP for downstream consumers.
type Server struct {
	httpServer *http.Server
	stations   []station.Consolidated
	byCode     map[string]int
}

// NewServer indexes the registry by station code for lookups.
func NewServer(port int, stations []station.Consolidated) *Server {
	s := &Server{
		stations: stations,
		byCode:   make(map[string]int),
	}
	for i, st := range stations {
		for _, code := range st.MRTCodes {
			s.byCode[strings.ToUpper(code)] = i
		}
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Routes builds the HTTP routing table.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/stations", s.handleStations).Methods(http.MethodGet)
	r.HandleFunc("/api/stations/{code}", s.handleStationByCode).Methods(http.MethodGet)
	return r
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("registry server listening on %s", s.httpServer.Addr)
}

// WaitForShutdown blocks until SIGINT/SIGTERM, then drains the server.
func (s *Server) WaitForShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "stations": len(s.stations)})
}

func (s *Server) handleStations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.stations)
}

func (s *Server) handleStationByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])
	i, ok := s.byCode[code]
	if !ok {
		http.Error(w, fmt.Sprintf("no station with code %s", code), http.StatusNotFound)
		return
	}
	writeJSON(w, s.stations[i])
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
