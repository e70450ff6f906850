// Package httpapi exposes the collector's endpoint tables over a loopback
// JSON HTTP server, the query surface the terminal dashboard and any other
// client polls.
package httpapi

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/pawurb/channels-console-go/collector"
)

type jsonError struct {
	Error string `json:"error"`
}

// Server is the loopback query surface backed by a Collector.
type Server struct {
	collector *collector.Collector
	log       *log.Entry
	router    *httprouter.Router
}

// New builds a Server wired to the given collector.
func New(c *collector.Collector) *Server {
	s := &Server{
		collector: c,
		log:       log.WithField("component", "httpapi"),
		router:    httprouter.New(),
	}
	s.router.GET("/channels", s.handleChannels)
	s.router.GET("/streams", s.handleStreams)
	s.router.GET("/channels/:id/logs", s.handleChannelLogs)
	s.router.GET("/streams/:id/logs", s.handleStreamLogs)
	return s
}

// ListenAndServe binds addr and serves forever. Bind failure is fatal: the
// server is a required part of the console, so there is nothing useful to
// continue running without it.
func (s *Server) ListenAndServe(addr string) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.WithField("component", "httpapi").Fatalf(
			"failed to bind %s (check CHANNELS_CONSOLE_METRICS_PORT): %s", addr, err)
	}
	s.log.Infof("serving channel stats on %s", ln.Addr())
	if err := http.Serve(ln, s.router); err != nil {
		s.log.WithError(err).Error("http server stopped")
	}
}

// ServeHTTP lets Server be used directly with httptest.NewServer and any
// other net/http plumbing that expects an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, s.collector.ChannelsJSON())
}

func (s *Server) handleStreams(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, s.collector.StreamsJSON())
}

func (s *Server) handleChannelLogs(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, err := strconv.ParseUint(p.ByName("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid channel id")
		return
	}
	logs, ok := s.collector.ChannelLogsFor(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "channel not found")
		return
	}
	s.writeJSON(w, logs)
}

func (s *Server) handleStreamLogs(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, err := strconv.ParseUint(p.ByName("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid stream id")
		return
	}
	logs, ok := s.collector.StreamLogsFor(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "stream not found")
		return
	}
	s.writeJSON(w, logs)
}

func (s *Server) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: msg})
}
