package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/rs/cors"
)

// HealthzServer answers liveness probes. Once a scan has been reported it
// also answers with the time and outcome of the most recent one.
type HealthzServer struct {
	log    log.Logger
	ctx    context.Context
	server *http.Server

	mu       sync.Mutex
	lastScan time.Time
	lastErr  error
}

func NewHealthzServer(logger log.Logger) *HealthzServer {
	return &HealthzServer{log: logger}
}

func (h *HealthzServer) Start(ctx context.Context, addr string) error {
	h.mu.Lock()
	h.server = &http.Server{
		Handler: h.Handler(),
		Addr:    addr,
	}
	h.ctx = ctx
	server := h.server
	h.mu.Unlock()
	return server.ListenAndServe()
}

// Handler returns the CORS-wrapped healthz handler
func (h *HealthzServer) Handler() http.Handler {
	hdlr := http.NewServeMux()
	hdlr.HandleFunc("/healthz", h.Handle)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	return c.Handler(hdlr)
}

func (h *HealthzServer) Shutdown() error {
	h.mu.Lock()
	server, ctx := h.server, h.ctx
	h.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// ReportScan records the outcome of a watch-mode scan
func (h *HealthzServer) ReportScan(at time.Time, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastScan = at
	h.lastErr = err
}

func (h *HealthzServer) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("Received health check request", "path", r.URL.Path)

	h.mu.Lock()
	lastScan, lastErr := h.lastScan, h.lastErr
	h.mu.Unlock()

	if lastScan.IsZero() {
		w.Write([]byte("OK")) //nolint:errcheck
		return
	}
	w.Header().Set("X-Last-Scan", lastScan.UTC().Format(time.RFC3339))
	if lastErr != nil {
		w.Write([]byte("OK - last scan failed: " + lastErr.Error())) //nolint:errcheck
		return
	}
	w.Write([]byte("OK")) //nolint:errcheck
}
