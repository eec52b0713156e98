package handlers

import (
	"log/slog"
	"net/http"
	"time"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/server/responses"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/version"
)

// MonitoringHandlers serves the health endpoint.
type MonitoringHandlers struct {
	provider     SiteProvider
	start        time.Time
	errorAdapter *derrors.HTTPErrorAdapter
}

func NewMonitoringHandlers(provider SiteProvider) *MonitoringHandlers {
	return &MonitoringHandlers{
		provider:     provider,
		start:        time.Now(),
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleHealthCheck reports the served snapshot.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s := h.provider.Site()
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.start).Seconds(),
		Snapshot:  h.provider.Snapshot(),
		Sidebars:  s.Sidebars.Len(),
		LoadedAt:  h.provider.LoadedAt().UTC(),
	}
	if idx := s.Index(); idx != nil {
		health.Docs = idx.Len()
	}

	if err := writeJSON(w, r, http.StatusOK, health); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.WrapError(err, derrors.CategoryInternal, "failed to write health response").Build())
	}
}
