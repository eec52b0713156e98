// Package responses defines the JSON bodies served by the preview server.
package responses

import (
	"time"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/nav"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/redirect"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	Snapshot  string    `json:"snapshot"`
	Sidebars  int       `json:"sidebars"`
	Docs      int       `json:"docs"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// NavResponse is a rendered sidebar, with the neighbours of one doc when
// the request names it.
type NavResponse struct {
	*nav.Tree
	Previous *nav.Node `json:"previous,omitempty"`
	Next     *nav.Node `json:"next,omitempty"`
}

// RedirectsResponse lists the active redirect table.
type RedirectsResponse struct {
	BaseURL   string           `json:"baseUrl"`
	Redirects []redirect.Entry `json:"redirects"`
}
