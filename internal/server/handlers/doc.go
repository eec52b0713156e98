// Package handlers provides the HTTP handlers of the preview server:
// navigation JSON, redirect listing and health.
package handlers

import (
	"time"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/redirect"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/site"
)

// SiteProvider hands out the site currently being served. Implementations
// swap the returned values atomically on reload.
type SiteProvider interface {
	Site() *site.Site
	Redirects() *redirect.Table
	Snapshot() string
	LoadedAt() time.Time
}
