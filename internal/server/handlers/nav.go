package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/server/responses"
)

// NavHandlers serves rendered sidebars and the redirect table.
type NavHandlers struct {
	provider     SiteProvider
	errorAdapter *derrors.HTTPErrorAdapter
}

func NewNavHandlers(provider SiteProvider) *NavHandlers {
	return &NavHandlers{provider: provider, errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default())}
}

// HandleNav serves GET /_nav/{sidebar}.json. With ?doc=<id> the response
// also carries the previous and next docs around that doc.
func (h *NavHandlers) HandleNav(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	id, ok := strings.CutSuffix(file, ".json")
	if !ok || id == "" {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.NotFoundError(fmt.Sprintf("no navigation document %q", file)).
			WithContext("path", r.URL.Path).
			Build())
		return
	}

	tree, err := h.provider.Site().Nav(id)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	resp := responses.NavResponse{Tree: tree}
	if doc := r.URL.Query().Get("doc"); doc != "" {
		resp.Previous, resp.Next = tree.Pagination(doc)
	}
	if err := writeJSON(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.WrapError(err, derrors.CategoryInternal, "failed to write navigation").Build())
	}
}

// HandleRedirects serves GET /_redirects.json.
func (h *NavHandlers) HandleRedirects(w http.ResponseWriter, r *http.Request) {
	resp := responses.RedirectsResponse{
		BaseURL:   h.provider.Site().Config.BaseURL,
		Redirects: h.provider.Redirects().Entries(),
	}
	if err := writeJSON(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, derrors.WrapError(err, derrors.CategoryInternal, "failed to write redirects").Build())
	}
}
