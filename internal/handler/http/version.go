package http

import (
	"net/http"

	"github.com/MKhiriev/go-toggle-sync/internal/utils"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, h.opts.BuildInfo, http.StatusOK)
}
