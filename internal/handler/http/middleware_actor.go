package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-toggle-sync/internal/utils"
)

const actorIDHeader = "X-Actor-ID"

// withActor stores the acting user in the request context under
// [utils.ActorIDCtxKey]. The X-Actor-ID header wins over the configured
// default actor. Requests without any actor pass through; the engine rejects
// their toggles as unauthenticated.
func (h *Handler) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := strings.TrimSpace(r.Header.Get(actorIDHeader))
		if actorID == "" {
			actorID = h.opts.DefaultActorID
		}
		if actorID != "" {
			r = r.WithContext(utils.WithActorID(r.Context(), actorID))
		}

		next.ServeHTTP(w, r)
	})
}
