// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/internal/utils"
	"github.com/MKhiriev/go-toggle-sync/internal/validators"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listEntities(w http.ResponseWriter, r *http.Request) {
	ids := h.toggles.Tracked()
	slices.Sort(ids)

	resp := models.EntitiesResponse{Entities: make([]models.ToggleState, 0, len(ids))}
	for _, id := range ids {
		if state, ok := h.toggles.Observe(id); ok {
			resp.Entities = append(resp.Entities, state)
		}
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) getEntity(w http.ResponseWriter, r *http.Request) {
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	state, ok := h.toggles.Observe(entityID)
	if !ok {
		h.writeError(w, ErrEntityNotTracked)
		return
	}

	_, _ = utils.WriteJSON(w, state, http.StatusOK)
}

// initEntity seeds the entity with the baseline the view rendered. Seeding an
// already tracked entity leaves its state untouched.
func (h *Handler) initEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	var req models.InitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.initEntity").Msg("error decoding init request")
		h.writeError(w, ErrInvalidRequestBody)
		return
	}
	if err := h.validator.Validate(r.Context(), req); err != nil {
		h.writeError(w, err)
		return
	}

	h.toggles.Initialize(entityID, req.IsLiked, req.Count)

	state, _ := h.toggles.Observe(entityID)
	_, _ = utils.WriteJSON(w, state, http.StatusOK)
}

// toggleEntity applies the optimistic flip and answers with the resulting
// state. The submission settles in the background.
func (h *Handler) toggleEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}
	actorID, _ := utils.GetActorIDFromContext(r.Context())

	if err := h.toggles.Toggle(r.Context(), entityID, actorID); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.toggleEntity").Str("entity_id", entityID).Msg("toggle rejected")
		h.writeError(w, err)
		return
	}

	state, _ := h.toggles.Observe(entityID)
	_, _ = utils.WriteJSON(w, state, http.StatusAccepted)
}

func (h *Handler) evictEntity(w http.ResponseWriter, r *http.Request) {
	entityID, ok := h.entityID(w, r)
	if !ok {
		return
	}

	h.toggles.Evict(entityID)
	w.WriteHeader(http.StatusNoContent)
}

// flush submits every batched intent now instead of waiting for the batch
// delay.
func (h *Handler) flush(w http.ResponseWriter, r *http.Request) {
	h.toggles.Flush()
	w.WriteHeader(http.StatusNoContent)
}

// entityID reads and validates the entityID path parameter. On failure the
// error response is already written.
func (h *Handler) entityID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "entityID")
	if err := h.validator.Validate(r.Context(), validators.EntityID(id)); err != nil {
		h.writeError(w, err)
		return "", false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, msg := responseFromError(err)
	utils.WriteError(w, msg, w.Header().Get(traceIDHeader), status)
}
