// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/relaygate/relaygate/internal/auth"
	"github.com/relaygate/relaygate/internal/logging"
	"github.com/relaygate/relaygate/internal/metrics"
	"github.com/relaygate/relaygate/internal/rules"
)

// Handlers implements the control API's rule and service endpoints. It
// holds the shared rule store, the immutable per-service update channel
// map, and the set of known service names (for 404ing unknown ones).
type Handlers struct {
	store    *rules.Store
	channels rules.Channels
	services map[string]struct{}
}

// NewHandlers builds Handlers over store, wiring mutations through
// channels. serviceNames fixes the set of services POST /rules may target.
func NewHandlers(store *rules.Store, channels rules.Channels, serviceNames []string) *Handlers {
	known := make(map[string]struct{}, len(serviceNames))
	for _, name := range serviceNames {
		known[name] = struct{}{}
	}
	return &Handlers{store: store, channels: channels, services: known}
}

// ListRules handles GET /rules.
func (h *Handlers) ListRules(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.List())
}

// ListRulesByService handles GET /rules/filter/{service_name}.
func (h *Handlers) ListRulesByService(w http.ResponseWriter, r *http.Request) {
	serviceName := chi.URLParam(r, "service_name")
	WriteJSON(w, http.StatusOK, h.store.ListByService(serviceName))
}

// ListServices handles GET /services, returning the configured service
// names in sorted order.
func (h *Handlers) ListServices(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	sort.Strings(names)
	WriteJSON(w, http.StatusOK, names)
}

// CreateRule handles POST /rules: decode the DTO, reject a bad pattern or
// an unknown service, persist the row, then forward an Add update to the
// target service's worker. A full update channel is surfaced as a 500
// rather than blocking the handler indefinitely.
func (h *Handlers) CreateRule(w http.ResponseWriter, r *http.Request) {
	var dto rules.RuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		WriteBadRequest(w, "malformed request body")
		return
	}

	pattern, err := dto.Decode()
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	if _, ok := h.services[dto.ServiceName]; !ok {
		WriteNotFound(w, ErrUnknownService.Error())
		return
	}

	rule := h.store.Insert(dto.ServiceName, pattern)

	select {
	case h.channels[dto.ServiceName] <- rules.NewAdd(rule.ID, pattern):
	default:
		h.store.Delete(rule.ID)
		metrics.RecordRuleUpdateChannelFull(dto.ServiceName)
		WriteInternalError(w, ErrUpdateChannelFull)
		return
	}

	metrics.RecordRuleUpdate(dto.ServiceName, "add")
	metrics.SetRulesActive(dto.ServiceName, len(h.store.ListByService(dto.ServiceName)))
	WriteJSON(w, http.StatusCreated, rule)
}

// DeleteRule handles DELETE /rules/{id}.
func (h *Handlers) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := ruleIDFromPath(r)
	if err != nil {
		WriteBadRequest(w, "id must be an integer")
		return
	}

	serviceName, ok := h.store.Delete(id)
	if !ok {
		WriteNotFound(w, ErrRuleNotFound.Error())
		return
	}

	select {
	case h.channels[serviceName] <- rules.NewRemove(id):
	default:
		metrics.RecordRuleUpdateChannelFull(serviceName)
		logging.Warn().Str("service", serviceName).Int64("rule_id", id).
			Msg("update channel full, worker snapshot will lag behind the store")
	}

	metrics.RecordRuleUpdate(serviceName, "remove")
	metrics.SetRulesActive(serviceName, len(h.store.ListByService(serviceName)))
	w.WriteHeader(http.StatusOK)
}

// Front handles GET /front, serving the login page or the app shell
// depending on whether the request carries a valid authToken.
func (h *Handlers) Front(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if auth.Identity(r.Context()) != "" {
		w.Write(appHTML)
		return
	}
	w.Write(loginHTML)
}
