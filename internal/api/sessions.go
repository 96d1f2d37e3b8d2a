package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/4liaghaie/sait/internal/auth"
	"github.com/4liaghaie/sait/internal/logger"
	"github.com/4liaghaie/sait/internal/metrics"
)

// sessionAPIHandler issues and revokes admin bearer tokens.
type sessionAPIHandler struct {
	sessions auth.SessionStore
	password *auth.PasswordChecker
	ttl      time.Duration
	log      logger.Logger
}

func registerSessionRoutes(r chi.Router, deps Deps) {
	h := &sessionAPIHandler{
		sessions: deps.Sessions,
		password: deps.Password,
		ttl:      deps.SessionTTL,
		log:      deps.Logger,
	}
	r.Post("/login", h.Login)
}

// Login exchanges the admin password for a bearer token.
// POST /admin/login
func (h *sessionAPIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		req.Password = r.FormValue("password")
	}

	if err := h.password.Check(req.Password); err != nil {
		metrics.AdminLoginsTotal.WithLabelValues("failure").Inc()
		h.log.Warn("admin login rejected", logger.String("remote_ip", r.RemoteAddr))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, _, err := h.sessions.Create(r.Context(), h.ttl)
	if err != nil {
		writeInternal(w, r, h.log, "create session", err)
		return
	}
	metrics.AdminLoginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresIn: int64(h.ttl / time.Second)})
}

// Logout revokes the caller's token.
// POST /admin/logout
func (h *sessionAPIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.Revoke(r.Context(), auth.BearerToken(r))
	if err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
		writeInternal(w, r, h.log, "revoke session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
