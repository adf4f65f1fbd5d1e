// internal/server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"activities-service/internal/common/errors"
	"activities-service/internal/common/metrics"
	"activities-service/internal/notify"
)

// MessageResponse is the success body for signup/unregister.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.staticRedirect, http.StatusTemporaryRedirect)
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	reg, err := s.store.List(r.Context())
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	for name, act := range reg {
		metrics.RosterSize.WithLabelValues(name).Set(float64(len(act.Participants)))
	}
	s.sendJSON(w, http.StatusOK, reg)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	activity := r.PathValue("activity")
	email, err := participantEmail(r)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	if err := s.store.Signup(r.Context(), activity, email); err != nil {
		metrics.SignupsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	s.updateRosterGauge(r, activity)
	s.logger.Info("participant signed up", map[string]interface{}{
		"activity": activity,
		"email":    email,
	})
	notify.Fire(s.notifier, s.logger, notify.NewEvent(notify.KindSignup, activity, email))

	s.sendJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, activity),
	})
}

func (s *Server) handleUnregister(w http.ResponseWriter, r *http.Request) {
	activity := r.PathValue("activity")
	email, err := participantEmail(r)
	if err != nil {
		metrics.UnregistrationsTotal.WithLabelValues("invalid").Inc()
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	if err := s.store.Unregister(r.Context(), activity, email); err != nil {
		metrics.UnregistrationsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	metrics.UnregistrationsTotal.WithLabelValues("ok").Inc()
	s.updateRosterGauge(r, activity)
	s.logger.Info("participant removed", map[string]interface{}{
		"activity": activity,
		"email":    email,
	})
	notify.Fire(s.notifier, s.logger, notify.NewEvent(notify.KindUnregister, activity, email))

	s.sendJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Removed %s from %s", email, activity),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// participantEmail pulls the participant identifier off the query string.
// The shape check is intentionally loose: exact-match semantics elsewhere
// mean we only reject values that cannot possibly be an address.
func participantEmail(r *http.Request) (string, error) {
	email := r.URL.Query().Get("email")
	if email == "" || !strings.Contains(email, "@") {
		return "", errors.NewInvalidEmailError(email)
	}
	return email, nil
}

// updateRosterGauge refreshes the per-activity roster gauge after a
// successful mutation. The re-read is best effort; the gauge also catches
// up on the next listing.
func (s *Server) updateRosterGauge(r *http.Request, activity string) {
	act, err := s.store.Get(r.Context(), activity)
	if err != nil {
		return
	}
	metrics.RosterSize.WithLabelValues(activity).Set(float64(len(act.Participants)))
}

func outcomeLabel(err error) string {
	return strings.ToLower(string(errors.AsStandard(err).Code))
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response", nil)
	}
}
