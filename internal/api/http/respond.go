package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/mindengage-marking/internal/apperr"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the only place where failures become status codes. Missing
// subjects or essays are 404s, an expired request deadline is a 504, and
// everything else is a 500. Details stay in the server log.
func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.KindNotFound {
		writeJSON(w, http.StatusNotFound, errorBody{Error: ae.Message})
		return
	}
	entry := log.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"kind":       string(apperr.KindOf(err)),
		"path":       r.URL.Path,
	}).WithError(err)
	if errors.Is(err, context.DeadlineExceeded) {
		entry.Warn("request timed out")
		writeJSON(w, http.StatusGatewayTimeout, errorBody{Error: "request timed out"})
		return
	}
	entry.Error("request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}
