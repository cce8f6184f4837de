package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/mindengage-marking/internal/apperr"
	"github.com/mind-engage/mindengage-marking/internal/essays"
)

// GET /api/subjects
func ListSubjectsHandler(store essays.Reader, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListSubjects(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /api/essays/subject/{subjectID}
func ListEssaysBySubjectHandler(store essays.Reader, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "subjectID")
		if !ok {
			writeError(w, r, log, apperr.NotFound("Subject not found"))
			return
		}
		out, err := store.ListEssaysForSubject(r.Context(), id)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /api/essays/{essayID}
func GetEssayHandler(store essays.Reader, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "essayID")
		if !ok {
			writeError(w, r, log, apperr.NotFound("Essay not found"))
			return
		}
		detail, err := store.AssembleEssayDetail(r.Context(), id)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

// idParam parses a numeric route parameter; ids beyond int64 cannot exist.
func idParam(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
