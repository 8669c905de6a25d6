package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gitscreen-engine/internal/store"
)

type RunsHandler struct {
	DB *sql.DB
}

func (h RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	runs, err := store.ListRuns(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, runs)
}

// GetByPath handles /runs/{id} and /runs/{id}/scores.
func (h RunsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/runs/")
	id, tail, _ := strings.Cut(rest, "/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing run id")
		return
	}

	run, err := store.GetRun(r.Context(), h.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such run")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	switch tail {
	case "":
		writeJSON(w, run)
	case "scores":
		if run.ScoresPath == "" {
			WriteError(w, r, http.StatusNotFound, "not_found", "run produced no scores file")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		http.ServeFile(w, r, run.ScoresPath)
	default:
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown run resource")
	}
}
