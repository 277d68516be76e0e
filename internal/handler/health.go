package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"
)

// Health reports liveness. It pings the database so a wedged connection
// pool flips the check before requests start failing.
func Health(database *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := database.PingContext(r.Context())
		if err != nil {
			respondError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
