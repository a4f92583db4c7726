package handlers

import (
	"net/http"

	"gorm.io/gorm"
)

// Ready reports whether the service can reach its database. Load balancers
// poll this before routing traffic.
func Ready(db *gorm.DB) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			http.Error(rw, "database unreachable", http.StatusServiceUnavailable)
			return
		}

		handleJsonResponse(rw, http.StatusOK, map[string]string{"status": "ready"})
	})
}

// Liveness reports the database connection pool statistics of the running
// process.
func Liveness(db *gorm.DB) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err != nil {
			handleError(rw, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, map[string]interface{}{"database": sqlDB.Stats()})
	})
}
