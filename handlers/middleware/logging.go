// Package middleware holds HTTP middleware shared by all API routes.
package middleware

import (
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	log "github.com/sirupsen/logrus"
)

// RequestLogger emits one log line per handled request with the response
// status, the bytes written and the handling time. Server errors are logged
// at warning level so they stand out at the default log level.
func RequestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(h, rw, r)

		entry := log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"status":   m.Code,
			"bytes":    m.Written,
			"duration": m.Duration.Round(time.Microsecond).String(),
		})

		if m.Code >= http.StatusInternalServerError {
			entry.Warn("Request failed")
			return
		}

		entry.Info("Request handled")
	})
}
