package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeatLive/pkg/metrics"
)

// responseWriter запоминает статус ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware снимает количество и длительность HTTP запросов
// route берется из шаблона mux, чтобы не плодить метки по каждому значению {week}/{date}
func MetricsMiddleware(m *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			if m == nil {
				return
			}

			route := routeTemplate(r)
			m.HTTPRequestsTotal.
				WithLabelValues(serviceName, r.Method, route, strconv.Itoa(wrapped.statusCode)).
				Inc()
			m.HTTPRequestDuration.
				WithLabelValues(serviceName, r.Method, route).
				Observe(time.Since(start).Seconds())
		})
	}
}

func routeTemplate(r *http.Request) string {
	if current := mux.CurrentRoute(r); current != nil {
		if tpl, err := current.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unknown"
}
