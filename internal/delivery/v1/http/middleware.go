package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/quickbite/go-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID проставляет идентификатор запроса, если клиент его не прислал.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// AccessLog пишет строку на каждый обработанный запрос.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			log.Infof("%s %s %d %s request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start), r.Header.Get(requestIDHeader))
		})
	}
}
