package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Идентификация покупателя выполняется шлюзом перед сервисом.
const (
	HeaderSessionID  = "X-Session-ID"
	HeaderCustomerID = "X-Customer-ID"
	HeaderAdminToken = "X-Admin-Token"
)

func sessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(HeaderSessionID))
}

func customerID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(r.Header.Get(HeaderCustomerID)))
	if err != nil {
		return uuid.Nil, e.ErrUnauthorized
	}

	return id, nil
}

// requestLogger пишет одну строку на запрос.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Infof("%s %s %d %s request_id=%s",
				r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}

// adminOnly пропускает запросы с правильным X-Admin-Token.
func adminOnly(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderAdminToken)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				WriteError(w, e.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
