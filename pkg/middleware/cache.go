package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cachingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (cw *cachingWriter) WriteHeader(status int) {
	cw.status = status
	cw.ResponseWriter.WriteHeader(status)
}

func (cw *cachingWriter) Write(b []byte) (int, error) {
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

// CacheResponse serves GET responses from redis keyed by request path and
// query. Cache errors only get logged, the request always goes through. A
// nil client or zero TTL disables caching entirely.
func CacheResponse(client *redis.Client, ttl time.Duration, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if client == nil || ttl <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			// Reports are scoped per winery, so the key carries the caller's
			// winery when there is one.
			key := "cache:" + r.URL.Path + "?" + r.URL.RawQuery
			if wineryID, ok := utils.GetWineryIDFromContext(r.Context()); ok {
				key += ":" + wineryID.String()
			}
			cached, err := client.Get(r.Context(), key).Bytes()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}
			if err != redis.Nil {
				log.Warn("Cache lookup failed", zap.Error(err), zap.String("key", key))
			}

			cw := &cachingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status == http.StatusOK {
				if err := client.Set(r.Context(), key, cw.body.Bytes(), ttl).Err(); err != nil {
					log.Warn("Cache store failed", zap.Error(err), zap.String("key", key))
				}
			}
		})
	}
}
