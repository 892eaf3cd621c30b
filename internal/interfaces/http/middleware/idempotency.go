package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the header clients send to deduplicate retries of
// mutating requests such as payment submissions.
const IdempotencyKeyHeader = "Idempotency-Key"

// Idempotency claims the Idempotency-Key header before the handler runs. A
// key seen within the TTL aborts with 409 DUPLICATE_REQUEST. Requests without
// the header pass through untouched.
//
// The key is claimed up front, not after the handler, so two concurrent
// retries cannot both execute. A request that fails after claiming its key
// must retry with a fresh key.
func Idempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || store == nil {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		claimed, err := store.MarkProcessed(c.Request.Context(), key, cfg.TTL)
		if err != nil {
			// Fail open: a broken store must not block payments.
			if log != nil {
				log.Error("idempotency store unavailable",
					zap.String("key", key),
					zap.Error(err),
				)
			}
			c.Next()
			return
		}

		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponseWithRequestID(
					dto.ErrCodeDuplicate,
					"Request with this idempotency key was already processed",
					GetRequestID(c),
				))
			return
		}

		c.Next()
	}
}
