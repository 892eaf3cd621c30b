package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ventas/backend/internal/domain/shared"
)

type fakeIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key], s.err
}

func (s *fakeIdempotencyStore) Close() error { return nil }

func newIdempotencyRouter(store shared.IdempotencyStore, enabled bool) (*gin.Engine, *int) {
	calls := 0
	router := gin.New()
	router.Use(RequestID())
	router.Use(Idempotency(store, shared.IdempotencyConfig{Enabled: enabled, TTL: time.Hour}, zap.NewNop()))
	router.POST("/api/v1/sales/:id/payments", func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})
	return router, &calls
}

func postPayment(router *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/abc/payments", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_FirstRequestPasses(t *testing.T) {
	router, calls := newIdempotencyRouter(newFakeIdempotencyStore(), true)

	w := postPayment(router, "pay-key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_DuplicateRejected(t *testing.T) {
	router, calls := newIdempotencyRouter(newFakeIdempotencyStore(), true)

	first := postPayment(router, "pay-key-1")
	second := postPayment(router, "pay-key-1")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "DUPLICATE_REQUEST")
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_DistinctKeysPass(t *testing.T) {
	router, calls := newIdempotencyRouter(newFakeIdempotencyStore(), true)

	postPayment(router, "pay-key-1")
	w := postPayment(router, "pay-key-2")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, *calls)
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	router, calls := newIdempotencyRouter(newFakeIdempotencyStore(), true)

	first := postPayment(router, "")
	second := postPayment(router, "")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, 2, *calls)
}

func TestIdempotency_Disabled(t *testing.T) {
	router, calls := newIdempotencyRouter(newFakeIdempotencyStore(), false)

	postPayment(router, "pay-key-1")
	w := postPayment(router, "pay-key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, *calls)
}

func TestIdempotency_StoreErrorFailsOpen(t *testing.T) {
	store := newFakeIdempotencyStore()
	store.err = errors.New("redis down")
	router, calls := newIdempotencyRouter(store, true)

	w := postPayment(router, "pay-key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
}
