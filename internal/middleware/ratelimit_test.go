package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedApp(cfg RateLimitConfig) *fiber.App {
	app := fiber.New()
	app.Use(RateLimit(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func statuses(t *testing.T, app *fiber.App, n int) []int {
	t.Helper()
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		resp.Body.Close()
		out = append(out, resp.StatusCode)
	}
	return out
}

func TestRateLimit_Disabled(t *testing.T) {
	app := newLimitedApp(RateLimitConfig{Max: 0})
	assert.Equal(t, []int{200, 200, 200, 200}, statuses(t, app, 4))
}

func TestRateLimit_InMemory(t *testing.T) {
	app := newLimitedApp(RateLimitConfig{Max: 2, Window: time.Minute})
	assert.Equal(t, []int{200, 200, 429}, statuses(t, app, 3))
}

func TestRateLimit_RedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	storage, err := NewRedisStorage("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	app := newLimitedApp(RateLimitConfig{Max: 1, Window: time.Minute, Storage: storage})
	assert.Equal(t, []int{200, 429}, statuses(t, app, 2))
	assert.NotEmpty(t, mr.Keys())
}

func TestNewRedisStorage_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStorage("redis://" + addr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}
