package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadCart_Defaults(t *testing.T) {
	t.Setenv("CART_STORE", "")
	t.Setenv("CART_SESSION_IDLE", "")
	t.Setenv("PORT", "")

	c := LoadCart()
	assert.Equal(t, StoreMemory, c.Store)
	assert.Equal(t, "8083", c.Port)
	assert.Equal(t, 30*time.Minute, c.SessionIdle)
}

func TestLoadCart_Overrides(t *testing.T) {
	t.Setenv("CART_STORE", "SQLite")
	t.Setenv("CART_SESSION_IDLE", "90s")
	t.Setenv("PORT", "9000")

	c := LoadCart()
	assert.Equal(t, StoreSQLite, c.Store)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 90*time.Second, c.SessionIdle)
}

func TestLoadGateway_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("FORM_RATE_PER_MIN", "not-a-number")

	g := LoadGateway()
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, g.CORSOrigins)
	assert.Equal(t, 10, g.FormRatePerMin)
}

func TestGetEnvAsBool_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "maybe")
	assert.True(t, getEnvAsBool("METRICS_ENABLED", true))

	t.Setenv("METRICS_ENABLED", "false")
	assert.False(t, getEnvAsBool("METRICS_ENABLED", true))
}
