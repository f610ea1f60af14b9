package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379/0",
	})
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":         "postgres://localhost:5432/pasar",
		"REDIS_URL":            "redis://localhost:6379/0",
		"PORT":                 "",
		"COUPON_CACHE_TTL":     "",
		"PRICING_TAX_RATE_BPS": "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, 1100, cfg.PricingTaxRateBPS)
	require.Equal(t, "IDR", cfg.CurrencyCode)
}

func TestHTTPAddrKeepsExplicitColon(t *testing.T) {
	cfg := &Config{Port: ":9090"}
	require.Equal(t, ":9090", cfg.HTTPAddr())
}
