package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RPC_BASE_URL", "")
	t.Setenv("LOGIN_MAX_OTP_ATTEMPTS", "")
	cfg := Load()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "3001", cfg.AdminPort)
	assert.Equal(t, "http://localhost:3000", cfg.RPCBaseURL)
	assert.Equal(t, 5, cfg.LoginMaxOTPAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginFlowTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, "otp_verifications", cfg.DynamoTables.OTPVerifications)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"127.0.0.1/32", "::1/128"}, cfg.TrustedProxies)
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,192.168.1.10 ")
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, Load().TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "none")
	assert.Empty(t, Load().TrustedProxies)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RPC_BASE_URL", "https://api.example.com/")
	t.Setenv("LOGIN_MAX_OTP_ATTEMPTS", "3")
	t.Setenv("LOGIN_FLOW_TTL", "2m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	assert.Equal(t, "https://api.example.com", cfg.RPCBaseURL)
	assert.Equal(t, 3, cfg.LoginMaxOTPAttempts)
	assert.Equal(t, 2*time.Minute, cfg.LoginFlowTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("LOGIN_MAX_OTP_ATTEMPTS", "many")
	t.Setenv("RPC_TIMEOUT", "-5s")
	t.Setenv("COOKIE_SECURE", "maybe")
	cfg := Load()
	assert.Equal(t, 5, cfg.LoginMaxOTPAttempts)
	assert.Equal(t, 10*time.Second, cfg.RPCTimeout)
	assert.False(t, cfg.CookieSecure)
}
