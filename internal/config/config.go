package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Both binaries read the same Config; each uses the part it needs.
type Config struct {
	AppPort   string // RPC backend listen port
	AdminPort string // admin web app listen port
	AppEnv    string

	RPCBaseURL string // base of the RPC backend, without the /api/v1 prefix
	RPCTimeout time.Duration

	TurnstileSiteKey   string
	TurnstileSecretKey string
	TurnstileVerifyURL string

	AdminEmailDomain    string
	LoginMaxOTPAttempts int
	LoginFlowTTL        time.Duration
	OTPTTL              time.Duration
	OTPResendCooldown   time.Duration

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion             string
	SNSLoginAlertTopicARN string // empty disables login alerts

	AllowedOrigins []string // CORS allowed origins
	CookieSecure   bool
	// TrustedProxies are the IPs or CIDRs whose X-Forwarded-For is honoured.
	// The backend lists the admin app here so per-client limits apply.
	TrustedProxies []string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users            string
	Sessions         string
	OTPVerifications string
	Todos            string
	Withdrawals      string
	Merchants        string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:   getEnv("APP_PORT", "3000"),
		AdminPort: getEnv("ADMIN_PORT", "3001"),
		AppEnv:    getEnv("APP_ENV", "development"),

		RPCBaseURL: strings.TrimRight(getEnv("RPC_BASE_URL", "http://localhost:3000"), "/"),
		RPCTimeout: getEnvDuration("RPC_TIMEOUT", 10*time.Second),

		TurnstileSiteKey:   getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),
		TurnstileVerifyURL: getEnv("TURNSTILE_VERIFY_URL", "https://challenges.cloudflare.com/turnstile/v0/siteverify"),

		AdminEmailDomain:    getEnv("ADMIN_EMAIL_DOMAIN", "pr1me.local"),
		LoginMaxOTPAttempts: getEnvInt("LOGIN_MAX_OTP_ATTEMPTS", 5),
		LoginFlowTTL:        getEnvDuration("LOGIN_FLOW_TTL", 15*time.Minute),
		OTPTTL:              getEnvDuration("OTP_TTL", 5*time.Minute),
		OTPResendCooldown:   getEnvDuration("OTP_RESEND_COOLDOWN", time.Minute),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:            getEnv("DYNAMO_TABLE_USERS", "users"),
			Sessions:         getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			OTPVerifications: getEnv("DYNAMO_TABLE_OTP_VERIFICATIONS", "otp_verifications"),
			Todos:            getEnv("DYNAMO_TABLE_TODOS", "todos"),
			Withdrawals:      getEnv("DYNAMO_TABLE_WITHDRAWALS", "withdrawals"),
			Merchants:        getEnv("DYNAMO_TABLE_MERCHANTS", "merchants"),
		},

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 12*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@pr1me.local"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:             getEnv("SNS_REGION", "us-east-1"),
		SNSLoginAlertTopicARN: getEnv("SNS_LOGIN_ALERT_TOPIC_ARN", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		TrustedProxies: getEnvList("TRUSTED_PROXIES", "127.0.0.1/32,::1/128"),
	}
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty entries. "none"
// yields an empty list.
func getEnvList(key, fallback string) []string {
	v := getEnv(key, fallback)
	if v == "none" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
