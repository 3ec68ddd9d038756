package smtp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPMail(t *testing.T) {
	subject, body := OTPMail("042917", 5*time.Minute)
	assert.Equal(t, "Your admin login code", subject)
	assert.Contains(t, body, "042917")
	assert.Contains(t, body, "5 minutes")
}

func TestBuildMessage_StripsHeaderInjection(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	msg := string(buildMessage("noreply@pr1me.local", "a@b.com\r\nBcc: evil@x.com", "Hi", "body", now))

	headers, body, ok := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, ok)
	assert.Equal(t, "body", body)
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.Contains(t, headers, "To: a@b.comBcc: evil@x.com")
	assert.Contains(t, headers, "Date: Fri, 02 Jan 2026 03:04:05 +0000")
}
