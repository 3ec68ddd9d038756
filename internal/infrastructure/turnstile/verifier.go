// Package turnstile verifies bot-challenge tokens with Cloudflare's siteverify API.
package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pr1me-admin/internal/config"
)

// ErrChallengeFailed is returned when the provider rejects a token.
var ErrChallengeFailed = errors.New("challenge verification failed")

// Verifier checks a challenge token server-side.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
}

type verifier struct {
	endpoint string
	secret   string
	http     *http.Client
}

func NewVerifier(cfg *config.Config) Verifier {
	return &verifier{
		endpoint: cfg.TurnstileVerifyURL,
		secret:   cfg.TurnstileSecretKey,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

func (v *verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if token == "" {
		return fmt.Errorf("empty token: %w", ErrChallengeFailed)
	}
	form := url.Values{"secret": {v.secret}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.http.Do(req)
	if err != nil {
		return fmt.Errorf("siteverify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("siteverify: status %d", resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode siteverify response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("%w: %s", ErrChallengeFailed, strings.Join(out.ErrorCodes, ","))
	}
	return nil
}
