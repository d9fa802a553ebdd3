package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrCaptchaRejected means the provider answered but rejected the token —
// distinct from transport failures, which trip the circuit breaker.
var ErrCaptchaRejected = errors.New("captcha: token rechazado")

// captchaVerifyResponse is the provider's siteverify payload.
type captchaVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// CaptchaClient verifies bot-check tokens against the provider's siteverify
// endpoint. Called once per login attempt, before any credential lookup. The
// circuit breaker fast-fails verification while the provider is down instead
// of letting every login hang on the provider timeout.
type CaptchaClient struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewCaptchaClient(secret, verifyURL string, cb *CircuitBreaker) *CaptchaClient {
	return &CaptchaClient{
		secret:     secret,
		verifyURL:  verifyURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}
}

// Verify returns nil only when the provider confirms the token.
func (c *CaptchaClient) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrCaptchaRejected
	}

	return c.cb.Execute(func() error {
		form := url.Values{}
		form.Set("secret", c.secret)
		form.Set("response", token)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL,
			strings.NewReader(form.Encode()))
		if err != nil {
			return fmt.Errorf("captcha: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("captcha: provider unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("captcha: provider returned %d", resp.StatusCode)
		}

		var result captchaVerifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("captcha: decode response: %w", err)
		}
		if !result.Success {
			return ErrCaptchaRejected
		}
		return nil
	})
}
