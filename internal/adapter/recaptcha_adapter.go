package adapter

import "context"

// RecaptchaAdapter verifies a client-side reCAPTCHA token.
type RecaptchaAdapter interface {
	// Enabled reports whether a secret is configured. When it is not, signup skips verification.
	Enabled() bool
	Verify(ctx context.Context, token string) (bool, error)
}
