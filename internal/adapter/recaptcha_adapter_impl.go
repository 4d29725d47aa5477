package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/model"
)

const DefaultRecaptchaURL = "https://www.google.com/recaptcha/api/siteverify"

type recaptchaAdapterImpl struct {
	secret   string
	endpoint string
	client   *http.Client
}

func NewRecaptchaAdapter(secret string) RecaptchaAdapter {
	return NewRecaptchaAdapterWithEndpoint(secret, DefaultRecaptchaURL)
}

// NewRecaptchaAdapterWithEndpoint points verification at a different siteverify URL.
func NewRecaptchaAdapterWithEndpoint(secret, endpoint string) RecaptchaAdapter {
	return &recaptchaAdapterImpl{
		secret:   secret,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (a *recaptchaAdapterImpl) Enabled() bool {
	return a.secret != ""
}

func (a *recaptchaAdapterImpl) Verify(ctx context.Context, token string) (bool, error) {
	if !a.Enabled() {
		return true, nil
	}
	form := url.Values{}
	form.Set("secret", a.secret)
	form.Set("response", token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := a.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to call siteverify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}
	var body model.RecaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode siteverify response: %w", err)
	}
	return body.Success, nil
}
