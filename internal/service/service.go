package service

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/credential"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

// Option configures a service constructor.
type Option func(*options)

type options struct {
	now  func() time.Time
	hash func(password string) (string, error)
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, hash: credential.HashPassword}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now for expiry and lockout decisions.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithPasswordHasher replaces the argon2id hasher, e.g. with cheaper parameters.
func WithPasswordHasher(hash func(password string) (string, error)) Option {
	return func(o *options) { o.hash = hash }
}

// storeError turns a store outage into the 503 client error and leaves other failures alone.
func storeError(err error) error {
	if domain.IsStoreUnavailable(err) {
		return domain.NewUnavailable(err)
	}
	return err
}

// plainText strips markup with a strict policy and decodes the entities it
// leaves behind, so "Tom & Jerry" is stored as typed.
func plainText(strict *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
