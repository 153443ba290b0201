// Package otp integrates the external one-time-code provider used for
// possession-based mobile verification. The adapter collapses all
// provider-specific failures into two observable errors so the service
// layer never sees upstream detail.
package otp

import (
	"context"
	"errors"
)

var (
	// ErrInvalidNumber reports that the provider rejected the destination
	// number itself (malformed or unreachable). Caller-fixable.
	ErrInvalidNumber = errors.New("verification target rejected")

	// ErrProvider reports any other provider-side failure.
	ErrProvider = errors.New("verification provider error")
)

// Provider sends and checks short numeric verification codes.
type Provider interface {
	// SendCode asks the provider to deliver a fresh code to mobile.
	SendCode(ctx context.Context, mobile string) error

	// CheckCode reports whether code matches the most recently sent one.
	// A non-matching or stale code is (false, nil), not an error.
	CheckCode(ctx context.Context, mobile string, code string) (bool, error)
}
