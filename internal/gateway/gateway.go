// Package gateway turns a scored day into a short natural-language
// interpretation. Providers are swappable behind Interpreter: a local rule
// based Stub, an OpenAI-compatible chat client, and a Hugging Face
// Inference API client. Choose one at composition time with New.
//
// Providers never retry; callers own timeouts and retry policy.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/tbourn/quantifyme-backend/internal/scoring"
)

// Provider names.
const (
	ProviderStub   = "stub"
	ProviderOpenAI = "openai"
	ProviderHF     = "hf"
)

// ErrEmptyResponse is returned when a provider answers without usable text.
var ErrEmptyResponse = errors.New("empty interpretation")

// Request carries one scored day to a provider.
type Request struct {
	Day        string
	Composite  float64
	Components map[scoring.Dimension]float64 // normalized [0,1]
	Inputs     map[scoring.Dimension]float64 // raw values as submitted
	Locale     string                        // "en" or "fr"
}

// Interpreter produces an interpretation for one scored day.
type Interpreter interface {
	Name() string
	Interpret(ctx context.Context, req Request) (string, error)
}

// GatewayError wraps a provider failure. Retryable marks transient
// failures (timeouts, throttling, 5xx) worth another attempt.
type GatewayError struct {
	Provider  string
	Err       error
	Retryable bool
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a GatewayError marked retryable.
func IsRetryable(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Retryable
}

func wrap(provider string, err error, retryable bool) error {
	return &GatewayError{Provider: provider, Err: err, Retryable: retryable}
}

// transient classifies transport-level failures.
func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(code int) bool {
	return code == 408 || code == 429 || code >= 500
}
