// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate turns source-language text into the target language.
// Failures never abort a digest run: Resolve substitutes a deterministic
// placeholder for the translated text and reports the degradation in the
// returned Result.
package translate

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned by translators that have no service
// credentials configured.
var ErrMissingCredentials = errors.New("translation credentials not configured")

// placeholderSnippet is the number of characters of the original text
// embedded in a service-failure placeholder.
const placeholderSnippet = 30

// Translator translates text between two language codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// ServiceError is a failure reported by the remote translation service.
type ServiceError struct {
	Code      string
	Message   string
	RequestID string
}

func (e *ServiceError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("translation service error %s: %s (request %s)", e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("translation service error %s: %s", e.Code, e.Message)
}

// Status describes how a field's translated text was obtained.
type Status int

const (
	// StatusTranslated means the service returned a translation.
	StatusTranslated Status = iota
	// StatusSkipped means no credentials were configured.
	StatusSkipped
	// StatusFailed means the call failed and a placeholder was substituted.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusTranslated:
		return "translated"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of translating one field.
type Result struct {
	Text   string
	Status Status

	// Err is the underlying translator error for degraded results.
	Err error
}

// Degraded reports whether Text is a placeholder rather than a translation.
func (r Result) Degraded() bool {
	return r.Status != StatusTranslated
}

// Resolve calls t and applies the placeholder policy to its outcome.
// A nil translator behaves like one without credentials. Context
// cancellation is the only error returned; every other failure becomes a
// degraded Result.
func Resolve(ctx context.Context, t Translator, text, source, target string) (Result, error) {
	if t == nil {
		return Result{Text: SkippedPlaceholder(text), Status: StatusSkipped, Err: ErrMissingCredentials}, nil
	}

	out, err := t.Translate(ctx, text, source, target)
	if err == nil {
		return Result{Text: out, Status: StatusTranslated}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}

	var svcErr *ServiceError
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return Result{Text: SkippedPlaceholder(text), Status: StatusSkipped, Err: err}, nil
	case errors.As(err, &svcErr):
		return Result{Text: FailedPlaceholder(text), Status: StatusFailed, Err: err}, nil
	default:
		return Result{Text: GenericPlaceholder(), Status: StatusFailed, Err: err}, nil
	}
}

// SkippedPlaceholder marks text that was not sent for translation.
func SkippedPlaceholder(text string) string {
	return "[Translation Skipped] " + text
}

// FailedPlaceholder marks a field the service failed to translate and
// embeds the first characters of the original text.
func FailedPlaceholder(text string) string {
	return fmt.Sprintf("[Translation Failed: %s...]", prefix(text, placeholderSnippet))
}

// GenericPlaceholder marks a field that failed for an unexpected reason.
func GenericPlaceholder() string {
	return "[Translation Failed]"
}

// prefix returns the first n characters of s.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
