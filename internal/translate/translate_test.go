// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslator struct {
	out string
	err error
}

func (s stubTranslator) Translate(_ context.Context, _, _, _ string) (string, error) {
	return s.out, s.err
}

func TestResolve(t *testing.T) {
	long := strings.Repeat("abcdefghij", 5)

	tests := []struct {
		name       string
		translator Translator
		text       string
		wantText   string
		wantStatus Status
	}{
		{
			name:       "success",
			translator: stubTranslator{out: "量子纠缠"},
			text:       "Quantum entanglement",
			wantText:   "量子纠缠",
			wantStatus: StatusTranslated,
		},
		{
			name:       "missing credentials embeds full text",
			translator: stubTranslator{err: ErrMissingCredentials},
			text:       long,
			wantText:   "[Translation Skipped] " + long,
			wantStatus: StatusSkipped,
		},
		{
			name:       "wrapped missing credentials",
			translator: stubTranslator{err: errors.Join(errors.New("setup"), ErrMissingCredentials)},
			text:       "Hello",
			wantText:   "[Translation Skipped] Hello",
			wantStatus: StatusSkipped,
		},
		{
			name:       "nil translator",
			translator: nil,
			text:       "Hello",
			wantText:   "[Translation Skipped] Hello",
			wantStatus: StatusSkipped,
		},
		{
			name:       "service error embeds snippet",
			translator: stubTranslator{err: &ServiceError{Code: "LimitExceeded", Message: "too long"}},
			text:       long,
			wantText:   "[Translation Failed: abcdefghijabcdefghijabcdefghij...]",
			wantStatus: StatusFailed,
		},
		{
			name:       "service error short text",
			translator: stubTranslator{err: &ServiceError{Code: "InternalError"}},
			text:       "Short",
			wantText:   "[Translation Failed: Short...]",
			wantStatus: StatusFailed,
		},
		{
			name:       "unexpected error",
			translator: stubTranslator{err: errors.New("boom")},
			text:       "Hello",
			wantText:   "[Translation Failed]",
			wantStatus: StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(context.Background(), tt.translator, tt.text, "en", "zh")
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantStatus != StatusTranslated, got.Degraded())
			if got.Degraded() {
				assert.Error(t, got.Err)
			}
		})
	}
}

func TestResolve_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Resolve(ctx, stubTranslator{err: context.Canceled}, "Hello", "en", "zh")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFailedPlaceholder_CountsCharacters(t *testing.T) {
	text := strings.Repeat("量", 40)
	assert.Equal(t, "[Translation Failed: "+strings.Repeat("量", 30)+"...]", FailedPlaceholder(text))
}

func TestPlaceholdersAreDeterministic(t *testing.T) {
	assert.Equal(t, SkippedPlaceholder("abc"), SkippedPlaceholder("abc"))
	assert.Equal(t, FailedPlaceholder("abc"), FailedPlaceholder("abc"))
	assert.Equal(t, GenericPlaceholder(), GenericPlaceholder())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "translated", StatusTranslated.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "status(9)", Status(9).String())
}

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{Code: "AuthFailure", Message: "bad signature", RequestID: "req-1"}
	assert.Equal(t, "translation service error AuthFailure: bad signature (request req-1)", err.Error())

	err = &ServiceError{Code: "AuthFailure", Message: "bad signature"}
	assert.Equal(t, "translation service error AuthFailure: bad signature", err.Error())
}
