package oauth

import (
	"errors"
	"fmt"
	"testing"
)

func TestProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  *ProviderError
		want string
	}{
		{
			name: "with description",
			err:  newProviderError("token exchange", 400, []byte(`{"error":"invalid_grant","error_description":"Bad code"}`)),
			want: "token exchange failed with status 400: Bad code",
		},
		{
			name: "code only",
			err:  newProviderError("token exchange", 401, []byte(`{"error":"invalid_client"}`)),
			want: "token exchange failed with status 401: invalid_client",
		},
		{
			name: "plain body",
			err:  newProviderError("token revocation", 503, []byte("unavailable")),
			want: "token revocation failed with status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProviderError_Is(t *testing.T) {
	wrapped := fmt.Errorf("exchange: %w", newProviderError("token exchange", 400, nil))

	if !errors.Is(wrapped, &ProviderError{}) {
		t.Error("expected errors.Is to match *ProviderError")
	}
	if errors.Is(wrapped, &CallbackError{}) {
		t.Error("did not expect errors.Is to match *CallbackError")
	}
}

func TestCallbackError(t *testing.T) {
	err := &CallbackError{Code: "access_denied", Description: "User denied access"}
	if got := err.Error(); got != "authorization failed: access_denied: User denied access" {
		t.Errorf("unexpected message %q", got)
	}

	bare := &CallbackError{Code: "access_denied"}
	if got := bare.Error(); got != "authorization failed: access_denied" {
		t.Errorf("unexpected message %q", got)
	}
}
