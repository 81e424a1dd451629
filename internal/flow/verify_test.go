package flow

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"

	"photoauth/internal/config"
	"photoauth/internal/oauth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestVerify(t *testing.T) {
	te := newTokenEndpoint(t, http.StatusOK, `{"access_token":"ya29.a0AfH6SMB","expires_in":3599,"token_type":"Bearer","scope":"https://www.googleapis.com/auth/photoslibrary.appendonly https://www.googleapis.com/auth/photoslibrary.readonly.appcreateddata"}`)
	cfg := testConfig(t, config.VariantManual, te.URL)
	r, out := newTestRunner(cfg, strings.NewReader(""), noBrowser)

	require.NoError(t, r.Verify(context.Background(), "R1"))

	calls := te.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "refresh_token", calls[0].Get("grant_type"))
	assert.Equal(t, "R1", calls[0].Get("refresh_token"))

	output := out.String()
	assert.Contains(t, output, "Bearer")
	assert.Contains(t, output, "ya29.a0A...")
	assert.NotContains(t, output, "ya29.a0AfH6SMB")
	assert.Contains(t, output, "photoslibrary.appendonly")
	assert.Contains(t, output, "Refresh token is valid.")
}

func TestVerify_Rejected(t *testing.T) {
	te := newTokenEndpoint(t, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`)
	cfg := testConfig(t, config.VariantManual, te.URL)
	r, out := newTestRunner(cfg, strings.NewReader(""), noBrowser)

	err := r.Verify(context.Background(), "R1")

	var provErr *oauth.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "invalid_grant", provErr.ErrorCode)
	assert.Contains(t, out.String(), "invalid_grant")
}

func TestRevoke(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantOutput string
	}{
		{name: "accepted", status: http.StatusOK, wantOutput: "Refresh token revoked."},
		{name: "already invalid", status: http.StatusBadRequest, wantOutput: "WARNING: The provider did not accept the revocation."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTokenEndpoint(t, tt.status, `{"error":"invalid_token"}`)
			cfg := testConfig(t, config.VariantManual, "unused")
			cfg.RevokeURL = te.URL
			r, out := newTestRunner(cfg, strings.NewReader(""), noBrowser)

			require.NoError(t, r.Revoke(context.Background(), "R1"))

			calls := te.calls()
			require.Len(t, calls, 1)
			assert.Equal(t, "R1", calls[0].Get("token"))
			assert.Contains(t, out.String(), tt.wantOutput)
		})
	}
}

func TestRevoke_TransportFailure(t *testing.T) {
	te := newTokenEndpoint(t, http.StatusOK, ``)
	cfg := testConfig(t, config.VariantManual, "unused")
	cfg.RevokeURL = te.URL
	te.Close()
	r, _ := newTestRunner(cfg, strings.NewReader(""), noBrowser)

	assert.Error(t, r.Revoke(context.Background(), "R1"))
}

func TestRevoke_ClearsKeyring(t *testing.T) {
	keyring.MockInit()

	te := newTokenEndpoint(t, http.StatusOK, ``)
	cfg := testConfig(t, config.VariantManual, "unused")
	cfg.RevokeURL = te.URL
	cfg.UseKeyring = true
	require.NoError(t, keyring.Set(KeyringService, cfg.ClientID, "R1"))

	r, _ := newTestRunner(cfg, strings.NewReader(""), noBrowser)
	require.NoError(t, r.Revoke(context.Background(), "R1"))

	_, err := keyring.Get(KeyringService, cfg.ClientID)
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestLoadRefreshToken(t *testing.T) {
	keyring.MockInit()

	t.Run("explicit value wins", func(t *testing.T) {
		cfg := testConfig(t, config.VariantManual, "unused")
		cfg.RefreshToken = "FROM-ENV"

		token, source, err := LoadRefreshToken(cfg, "  FROM-FLAG ")
		require.NoError(t, err)
		assert.Equal(t, "FROM-FLAG", token)
		assert.Equal(t, "--token flag", source)
	})

	t.Run("environment", func(t *testing.T) {
		cfg := testConfig(t, config.VariantManual, "unused")
		cfg.RefreshToken = "FROM-ENV"

		token, source, err := LoadRefreshToken(cfg, "")
		require.NoError(t, err)
		assert.Equal(t, "FROM-ENV", token)
		assert.Equal(t, config.EnvRefreshToken, source)
	})

	t.Run("keyring", func(t *testing.T) {
		cfg := testConfig(t, config.VariantManual, "unused")
		cfg.UseKeyring = true
		require.NoError(t, keyring.Set(KeyringService, cfg.ClientID, "FROM-KEYRING"))
		t.Cleanup(func() { _ = keyring.Delete(KeyringService, cfg.ClientID) })

		token, source, err := LoadRefreshToken(cfg, "")
		require.NoError(t, err)
		assert.Equal(t, "FROM-KEYRING", token)
		assert.Equal(t, "system keyring", source)
	})

	t.Run("token file", func(t *testing.T) {
		cfg := testConfig(t, config.VariantManual, "unused")
		cfg.UseKeyring = true
		require.NoError(t, os.WriteFile(cfg.TokenFile, []byte("FROM-FILE\n"), 0o600))

		token, source, err := LoadRefreshToken(cfg, "")
		require.NoError(t, err)
		assert.Equal(t, "FROM-FILE", token)
		assert.Equal(t, cfg.TokenFile, source)
	})

	t.Run("nothing stored", func(t *testing.T) {
		cfg := testConfig(t, config.VariantManual, "unused")

		_, _, err := LoadRefreshToken(cfg, "")
		var cfgErr *config.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "token", cfgErr.Field)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg := testConfig(t, config.VariantManual, "unused")
		require.NoError(t, os.WriteFile(cfg.TokenFile, nil, 0o600))

		_, _, err := LoadRefreshToken(cfg, "")
		var cfgErr *config.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", maskToken(""))
	assert.Equal(t, "****", maskToken("abcd"))
	assert.Equal(t, "abcdefgh...", maskToken("abcdefghijkl"))
}
