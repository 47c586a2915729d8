package sync

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestOAuthConfigCreation(t *testing.T) {
	config := NewOAuthConfig()
	require.NotNil(t, config)
	assert.Equal(t, []string{ContactsScope}, config.Scopes)
	assert.Equal(t, "http://localhost:8080/oauth/callback", config.RedirectURL)
}

func TestGetConfigRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	_, err := GetConfig()
	assert.Error(t, err)

	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	config, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "id", config.ClientID)
}

func TestTokenPathXDG(t *testing.T) {
	path := TokenPath()

	expectedBase := filepath.Join(xdg.DataHome, "outreach")
	assert.True(t, strings.HasPrefix(path, expectedBase), "expected path under %s, got %s", expectedBase, path)
	assert.Equal(t, "google-credentials.json", filepath.Base(path))
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, saveTokenTo(path, token))
	loaded, err := loadTokenFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))

	_, err = loadTokenFrom(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
