package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialManager(t *testing.T) {
	manager, mockStore := NewMockManager()

	creds := &Credentials{
		Name:      "default",
		BotToken:  "123456789:AAFexampletokenvalue",
		ChannelID: "@testchannel",
	}

	require.NoError(t, manager.Store(creds))
	assert.False(t, creds.LastModified.IsZero(), "Store stamps the modification time")

	retrieved, err := manager.Retrieve("default")
	require.NoError(t, err)
	assert.Equal(t, creds.BotToken, retrieved.BotToken)
	assert.Equal(t, creds.ChannelID, retrieved.ChannelID)

	profiles, err := manager.List()
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	require.NoError(t, manager.Delete("default"))
	_, err = manager.Retrieve("default")
	assert.Error(t, err, "deleted credentials are gone")
	assert.Equal(t, 0, mockStore.Count())
}

func TestManagerValidatesInput(t *testing.T) {
	manager, _ := NewMockManager()

	err := manager.Store(&Credentials{Name: "x", ChannelID: "@c"})
	assert.Error(t, err, "missing token is rejected")

	err = manager.Store(&Credentials{Name: "x", BotToken: "t"})
	assert.Error(t, err, "missing channel is rejected")
}

func TestManagerDefaultsProfileName(t *testing.T) {
	manager, _ := NewMockManager()

	require.NoError(t, manager.Store(&Credentials{
		BotToken:  "token",
		ChannelID: "@channel",
	}))

	creds, err := manager.Retrieve(DefaultProfile)
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile, creds.Name)
}

func TestSanitize(t *testing.T) {
	creds := &Credentials{
		Name:         "default",
		BotToken:     "123456789:AAFexampletokenvalue",
		ChannelID:    "@testchannel",
		LastModified: time.Now(),
	}

	s := Sanitize(creds)
	assert.NotEqual(t, creds.BotToken, s.BotToken, "token is masked")
	assert.Equal(t, "1234...alue", s.BotToken)
	assert.Equal(t, creds.ChannelID, s.ChannelID, "channel ID stays readable")
	assert.Nil(t, Sanitize(nil))
}

func TestEnvironmentStore(t *testing.T) {
	t.Run("retrieves credentials from the environment", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
		t.Setenv("TELEGRAM_CHANNEL_ID", "@envchannel")

		store := NewEnvironmentStore()
		creds, err := store.Retrieve("")
		require.NoError(t, err)
		assert.Equal(t, "env-token", creds.BotToken)
		assert.Equal(t, "@envchannel", creds.ChannelID)
		assert.Equal(t, DefaultProfile, creds.Name)
		assert.True(t, store.Exists(DefaultProfile))
	})

	t.Run("partial environment is not found", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
		t.Setenv("TELEGRAM_CHANNEL_ID", "")

		store := NewEnvironmentStore()
		_, err := store.Retrieve("")
		assert.ErrorIs(t, err, ErrCredentialsNotFound)
		assert.False(t, store.Exists(DefaultProfile))
	})

	t.Run("store and delete are unsupported", func(t *testing.T) {
		store := NewEnvironmentStore()
		assert.ErrorIs(t, store.Store(&Credentials{}), ErrStoreUnavailable)
		assert.ErrorIs(t, store.Delete("default"), ErrStoreUnavailable)
	})
}

func TestEncryptedFileStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANIMERELAY_PASSPHRASE", "test-passphrase")
	t.Setenv("XDG_CONFIG_HOME", dir)

	store, err := NewEncryptedFileStore(dir + "/credentials.enc")
	require.NoError(t, err)

	creds := &Credentials{
		Name:         "default",
		BotToken:     "secret-token",
		ChannelID:    "@channel",
		LastModified: time.Now(),
	}

	require.NoError(t, store.Store(creds))

	// A fresh store over the same file decrypts the same data
	fresh, err := NewEncryptedFileStore(dir + "/credentials.enc")
	require.NoError(t, err)

	got, err := fresh.Retrieve("default")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", got.BotToken)
	assert.Equal(t, "@channel", got.ChannelID)

	require.NoError(t, fresh.Delete("default"))
	_, err = fresh.Retrieve("default")
	assert.Error(t, err)
}
